package policies

import (
	"context"

	"github.com/hrmate-ai/hrmate/internal/dialogue"
	"github.com/hrmate-ai/hrmate/internal/vectordb"
)

// StoreRetriever serves retrieval queries from a vector store. It implements
// dialogue.Retriever.
type StoreRetriever struct {
	store vectordb.VectorStore
}

// NewStoreRetriever creates a retriever over store.
func NewStoreRetriever(store vectordb.VectorStore) *StoreRetriever {
	return &StoreRetriever{store: store}
}

func (r *StoreRetriever) Search(ctx context.Context, query string, topK int) ([]dialogue.Passage, error) {
	results, err := r.store.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	passages := make([]dialogue.Passage, 0, len(results))
	for _, res := range results {
		passages = append(passages, dialogue.Passage{
			Text:   res.Content,
			Source: res.PolicyName,
			Score:  res.Score,
		})
	}
	return passages, nil
}
