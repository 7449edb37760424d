package vectordb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	chromem "github.com/philippgille/chromem-go"
)

const collectionName = "policies"

// addConcurrency bounds parallel embedding calls during ingestion.
const addConcurrency = 4

// ChromemStore implements VectorStore on top of chromem-go, an embedded
// vector database persisted as a compressed gob file.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemStore creates an empty in-memory store.
func NewChromemStore(embedFunc chromem.EmbeddingFunc) (*ChromemStore, error) {
	db := chromem.NewDB()
	collection, err := db.GetOrCreateCollection(collectionName, nil, embedFunc)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return &ChromemStore{db: db, collection: collection, embedFunc: embedFunc}, nil
}

// LoadChromemStore reads a previously persisted store from path. A missing
// file yields an empty store.
func LoadChromemStore(path string, embedFunc chromem.EmbeddingFunc) (*ChromemStore, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewChromemStore(embedFunc)
	}

	db := chromem.NewDB()
	if err := db.ImportFromFile(path, ""); err != nil {
		return nil, fmt.Errorf("import vector store from %s: %w", path, err)
	}

	collection := db.GetCollection(collectionName, embedFunc)
	if collection == nil {
		c, err := db.GetOrCreateCollection(collectionName, nil, embedFunc)
		if err != nil {
			return nil, fmt.Errorf("create collection: %w", err)
		}
		collection = c
	}
	return &ChromemStore{db: db, collection: collection, embedFunc: embedFunc}, nil
}

func (s *ChromemStore) Add(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	converted := make([]chromem.Document, 0, len(docs))
	for _, d := range docs {
		converted = append(converted, chromem.Document{
			ID:       d.ID,
			Content:  d.Content,
			Metadata: d.Metadata(),
		})
	}
	if err := s.collection.AddDocuments(ctx, converted, addConcurrency); err != nil {
		return fmt.Errorf("add documents: %w", err)
	}
	return nil
}

func (s *ChromemStore) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	return s.search(ctx, query, nil, topK)
}

func (s *ChromemStore) SearchByPolicy(ctx context.Context, query string, policyName string, topK int) ([]Result, error) {
	return s.search(ctx, query, map[string]string{"policy_name": policyName}, topK)
}

func (s *ChromemStore) search(ctx context.Context, query string, where map[string]string, topK int) ([]Result, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	hits, err := s.collection.Query(ctx, query, topK, where, nil)
	if err != nil {
		return nil, fmt.Errorf("query vector store: %w", err)
	}

	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		chunkIndex, _ := strconv.Atoi(h.Metadata["chunk_index"])
		results = append(results, Result{
			Document: Document{
				ID:         h.ID,
				Content:    h.Content,
				PolicyName: h.Metadata["policy_name"],
				Filename:   h.Metadata["filename"],
				ChunkIndex: chunkIndex,
			},
			Score: h.Similarity,
		})
	}
	return results, nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

func (s *ChromemStore) Clear(_ context.Context) error {
	if err := s.db.DeleteCollection(collectionName); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	collection, err := s.db.GetOrCreateCollection(collectionName, nil, s.embedFunc)
	if err != nil {
		return fmt.Errorf("recreate collection: %w", err)
	}
	s.collection = collection
	return nil
}

func (s *ChromemStore) Persist(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := s.db.ExportToFile(path, true, ""); err != nil {
		return fmt.Errorf("export vector store to %s: %w", path, err)
	}
	return nil
}
