package vectordb

import "context"

// VectorStore is the interface the retrieval layer depends on.
type VectorStore interface {
	// Add embeds and stores the given documents.
	Add(ctx context.Context, docs []Document) error
	// Search returns the topK documents most similar to the query.
	Search(ctx context.Context, query string, topK int) ([]Result, error)
	// SearchByPolicy restricts search to chunks of a single policy.
	SearchByPolicy(ctx context.Context, query string, policyName string, topK int) ([]Result, error)
	// Count returns the number of stored documents.
	Count() int
	// Clear removes all stored documents.
	Clear(ctx context.Context) error
	// Persist writes the store to disk.
	Persist(path string) error
}
