// Package vectordb stores policy chunks as embedded documents and serves
// similarity search over them.
package vectordb

import "strconv"

// Document is a single policy chunk held in the vector store.
type Document struct {
	ID         string
	Content    string
	PolicyName string
	Filename   string
	ChunkIndex int
}

// Metadata returns the document's attributes as chromem metadata.
func (d Document) Metadata() map[string]string {
	return map[string]string{
		"policy_name": d.PolicyName,
		"filename":    d.Filename,
		"chunk_index": strconv.Itoa(d.ChunkIndex),
	}
}

// Result is a search hit with its similarity score.
type Result struct {
	Document
	Score float32
}
