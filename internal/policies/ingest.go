package policies

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hrmate-ai/hrmate/internal/vectordb"
)

// IngestStats summarizes one ingestion run.
type IngestStats struct {
	Files  int
	Chunks int
}

// Ingestor embeds policy files into a vector store.
type Ingestor struct {
	store        vectordb.VectorStore
	logger       *zap.SugaredLogger
	chunkWords   int
	overlapWords int

	// Progress, if set, is called once per file before it is embedded.
	Progress func(current, total int, filename string)
}

// NewIngestor creates an ingestor writing to store.
func NewIngestor(store vectordb.VectorStore, logger *zap.SugaredLogger) *Ingestor {
	return &Ingestor{
		store:        store,
		logger:       logger,
		chunkWords:   DefaultChunkWords,
		overlapWords: DefaultOverlapWords,
	}
}

// Ingest clears the store and embeds all given files. Each chunk becomes one
// document keyed "{filename}-{chunkIndex}".
func (ig *Ingestor) Ingest(ctx context.Context, files []PolicyFile) (IngestStats, error) {
	var stats IngestStats

	if err := ig.store.Clear(ctx); err != nil {
		return stats, fmt.Errorf("clear vector store: %w", err)
	}

	for i, f := range files {
		if ig.Progress != nil {
			ig.Progress(i+1, len(files), f.Filename)
		}

		chunks := ChunkText(f.Content, ig.chunkWords, ig.overlapWords)
		docs := make([]vectordb.Document, 0, len(chunks))
		for j, chunk := range chunks {
			docs = append(docs, vectordb.Document{
				ID:         fmt.Sprintf("%s-%d", f.Filename, j),
				Content:    chunk,
				PolicyName: f.Name,
				Filename:   f.Filename,
				ChunkIndex: j,
			})
		}

		if err := ig.store.Add(ctx, docs); err != nil {
			return stats, fmt.Errorf("ingest %s: %w", f.Filename, err)
		}

		ig.logger.Debugw("ingested policy", "file", f.Filename, "chunks", len(chunks))
		stats.Files++
		stats.Chunks += len(chunks)
	}

	ig.logger.Infow("ingestion complete", "files", stats.Files, "chunks", stats.Chunks)
	return stats, nil
}
