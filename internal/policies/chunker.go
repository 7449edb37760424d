package policies

import "strings"

const (
	// DefaultChunkWords is the window size in words per chunk.
	DefaultChunkWords = 500
	// DefaultOverlapWords is how many words consecutive chunks share.
	DefaultOverlapWords = 50
)

// ChunkText splits text into word windows of chunkWords with overlapWords of
// overlap between consecutive windows. A non-positive chunkWords falls back
// to DefaultChunkWords; an overlap that is negative or would prevent
// progress falls back to DefaultOverlapWords.
func ChunkText(text string, chunkWords, overlapWords int) []string {
	if chunkWords <= 0 {
		chunkWords = DefaultChunkWords
	}
	if overlapWords < 0 || overlapWords >= chunkWords {
		overlapWords = DefaultOverlapWords
		if overlapWords >= chunkWords {
			overlapWords = chunkWords / 10
		}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if len(words) <= chunkWords {
		return []string{strings.Join(words, " ")}
	}

	step := chunkWords - overlapWords
	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + chunkWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}
