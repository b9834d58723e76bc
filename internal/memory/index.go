// Package memory provides a best-effort in-memory vector index over
// gathered snippets. Building it can fail for any number of reasons
// (no API key, network, quota) and every caller is expected to discard
// those failures; the research run never depends on it.
package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
)

// Embedder turns texts into vectors
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Index is a cosine-similarity store over embedded snippets
type Index struct {
	mu      sync.RWMutex
	entries []entry
}

type entry struct {
	text   string
	vector []float32
}

// Build embeds the non-blank texts and returns an index over them.
// Returns an error when there is nothing to index or embedding fails.
func Build(ctx context.Context, embedder Embedder, texts []string) (*Index, error) {
	if embedder == nil {
		return nil, errors.New("no embedder configured")
	}

	kept := make([]string, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return nil, errors.New("no texts to index")
	}

	vectors, err := embedder.Embed(ctx, kept)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(kept) {
		return nil, errors.New("embedder returned mismatched vector count")
	}

	idx := &Index{entries: make([]entry, len(kept))}
	for i := range kept {
		idx.entries[i] = entry{text: kept[i], vector: vectors[i]}
	}
	return idx, nil
}

// Match pairs an indexed text with its similarity to a query
type Match struct {
	Text       string
	Similarity float32
}

// Search returns the topK most similar entries to the query text
func (ix *Index) Search(ctx context.Context, embedder Embedder, query string, topK int) ([]Match, error) {
	vectors, err := embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, errors.New("embedder returned mismatched vector count")
	}
	queryVec := vectors[0]

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	matches := make([]Match, 0, len(ix.entries))
	for _, e := range ix.entries {
		if len(e.vector) != len(queryVec) {
			continue
		}
		matches = append(matches, Match{
			Text:       e.text,
			Similarity: cosineSimilarity(queryVec, e.vector),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Len returns the number of indexed entries
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
