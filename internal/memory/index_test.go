package memory

import (
	"context"
	"errors"
	"testing"
)

// stubEmbedder maps known texts to fixed vectors
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = s.vectors[t]
	}
	return out, nil
}

func TestBuild_SkipsBlankTexts(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"caffeine delays sleep": {1, 0},
	}}

	idx, err := Build(context.Background(), embedder, []string{"caffeine delays sleep", "  ", ""})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if idx.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", idx.Len())
	}
}

func TestBuild_NoTexts(t *testing.T) {
	embedder := &stubEmbedder{}
	if _, err := Build(context.Background(), embedder, []string{"", "  "}); err == nil {
		t.Error("Expected error when nothing to index")
	}
}

func TestBuild_EmbedderFailure(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("quota")}
	if _, err := Build(context.Background(), embedder, []string{"text"}); err == nil {
		t.Error("Expected embedder error to propagate to the caller")
	}
}

func TestIndex_SearchRanksBySimilarity(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"close":    {1, 0},
		"far":      {0, 1},
		"diagonal": {1, 1},
		"query":    {1, 0},
	}}

	idx, err := Build(context.Background(), embedder, []string{"close", "far", "diagonal"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	matches, err := idx.Search(context.Background(), embedder, "query", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Text != "close" {
		t.Errorf("Expected closest match first, got %q", matches[0].Text)
	}
	if matches[1].Text != "diagonal" {
		t.Errorf("Expected diagonal second, got %q", matches[1].Text)
	}
}
