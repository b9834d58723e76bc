package research

import (
	"testing"

	"github.com/ppiankov/briefly/internal/model"
)

func TestInferSourceType(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		title   string
		content string
		want    model.SourceType
	}{
		{"arxiv url", "https://arxiv.org/abs/2401.00001", "Paper", "", model.SourcePreprint},
		{"doi url", "https://doi.org/10.1000/xyz", "Study", "", model.SourcePeerReviewed},
		{"journal in title", "https://example.org/p", "Journal of Sleep Research", "", model.SourcePeerReviewed},
		{"wikipedia", "https://en.wikipedia.org/wiki/Caffeine", "Caffeine", "", model.SourceEncyclopedia},
		{"news domain", "https://news.example.com/story", "Story", "", model.SourceNews},
		{"press in content", "https://example.org/p", "Announcement", "From the press office", model.SourceNews},
		{"medium", "https://medium.com/@a/post", "Post", "", model.SourceBlog},
		{"unclassified", "https://example.org/page", "Page", "nothing special here", model.SourceOther},
		{"case insensitive", "https://ARXIV.org/abs/1", "PAPER", "", model.SourcePreprint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferSourceType(tt.url, tt.title, tt.content); got != tt.want {
				t.Errorf("inferSourceType(%q, %q, ...) = %s, want %s", tt.url, tt.title, got, tt.want)
			}
		})
	}
}

// A page matching several taxonomies takes the highest-priority type.
func TestInferSourceType_PriorityOrder(t *testing.T) {
	got := inferSourceType("https://news.example.com/arxiv-roundup", "Preprint news from the arxiv blog", "")
	if got != model.SourcePreprint {
		t.Errorf("Expected preprint to win over news and blog, got %s", got)
	}
}

// Classification only sees the leading slice of content.
func TestInferSourceType_ContentWindow(t *testing.T) {
	padding := make([]byte, classificationWindow)
	for i := range padding {
		padding[i] = 'x'
	}
	content := string(padding) + " arxiv"

	if got := inferSourceType("https://example.org/p", "Page", content); got != model.SourceOther {
		t.Errorf("Keyword beyond the window must not classify, got %s", got)
	}
}
