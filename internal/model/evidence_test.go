package model

import (
	"testing"
	"time"
)

func TestNewEvidence_ScoreIsRoundedMean(t *testing.T) {
	ev := NewEvidence("https://example.com", "Example", "some content", SourceOther, 0.5, 0.6, 0.6, time.Now())

	want := Round3((0.5 + 0.6 + 0.6) / 3.0)
	if ev.Score != want {
		t.Errorf("Expected score %v, got %v", want, ev.Score)
	}
	if ev.Score < 0 || ev.Score > 1 {
		t.Errorf("Score out of bounds: %v", ev.Score)
	}
}

func TestNewEvidence_SnippetIsBounded(t *testing.T) {
	content := make([]byte, SnippetLimit*3)
	for i := range content {
		content[i] = 'a'
	}
	ev := NewEvidence("https://example.com", "Example", string(content), SourceOther, 0.5, 0.5, 0.5, time.Now())

	if len(ev.Snippet) != SnippetLimit {
		t.Errorf("Expected snippet length %d, got %d", SnippetLimit, len(ev.Snippet))
	}
}

func TestDedupe_HigherScoreWins(t *testing.T) {
	low := Evidence{URL: "https://example.com/a", Title: "low", Score: 0.4}
	high := Evidence{URL: "https://example.com/a", Title: "high", Score: 0.8}
	other := Evidence{URL: "https://example.com/b", Title: "other", Score: 0.5}

	result := Dedupe([]Evidence{low, other, high})

	if len(result) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(result))
	}
	if result[0].Title != "high" {
		t.Errorf("Expected higher-scored duplicate to win, got %q", result[0].Title)
	}
	if result[1].URL != "https://example.com/b" {
		t.Errorf("Expected first-seen URL order to be preserved")
	}
}

func TestDedupe_TiesKeepFirstEncountered(t *testing.T) {
	first := Evidence{URL: "https://example.com/a", Title: "first", Score: 0.6}
	second := Evidence{URL: "https://example.com/a", Title: "second", Score: 0.6}

	result := Dedupe([]Evidence{first, second})

	if len(result) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(result))
	}
	if result[0].Title != "first" {
		t.Errorf("Expected tie to keep first entry, got %q", result[0].Title)
	}
}

func TestDedupe_Empty(t *testing.T) {
	if got := Dedupe(nil); len(got) != 0 {
		t.Errorf("Expected empty result, got %d items", len(got))
	}
}

func TestRound3(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.6666666, 0.667},
		{0.7, 0.7},
		{0.12345, 0.123},
		{0.0, 0.0},
	}
	for _, c := range cases {
		if got := Round3(c.in); got != c.want {
			t.Errorf("Round3(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
