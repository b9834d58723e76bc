package model

import (
	"math"
	"time"
)

// SourceType classifies where a piece of evidence came from
type SourceType string

const (
	SourcePreprint     SourceType = "preprint"      // arXiv, bioRxiv, medRxiv
	SourcePeerReviewed SourceType = "peer_reviewed" // DOI-resolved journals, proceedings
	SourceEncyclopedia SourceType = "encyclopedia"  // Wikipedia and similar
	SourceNews         SourceType = "news"          // News and press outlets
	SourceBlog         SourceType = "blog"          // Blogs, Medium posts
	SourceOther        SourceType = "other"         // Anything unclassified
	SourceLocalFile    SourceType = "local_file"    // Caller-supplied document
)

// WebSourceTypes enumerates the types that can be inferred for a fetched
// page, in classification priority order. local_file is assigned only to
// ingested documents and never inferred.
var WebSourceTypes = []SourceType{
	SourcePreprint,
	SourcePeerReviewed,
	SourceEncyclopedia,
	SourceNews,
	SourceBlog,
	SourceOther,
}

// Evidence represents a single scored piece of retrieved material.
// Instances are immutable after construction; a duplicate URL is only
// ever replaced wholesale during deduplication.
type Evidence struct {
	URL        string     `json:"url"` // Identity key for dedup
	Title      string     `json:"title"`
	Snippet    string     `json:"snippet"`
	CapturedAt time.Time  `json:"captured_at"`
	SourceType SourceType `json:"source_type"`
	Relevance  float64    `json:"relevance"`
	Freshness  float64    `json:"freshness"`
	Trust      float64    `json:"trust"`
	Score      float64    `json:"score"` // Mean of the three sub-scores, 3 decimals
}

// SnippetLimit bounds the excerpt stored on each Evidence.
const SnippetLimit = 200

// NewEvidence builds an Evidence with its score derived from the three
// sub-scores. Callers are responsible for passing sub-scores in [0,1].
func NewEvidence(url, title, content string, sourceType SourceType, relevance, freshness, trust float64, capturedAt time.Time) Evidence {
	return Evidence{
		URL:        url,
		Title:      title,
		Snippet:    Truncate(content, SnippetLimit),
		CapturedAt: capturedAt,
		SourceType: sourceType,
		Relevance:  relevance,
		Freshness:  freshness,
		Trust:      trust,
		Score:      Round3((relevance + freshness + trust) / 3.0),
	}
}

// Dedupe collapses evidence by URL, keeping the instance with the
// strictly higher score. Ties keep the earlier entry, and first-seen
// URL order is preserved, so the result is deterministic for a fixed
// input order.
func Dedupe(items []Evidence) []Evidence {
	byURL := make(map[string]int, len(items))
	result := make([]Evidence, 0, len(items))
	for _, item := range items {
		idx, seen := byURL[item.URL]
		if !seen {
			byURL[item.URL] = len(result)
			result = append(result, item)
			continue
		}
		if item.Score > result[idx].Score {
			result[idx] = item
		}
	}
	return result
}

// Round3 rounds to three decimal places
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Truncate caps s at max bytes
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
