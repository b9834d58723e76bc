package research

import (
	"strings"

	"github.com/ppiankov/briefly/internal/model"
)

// classificationWindow bounds how much content feeds classification
const classificationWindow = 500

// inferSourceType classifies a fetched page by keyword heuristics over
// its URL, title, and leading content. Types are checked in fixed
// priority order and the first match wins; a preprint hosted on a
// news-flagged domain classifies as preprint. The order is a behavior
// contract, not a quality ranking.
func inferSourceType(url, title, content string) model.SourceType {
	haystack := strings.ToLower(url + " " + title + " " + model.Truncate(content, classificationWindow))

	for _, st := range model.WebSourceTypes {
		for _, keyword := range sourceKeywords(st) {
			if strings.Contains(haystack, keyword) {
				return st
			}
		}
	}
	return model.SourceOther
}

// sourceKeywords returns the match list for each inferable type.
// The switch is exhaustive over the taxonomy so adding a source type is
// a compile-visible change here.
func sourceKeywords(st model.SourceType) []string {
	switch st {
	case model.SourcePreprint:
		return []string{"arxiv", "biorxiv", "medrxiv"}
	case model.SourcePeerReviewed:
		return []string{"doi.org", "journal", "proceedings"}
	case model.SourceEncyclopedia:
		return []string{"wikipedia.org", "encyclopedia"}
	case model.SourceNews:
		return []string{"news", "press"}
	case model.SourceBlog:
		return []string{"blog", "medium.com"}
	case model.SourceOther, model.SourceLocalFile:
		return nil
	}
	return nil
}
