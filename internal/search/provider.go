package search

import (
	"context"

	"github.com/ppiankov/briefly/internal/model"
)

// Provider returns candidate URLs for a query, bounded by maxResults
type Provider interface {
	// Name returns the provider name
	Name() string

	// Search returns result URLs for the query
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
}

// Selector routes each query to a provider based on the active evidence
// constraints. Academic constraints prefer SerpAPI, news constraints the
// RSS provider; everything else goes to Tavily when keyed, otherwise
// DuckDuckGo. The core loop only sees the URL list that comes back.
type Selector struct {
	serpapi    Provider // nil when no key configured
	tavily     Provider // nil when no key configured
	news       Provider
	fallback   Provider
	maxResults int
}

// NewSelector wires the provider set from configuration
func NewSelector(cfg model.SearchConfig) *Selector {
	s := &Selector{
		news:       NewGoogleNewsRSS(),
		fallback:   NewDuckDuckGo(),
		maxResults: cfg.MaxResults,
	}
	if cfg.SerpAPIKey != "" {
		s.serpapi = NewSerpAPI(cfg.SerpAPIKey)
	}
	if cfg.TavilyKey != "" {
		s.tavily = NewTavily(cfg.TavilyKey, "")
	}
	return s
}

// Search picks a provider for the constraints and runs the query
func (s *Selector) Search(ctx context.Context, query string, constraints *model.EvidenceConstraints) ([]string, error) {
	return s.pick(constraints).Search(ctx, query, s.maxResults)
}

// pick applies the provider selection policy
func (s *Selector) pick(constraints *model.EvidenceConstraints) Provider {
	wantsAcademic := false
	wantsNews := false
	if constraints != nil {
		for _, st := range constraints.SourceTypes {
			// Exhaustive over the web source taxonomy; unhandled types
			// fall through to the default provider.
			switch st {
			case model.SourcePreprint, model.SourcePeerReviewed:
				wantsAcademic = true
			case model.SourceNews:
				wantsNews = true
			case model.SourceEncyclopedia, model.SourceBlog, model.SourceOther, model.SourceLocalFile:
			}
		}
	}

	if wantsAcademic && s.serpapi != nil {
		return s.serpapi
	}
	if wantsNews {
		return s.news
	}
	if s.tavily != nil {
		return s.tavily
	}
	return s.fallback
}
