package research

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/briefly/internal/fetch"
	"github.com/ppiankov/briefly/internal/model"
	"github.com/ppiankov/briefly/internal/worker"
)

// Searcher returns candidate URLs for a query. Provider selection by
// constraints happens behind this interface; the gatherer only needs
// the URL list.
type Searcher interface {
	Search(ctx context.Context, query string, constraints *model.EvidenceConstraints) ([]string, error)
}

// Fetcher returns a title/content pair for a URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Page, error)
}

// Gatherer turns a sub-question into scored, filtered Evidence
type Gatherer struct {
	searcher Searcher
	fetcher  Fetcher
	workers  int
	verbose  bool
	now      func() time.Time
}

// NewGatherer creates a gatherer over the given collaborators
func NewGatherer(searcher Searcher, fetcher Fetcher, workers int, verbose bool) *Gatherer {
	if workers <= 0 {
		workers = 1
	}
	return &Gatherer{
		searcher: searcher,
		fetcher:  fetcher,
		workers:  workers,
		verbose:  verbose,
		now:      time.Now,
	}
}

// Gathering defaults applied absent a richer signal
const (
	defaultFreshness = 0.6
	defaultTrust     = 0.6
	relevanceFloor   = 0.1
	relevanceWindow  = 400 // words of content scanned for query terms
)

// Gather runs the sub-question's queries and returns surviving Evidence.
// Explicit queries (critic follow-ups) bypass variant generation. A
// failing search skips that query and a failing fetch skips that URL;
// one bad item never aborts the gather. Result order is deterministic
// for a fixed collaborator output: queries in order, URLs in search
// order. Ranking is the caller's concern.
func (g *Gatherer) Gather(ctx context.Context, sub model.SubQuestion, constraints *model.EvidenceConstraints, queries []string) []model.Evidence {
	if len(queries) == 0 {
		queries = sub.QueryVariants
	}
	if len(queries) == 0 {
		queries = queryVariants(sub)
	}

	var evidence []model.Evidence
	for _, query := range queries {
		urls, err := g.searcher.Search(ctx, query, constraints)
		if err != nil {
			if g.verbose {
				fmt.Fprintf(os.Stderr, "Warning: search failed for %q: %v\n", query, err)
			}
			continue
		}

		// Fetches for one query fan out concurrently; results join in
		// submission order so dedup tie-breaking stays deterministic.
		pages := worker.Map(ctx, g.workers, len(urls), func(ctx context.Context, i int) (*fetch.Page, error) {
			return g.fetcher.Fetch(ctx, urls[i])
		})

		for i, result := range pages {
			if result.Err != nil {
				if g.verbose {
					fmt.Fprintf(os.Stderr, "Warning: fetch failed for %s: %v\n", urls[i], result.Err)
				}
				continue
			}
			if ev, ok := g.buildEvidence(urls[i], result.Value, constraints, query); ok {
				evidence = append(evidence, ev)
			}
		}
	}
	return evidence
}

// buildEvidence classifies, filters, and scores one fetched page
func (g *Gatherer) buildEvidence(url string, page *fetch.Page, constraints *model.EvidenceConstraints, query string) (model.Evidence, bool) {
	sourceType := inferSourceType(url, page.Title, page.Content)

	if !constraints.AllowsSourceType(sourceType) ||
		!constraints.AllowsYears(url+" "+model.Truncate(page.Content, classificationWindow)) {
		if g.verbose {
			fmt.Fprintf(os.Stderr, "Ignored evidence due to constraints: %s\n", url)
		}
		return model.Evidence{}, false
	}

	relevance := scoreRelevance(query, page.Content)
	ev := model.NewEvidence(url, page.Title, page.Content, sourceType, relevance, defaultFreshness, defaultTrust, g.now().UTC())
	return ev, true
}

// queryVariants generates search queries for a sub-question: the text
// itself, overview and survey forms, then one per tactic. Duplicates
// collapse keeping first-seen order; empty strings are dropped.
func queryVariants(sub model.SubQuestion) []string {
	candidates := []string{
		sub.Text,
		sub.Text + " overview",
		sub.Text + " survey",
	}
	for _, tactic := range sub.Tactics {
		candidates = append(candidates, sub.Text+" "+tactic)
	}

	seen := make(map[string]bool, len(candidates))
	var variants []string
	for _, q := range candidates {
		if strings.TrimSpace(q) == "" || seen[q] {
			continue
		}
		seen[q] = true
		variants = append(variants, q)
	}
	return variants
}

// scoreRelevance is the fraction of query terms present in the leading
// window of content. Either side empty floors the score rather than
// zeroing it, so thin pages still rank below matched ones but above
// nothing.
func scoreRelevance(query, content string) float64 {
	queryTerms := fieldSet(strings.ToLower(query), 0)
	contentTerms := fieldSet(strings.ToLower(content), relevanceWindow)
	if len(queryTerms) == 0 || len(contentTerms) == 0 {
		return relevanceFloor
	}

	hits := 0
	for term := range queryTerms {
		if contentTerms[term] {
			hits++
		}
	}
	return model.Round3(float64(hits) / float64(len(queryTerms)))
}

// fieldSet builds a set of whitespace-split tokens, capped at limit
// tokens when limit > 0.
func fieldSet(s string, limit int) map[string]bool {
	fields := strings.Fields(s)
	if limit > 0 && len(fields) > limit {
		fields = fields[:limit]
	}
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
