package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/briefly/internal/cache"
	"github.com/ppiankov/briefly/internal/model"
	"github.com/ppiankov/briefly/internal/worker"
)

// Page is the title/content pair returned for a fetched URL
type Page struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Fetcher retrieves pages politely: robots.txt compliance, per-domain
// rate limiting, size caps, and an optional page cache.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	maxChars   int
	robots     *RobotsChecker
	limiter    *worker.Limiter
	cache      cache.Cache
	cacheTTL   model.CacheConfig
}

// NewFetcher creates a new Fetcher with the given configuration.
// pageCache may be nil to disable caching.
func NewFetcher(cfg model.HTTPConfig, cacheCfg model.CacheConfig, pageCache cache.Cache) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		maxChars:  cfg.MaxChars,
		robots:    NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter:   worker.NewLimiter(cfg.RatePerHost, cfg.RateBurst),
		cache:     pageCache,
		cacheTTL:  cacheCfg,
	}
}

// Fetch retrieves a URL and extracts its title and visible text.
// Content is capped; callers must tolerate truncation.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	if f.cache != nil {
		if raw, found := f.cache.Get(cache.Key(rawURL)); found {
			var page Page
			if err := json.Unmarshal(raw, &page); err == nil {
				return &page, nil
			}
		}
	}

	if !f.robots.CanFetch(ctx, rawURL) {
		return nil, fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	page := f.buildPage(rawURL, resp.Header.Get("Content-Type"), string(body))

	if f.cache != nil {
		if raw, err := json.Marshal(page); err == nil {
			_ = f.cache.Set(cache.Key(rawURL), raw, f.cacheTTL.TTL)
		}
	}

	return page, nil
}

// buildPage parses HTML responses into title plus visible text; anything
// else is kept raw. Content is capped at maxChars.
func (f *Fetcher) buildPage(rawURL, contentType, body string) *Page {
	title := ""
	content := body

	if strings.Contains(contentType, "text/html") {
		if doc, err := html.Parse(strings.NewReader(body)); err == nil {
			title = extractTitle(doc)
			content = extractText(doc)
		}
	}

	if title == "" {
		title = rawURL
	}
	if f.maxChars > 0 {
		content = model.Truncate(content, f.maxChars)
	}

	return &Page{Title: title, Content: content}
}
