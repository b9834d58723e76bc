package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ddgLimiter enforces a global 1 QPS limit across all DuckDuckGo
// instances; the lite endpoint throttles aggressively.
var ddgLimiter = rate.NewLimiter(rate.Limit(1), 1)

// DuckDuckGo scrapes DuckDuckGo's HTML lite interface. It needs no API
// key and serves as the default provider.
type DuckDuckGo struct {
	client *http.Client
}

// NewDuckDuckGo creates a DuckDuckGo searcher with a modest timeout
func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{client: &http.Client{Timeout: 15 * time.Second}}
}

// Name returns the provider name
func (d *DuckDuckGo) Name() string {
	return "duckduckgo"
}

// resultLinkPattern matches result anchors on the lite page
var resultLinkPattern = regexp.MustCompile(`<a[^>]*href=['"](https?://[^'"]+)['"]`)

// Search scrapes the DuckDuckGo lite HTML page for result URLs
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is empty")
	}

	if err := ddgLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := "https://lite.duckduckgo.com/lite/"
	formData := url.Values{}
	formData.Set("q", query)

	var resp *http.Response
	delay := 1 * time.Second
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(formData.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err = d.client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		_ = resp.Body.Close()

		// Back off and retry on 429, doubling the delay up to 30s
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		if delay < 30*time.Second {
			delay *= 2
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return parseLiteResults(string(body), maxResults), nil
}

// parseLiteResults extracts outbound result URLs from the lite HTML,
// skipping DuckDuckGo-internal links.
func parseLiteResults(html string, maxResults int) []string {
	var urls []string
	seen := make(map[string]bool)
	for _, match := range resultLinkPattern.FindAllStringSubmatch(html, -1) {
		link := match[1]
		if strings.Contains(link, "duckduckgo.com") {
			continue
		}
		if seen[link] {
			continue
		}
		seen[link] = true
		urls = append(urls, link)
		if maxResults > 0 && len(urls) >= maxResults {
			break
		}
	}
	return urls
}
