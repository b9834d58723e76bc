package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Tavily calls the Tavily search API
type Tavily struct {
	apiKey   string
	depth    string // basic or advanced
	endpoint string
	client   *http.Client
}

// NewTavily constructs a Tavily search provider
func NewTavily(apiKey string, depth string) *Tavily {
	if depth == "" {
		depth = "basic"
	}
	return &Tavily{
		apiKey:   apiKey,
		depth:    depth,
		endpoint: "https://api.tavily.com/search",
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Name returns the provider name
func (t *Tavily) Name() string {
	return "tavily"
}

type tavilyResponse struct {
	Results []struct {
		URL string `json:"url"`
	} `json:"results"`
}

// Search posts a query to Tavily
func (t *Tavily) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	if strings.TrimSpace(t.apiKey) == "" {
		return nil, errors.New("tavily: API key is missing")
	}

	body := map[string]any{
		"query":       query,
		"depth":       t.depth,
		"max_results": maxResults,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	var resp *http.Response
	delay := 1 * time.Second
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+t.apiKey)

		resp, err = t.client.Do(req)
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
		return nil, fmt.Errorf("tavily http %d", resp.StatusCode)
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	urls := make([]string, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.URL == "" {
			continue
		}
		urls = append(urls, r.URL)
		if maxResults > 0 && len(urls) >= maxResults {
			break
		}
	}
	return urls, nil
}
