package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SerpAPI queries Google through serpapi.com. It is preferred for
// academic constraints where Google's coverage of preprint servers and
// journals is strongest.
type SerpAPI struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewSerpAPI constructs a SerpAPI search provider
func NewSerpAPI(apiKey string) *SerpAPI {
	return &SerpAPI{
		apiKey:   apiKey,
		endpoint: "https://serpapi.com/search.json",
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Name returns the provider name
func (s *SerpAPI) Name() string {
	return "serpapi"
}

type serpAPIResponse struct {
	OrganicResults []struct {
		Link string `json:"link"`
	} `json:"organic_results"`
}

// Search runs the query against the Google engine
func (s *SerpAPI) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	if strings.TrimSpace(s.apiKey) == "" {
		return nil, errors.New("serpapi: API key is missing")
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi http %d", resp.StatusCode)
	}

	var parsed serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	urls := make([]string, 0, len(parsed.OrganicResults))
	for _, r := range parsed.OrganicResults {
		if r.Link == "" {
			continue
		}
		urls = append(urls, r.Link)
		if maxResults > 0 && len(urls) >= maxResults {
			break
		}
	}
	return urls, nil
}
