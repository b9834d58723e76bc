package search

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"
)

// GoogleNewsRSS searches news coverage through the Google News RSS
// feed. Keyless, so it always serves news-constrained queries even when
// no paid provider is configured.
type GoogleNewsRSS struct {
	parser   *gofeed.Parser
	endpoint string
}

// NewGoogleNewsRSS constructs the news RSS provider
func NewGoogleNewsRSS() *GoogleNewsRSS {
	return &GoogleNewsRSS{
		parser:   gofeed.NewParser(),
		endpoint: "https://news.google.com/rss/search",
	}
}

// Name returns the provider name
func (g *GoogleNewsRSS) Name() string {
	return "googlenews"
}

// Search fetches the query's RSS feed and returns item links
func (g *GoogleNewsRSS) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is empty")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", "en-US")

	feed, err := g.parser.ParseURLWithContext(g.endpoint+"?"+params.Encode(), ctx)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		urls = append(urls, item.Link)
		if maxResults > 0 && len(urls) >= maxResults {
			break
		}
	}
	return urls, nil
}
