package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	// ForbesSource is the cache key for Forbes quotes.
	ForbesSource = "forbes"

	forbesDefaultURL = "https://www.forbes.com/forbesapi/thought/uri.json?enrich=true&query=25&relatedlimit=25"
)

// Forbes fetches quotes from the Forbes "thoughts" API.
type Forbes struct {
	httpClient *http.Client
	url        string
	userAgent  string
}

// ForbesConfig holds configuration for the Forbes provider.
type ForbesConfig struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
}

// NewForbes creates a Forbes provider.
func NewForbes(cfg ForbesConfig) *Forbes {
	url := cfg.URL
	if url == "" {
		url = forbesDefaultURL
	}

	return &Forbes{
		httpClient: newHTTPClient(cfg.Timeout),
		url:        url,
		userAgent:  cfg.UserAgent,
	}
}

// Name returns the source name.
func (f *Forbes) Name() string {
	return ForbesSource
}

// forbesResponse is the subset of the thought API response we read.
type forbesResponse struct {
	Thought *struct {
		RelatedThemeThoughts []struct {
			Quote string `json:"quote"`
		} `json:"relatedThemeThoughts"`
	} `json:"thought"`
}

// FetchQuotes retrieves the related theme thoughts.
func (f *Forbes) FetchQuotes(ctx context.Context) ([]string, error) {
	var resp forbesResponse
	if err := getJSON(ctx, f.httpClient, f.url, f.userAgent, &resp); err != nil {
		return nil, fmt.Errorf("fetch forbes thoughts: %w", err)
	}

	if resp.Thought == nil {
		return nil, fmt.Errorf("fetch forbes thoughts: response has no thought")
	}

	raw := make([]string, 0, len(resp.Thought.RelatedThemeThoughts))
	for _, t := range resp.Thought.RelatedThemeThoughts {
		raw = append(raw, t.Quote)
	}

	quotes := cleanQuotes(raw)
	slog.Debug("fetched forbes quotes", "count", len(quotes))
	return quotes, nil
}
