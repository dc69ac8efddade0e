package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	// ComputerScienceSource is the cache key for programming quotes.
	ComputerScienceSource = "computerscience"

	stormDefaultURL = "http://quotes.stormconsultancy.co.uk/quotes.json"
)

// StormConsultancy fetches programming quotes from quotes.stormconsultancy.co.uk.
type StormConsultancy struct {
	httpClient *http.Client
	url        string
	userAgent  string
}

// StormConfig holds configuration for the Storm Consultancy provider.
type StormConfig struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
}

// NewStormConsultancy creates a Storm Consultancy provider.
func NewStormConsultancy(cfg StormConfig) *StormConsultancy {
	url := cfg.URL
	if url == "" {
		url = stormDefaultURL
	}

	return &StormConsultancy{
		httpClient: newHTTPClient(cfg.Timeout),
		url:        url,
		userAgent:  cfg.UserAgent,
	}
}

// Name returns the source name.
func (s *StormConsultancy) Name() string {
	return ComputerScienceSource
}

type stormQuote struct {
	ID     int    `json:"id"`
	Author string `json:"author"`
	Quote  string `json:"quote"`
}

// FetchQuotes retrieves all programming quotes.
func (s *StormConsultancy) FetchQuotes(ctx context.Context) ([]string, error) {
	var items []stormQuote
	if err := getJSON(ctx, s.httpClient, s.url, s.userAgent, &items); err != nil {
		return nil, fmt.Errorf("fetch programming quotes: %w", err)
	}

	raw := make([]string, 0, len(items))
	for _, item := range items {
		raw = append(raw, item.Quote)
	}

	quotes := cleanQuotes(raw)
	slog.Debug("fetched programming quotes", "count", len(quotes))
	return quotes, nil
}
