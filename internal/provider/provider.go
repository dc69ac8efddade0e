// Package provider fetches raw quotes from remote quote sources.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

const defaultTimeout = 30 * time.Second

// Provider is the interface for remote quote sources.
type Provider interface {
	// Name returns the source name the quotes are cached under.
	Name() string

	// FetchQuotes retrieves the raw quote strings. Any transport or decode
	// failure is returned as a single error; partial results are never
	// returned.
	FetchQuotes(ctx context.Context) ([]string, error)
}

var strict = bluemonday.StrictPolicy()

// cleanQuotes strips markup from fetched quotes and drops empty ones.
// Unicode spaces such as &nbsp; become plain spaces.
func cleanQuotes(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, q := range raw {
		q = html.UnescapeString(strict.Sanitize(q))
		q = strings.TrimSpace(strings.Map(plainSpace, q))
		if q == "" {
			continue
		}
		out = append(out, q)
	}
	return out
}

func plainSpace(r rune) rune {
	if unicode.Is(unicode.Zs, r) {
		return ' '
	}
	return r
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// getJSON issues a GET and decodes a JSON body into v.
func getJSON(ctx context.Context, client *http.Client, url, userAgent string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
