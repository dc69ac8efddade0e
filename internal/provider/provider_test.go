package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanQuotes(t *testing.T) {
	got := cleanQuotes([]string{
		"<p>The best time for planning a book is while you’re doing the dishes.</p>",
		"  ",
		"<b></b>",
		"Don't panic & carry a towel.",
		"Success is not&nbsp;final,\u2009failure is not\u00a0fatal.",
	})

	assert.Equal(t, []string{
		"The best time for planning a book is while you’re doing the dishes.",
		"Don't panic & carry a towel.",
		"Success is not final, failure is not fatal.",
	}, got)
}

func TestForbes(t *testing.T) {
	t.Run("name", func(t *testing.T) {
		assert.Equal(t, "forbes", NewForbes(ForbesConfig{}).Name())
	})

	t.Run("uses default url", func(t *testing.T) {
		f := NewForbes(ForbesConfig{})
		assert.Equal(t, forbesDefaultURL, f.url)
		assert.Equal(t, defaultTimeout, f.httpClient.Timeout)
	})

	t.Run("fetches and parses thoughts", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "quotator-test", r.Header.Get("User-Agent"))
			w.Write([]byte(`{"thought":{"relatedThemeThoughts":[
				{"quote":"Adam was the only man who, when he said a good thing, knew that nobody had said it before him."},
				{"quote":"<p>Looking back, I imagine I was always writing.</p>"}
			]}}`))
		}))
		defer server.Close()

		f := NewForbes(ForbesConfig{URL: server.URL, UserAgent: "quotator-test"})
		quotes, err := f.FetchQuotes(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Adam was the only man who, when he said a good thing, knew that nobody had said it before him.",
			"Looking back, I imagine I was always writing.",
		}, quotes)
	})

	t.Run("missing thought is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		_, err := NewForbes(ForbesConfig{URL: server.URL}).FetchQuotes(context.Background())
		assert.Error(t, err)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		_, err := NewForbes(ForbesConfig{URL: server.URL}).FetchQuotes(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})
}

func TestStormConsultancy(t *testing.T) {
	t.Run("name", func(t *testing.T) {
		assert.Equal(t, "computerscience", NewStormConsultancy(StormConfig{}).Name())
	})

	t.Run("fetches and parses quotes", func(t *testing.T) {
		items := []stormQuote{
			{ID: 1, Author: "Phil Karlton", Quote: "There are only two hard things in Computer Science: cache invalidation and naming things."},
			{ID: 2, Author: "Unknown", Quote: ""},
		}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(items)
		}))
		defer server.Close()

		quotes, err := NewStormConsultancy(StormConfig{URL: server.URL}).FetchQuotes(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{items[0].Quote}, quotes)
	})

	t.Run("malformed json is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		_, err := NewStormConsultancy(StormConfig{URL: server.URL}).FetchQuotes(context.Background())
		assert.Error(t, err)
	})

	t.Run("honors timeout", func(t *testing.T) {
		done := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-done:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(done)

		s := NewStormConsultancy(StormConfig{URL: server.URL, Timeout: 50 * time.Millisecond})
		_, err := s.FetchQuotes(context.Background())
		assert.Error(t, err)
	})
}
