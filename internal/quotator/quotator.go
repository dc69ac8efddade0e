// Package quotator builds recombined quotes from a loaded quote cache.
package quotator

import (
	"fmt"

	"github.com/abdulachik/quotator/internal/fragment"
	"github.com/abdulachik/quotator/internal/quote"
)

// Source is the quote cache as seen by the generator.
// *cache.Cache satisfies it.
type Source interface {
	fragment.Source
	HasSource(source string) bool
}

// Quotator generates quotes from random fragments.
type Quotator struct {
	src       Source
	extractor *fragment.Extractor
	random    quote.Random
}

// Config holds Quotator configuration.
type Config struct {
	Source Source

	// Random drives Shuffle. Defaults to quote.DefaultRandom.
	Random quote.Random
}

// New creates a Quotator.
func New(cfg Config) *Quotator {
	random := cfg.Random
	if random == nil {
		random = quote.DefaultRandom
	}

	return &Quotator{
		src:       cfg.Source,
		extractor: fragment.NewExtractor(cfg.Source),
		random:    random,
	}
}

// Request describes one generation call.
type Request struct {
	Amount  int    `json:"amount"`
	Source  string `json:"source"`
	Reverse bool   `json:"reverse"`
	Shuffle bool   `json:"shuffle"`
}

// GetQuotes returns amount quotes built from source. Reverse runs before
// Shuffle when both are set. An amount of zero or less yields no quotes.
// Unknown sources are an error; no upper bound is applied to amount.
func (q *Quotator) GetQuotes(amount int, source string, reverse, shuffle bool) ([]*quote.Quote, error) {
	return q.Generate(Request{Amount: amount, Source: source, Reverse: reverse, Shuffle: shuffle})
}

// Generate is GetQuotes taking a Request.
func (q *Quotator) Generate(req Request) ([]*quote.Quote, error) {
	if !q.src.HasSource(req.Source) {
		// Surface the cache's own precondition error (not loaded / unknown).
		if _, err := q.src.RandomQuote(req.Source); err != nil {
			return nil, fmt.Errorf("generate quotes: %w", err)
		}
	}

	n := max(req.Amount, 0)
	quotes := make([]*quote.Quote, 0, n)
	for i := 0; i < n; i++ {
		qt, err := q.build(req.Source)
		if err != nil {
			return nil, fmt.Errorf("generate quotes: %w", err)
		}

		if req.Reverse {
			qt.Reverse()
		}
		if req.Shuffle {
			qt.Shuffle(q.random)
		}

		quotes = append(quotes, qt)
	}

	return quotes, nil
}

func (q *Quotator) build(source string) (*quote.Quote, error) {
	beginning, err := q.extractor.Beginning(source)
	if err != nil {
		return nil, err
	}
	middle, err := q.extractor.Middle(source)
	if err != nil {
		return nil, err
	}
	end, err := q.extractor.End(source)
	if err != nil {
		return nil, err
	}
	return quote.New(beginning, middle, end), nil
}
