// Package quote holds the generated Quote value and the word-level
// transforms applied to its text.
package quote

import (
	"math/rand/v2"
	"strings"
)

// Random yields uniformly distributed floats in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	Float64() float64
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

// DefaultRandom draws from the math/rand/v2 global source.
var DefaultRandom Random = globalRandom{}

// Quote is one generated quotation. Text starts as the comma-joined
// fragments and afterwards only changes through Reverse and Shuffle.
type Quote struct {
	Beginning string `json:"beginning"`
	Middle    string `json:"middle"`
	End       string `json:"end"`
	Text      string `json:"text"`
}

// New builds a Quote from three fragments. Empty fragments are allowed.
func New(beginning, middle, end string) *Quote {
	return &Quote{
		Beginning: beginning,
		Middle:    middle,
		End:       end,
		Text:      beginning + ", " + middle + ", " + end,
	}
}

// Reverse reverses the order of the space-separated words in Text.
func (q *Quote) Reverse() *Quote {
	words := strings.Split(q.Text, " ")
	for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
		words[i], words[j] = words[j], words[i]
	}
	q.Text = strings.Join(words, " ")
	return q
}

// Shuffle puts the space-separated words of Text in random order.
// A nil r uses DefaultRandom.
func (q *Quote) Shuffle(r Random) *Quote {
	words := strings.Split(q.Text, " ")
	ShuffleStrings(r, words)
	q.Text = strings.Join(words, " ")
	return q
}

// String returns the current text.
func (q *Quote) String() string {
	return q.Text
}
