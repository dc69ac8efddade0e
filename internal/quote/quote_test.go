package quote

import (
	"math/rand/v2"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seq replays a fixed list of floats.
type seq struct {
	vals []float64
	i    int
}

func (s *seq) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestNew(t *testing.T) {
	t.Run("joins fragments", func(t *testing.T) {
		q := New("Since the beginning of time", "the middle part of a story", "has always come before the end.")
		assert.Equal(t, "Since the beginning of time", q.Beginning)
		assert.Equal(t, "the middle part of a story", q.Middle)
		assert.Equal(t, "has always come before the end.", q.End)
		assert.Equal(t, "Since the beginning of time, the middle part of a story, has always come before the end.", q.Text)
	})

	t.Run("empty fragments allowed", func(t *testing.T) {
		q := New("", "", "")
		assert.Equal(t, ", , ", q.Text)
	})
}

func TestQuote_Reverse(t *testing.T) {
	t.Run("reverses words", func(t *testing.T) {
		q := New("A", "B", "C!")
		got := q.Reverse()

		assert.Same(t, q, got)
		assert.Equal(t, "C! B, A,", q.Text)
	})

	t.Run("leaves fragments untouched", func(t *testing.T) {
		q := New("one two", "three", "four")
		q.Reverse()

		assert.Equal(t, "one two", q.Beginning)
		assert.Equal(t, "three", q.Middle)
		assert.Equal(t, "four", q.End)
	})

	t.Run("is an involution", func(t *testing.T) {
		texts := []string{
			"There are only two hard things",
			"single",
			"Orders a beer. Orders 0 beers.",
		}
		for _, text := range texts {
			q := &Quote{Text: text}
			q.Reverse().Reverse()
			assert.Equal(t, text, q.Text)
		}
	})

	t.Run("keeps empty words from double spaces", func(t *testing.T) {
		q := &Quote{Text: "a  b"}
		q.Reverse()
		assert.Equal(t, "b  a", q.Text)
	})
}

func TestQuote_Shuffle(t *testing.T) {
	t.Run("preserves the multiset of words", func(t *testing.T) {
		r := rand.New(rand.NewPCG(1, 2))
		for i := 0; i < 50; i++ {
			q := New("QA Engineer walks into a bar", "Orders a beer", "Orders a lizard.")
			before := strings.Split(q.Text, " ")

			got := q.Shuffle(r)
			require.Same(t, q, got)

			after := strings.Split(q.Text, " ")
			sort.Strings(before)
			sort.Strings(after)
			assert.Equal(t, before, after)
		}
	})

	t.Run("deterministic with a fixed source", func(t *testing.T) {
		// zeros always swap with index 0
		q := &Quote{Text: "a b c d"}
		q.Shuffle(&seq{vals: []float64{0}})
		assert.Equal(t, "b c d a", q.Text)
	})

	t.Run("near-one values keep order", func(t *testing.T) {
		q := &Quote{Text: "a b c d"}
		q.Shuffle(&seq{vals: []float64{0.999999}})
		assert.Equal(t, "a b c d", q.Text)
	})

	t.Run("nil source uses default", func(t *testing.T) {
		q := &Quote{Text: "x y z"}
		q.Shuffle(nil)
		assert.ElementsMatch(t, []string{"x", "y", "z"}, strings.Split(q.Text, " "))
	})
}

func TestPick(t *testing.T) {
	t.Run("empty slice", func(t *testing.T) {
		_, ok := Pick(DefaultRandom, nil)
		assert.False(t, ok)
	})

	t.Run("maps float onto index", func(t *testing.T) {
		items := []string{"a", "b", "c", "d"}
		tests := []struct {
			f    float64
			want string
		}{
			{0, "a"},
			{0.24, "a"},
			{0.25, "b"},
			{0.5, "c"},
			{0.99, "d"},
		}
		for _, tt := range tests {
			got, ok := Pick(&seq{vals: []float64{tt.f}}, items)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got, "f=%v", tt.f)
		}
	})

	t.Run("clamps faulty sources", func(t *testing.T) {
		items := []string{"a", "b"}
		got, _ := Pick(&seq{vals: []float64{1.5}}, items)
		assert.Equal(t, "b", got)
		got, _ = Pick(&seq{vals: []float64{-1}}, items)
		assert.Equal(t, "a", got)
	})

	t.Run("reaches every element", func(t *testing.T) {
		r := rand.New(rand.NewPCG(7, 7))
		items := []string{"a", "b", "c"}
		seen := map[string]bool{}
		for i := 0; i < 200; i++ {
			v, _ := Pick(r, items)
			seen[v] = true
		}
		assert.Len(t, seen, 3)
	})
}
