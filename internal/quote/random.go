package quote

// Pick returns a uniformly chosen element of items.
// The bool is false when items is empty.
func Pick(r Random, items []string) (string, bool) {
	if len(items) == 0 {
		return "", false
	}
	if r == nil {
		r = DefaultRandom
	}
	return items[index(r, len(items))], true
}

// ShuffleStrings shuffles items in place (Durstenfeld).
func ShuffleStrings(r Random, items []string) {
	if r == nil {
		r = DefaultRandom
	}
	for i := len(items) - 1; i > 0; i-- {
		j := index(r, i+1)
		items[i], items[j] = items[j], items[i]
	}
}

// index maps a [0,1) float onto [0,n). Out-of-range floats from a faulty
// source are clamped so callers never index out of bounds.
func index(r Random, n int) int {
	i := int(r.Float64() * float64(n))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
