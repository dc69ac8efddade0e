// Package fragment cuts beginning, middle and end fragments out of raw
// quotes.
package fragment

import (
	"regexp"
	"strings"
)

// Defaults used when a rule finds nothing.
const (
	DefaultBeginning = "Since the beginning of time"
	DefaultMiddle    = "the middle part of a story"
	DefaultEnd       = "has always come before the end."
)

// \s only matches ASCII whitespace, so the rules add \p{Zs} for no-break
// and other Unicode spaces.
var (
	// leading run of word characters, apostrophes, quote marks and spaces
	beginningRule = regexp.MustCompile(`^.*?([\w’'"\s\p{Zs}]*)?.*`)

	// run following the first delimiter that is followed by whitespace
	middleRule = regexp.MustCompile(`.*?(?:[.,!:;—-][\s\p{Zs}])([\w’'"\s\p{Zs}]*)?.*`)

	// trailing words plus closing punctuation, ignoring closing quotes and
	// trailing whitespace
	endRule = regexp.MustCompile(`.*?([\s\p{Zs}\w’'"]*[.,!:;—-]*)[”\s\p{Zs}]*$`)
)

// ExtractBeginning returns the beginning fragment of raw.
func ExtractBeginning(raw string) string {
	return extract(beginningRule, raw, DefaultBeginning)
}

// ExtractMiddle returns the middle fragment of raw.
func ExtractMiddle(raw string) string {
	return extract(middleRule, raw, DefaultMiddle)
}

// ExtractEnd returns the end fragment of raw.
func ExtractEnd(raw string) string {
	return extract(endRule, raw, DefaultEnd)
}

func extract(rule *regexp.Regexp, raw, def string) string {
	m := rule.FindStringSubmatch(raw)
	if m == nil {
		return def
	}
	if s := strings.TrimSpace(m[1]); s != "" {
		return s
	}
	return def
}
