package cache

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed offline.yaml
var offlineYAML []byte

// Entries maps a source name to its ordered raw quotes.
type Entries map[string][]string

// Clone returns a deep copy of e.
func (e Entries) Clone() Entries {
	if e == nil {
		return nil
	}
	out := make(Entries, len(e))
	for k, v := range e {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Sources returns the source names in sorted order.
func (e Entries) Sources() []string {
	names := make([]string, 0, len(e))
	for k := range e {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ParseEntries decodes a YAML (or JSON) source → quotes document.
func ParseEntries(data []byte) (Entries, error) {
	var e Entries
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parse entries: %w", err)
	}
	return e, nil
}

// DefaultFallback returns the built-in offline quotes.
func DefaultFallback() Entries {
	e, err := ParseEntries(offlineYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded offline quotes: %v", err))
	}
	return e
}
