// Package alias maps colloquial campus shorthand to official name fragments.
package alias

import "strings"

// defaults is the built-in shorthand table. Keys are fully lowercased; the
// value is a fragment of an official building name, not a display code, so
// renaming a building in the source data does not strand the alias.
var defaults = map[string]string{
	"culc":     "clough",
	"the culc": "clough",
	"gym":      "campus recreation",
	"rec":      "campus recreation",
	"library":  "library",
	"caf":      "dining",
}

// Table is a static, case-insensitive mapping from shorthand terms to a
// target-name fragment. It is configuration data, never derived from the
// building collection.
type Table struct {
	entries map[string]string
}

// Option applies a configuration option to the Table.
type Option func(*Table)

// WithEntries merges extra shorthand entries over the built-in defaults.
// Keys are lowercased and trimmed; empty keys or fragments are ignored.
func WithEntries(entries map[string]string) Option {
	return func(t *Table) {
		for term, fragment := range entries {
			term = strings.ToLower(strings.TrimSpace(term))
			fragment = strings.TrimSpace(fragment)
			if term == "" || fragment == "" {
				continue
			}
			t.entries[term] = fragment
		}
	}
}

// WithoutDefaults clears the built-in table before options merge entries.
func WithoutDefaults() Option {
	return func(t *Table) {
		t.entries = make(map[string]string)
	}
}

// New builds a Table from the built-in defaults and the given options.
func New(opts ...Option) *Table {
	t := &Table{entries: make(map[string]string, len(defaults))}
	for term, fragment := range defaults {
		t.entries[term] = fragment
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Lookup returns the target-name fragment for a normalized query. The match
// is a direct key lookup on the lowercased, trimmed query; no fuzziness.
func (t *Table) Lookup(query string) (string, bool) {
	fragment, ok := t.entries[strings.ToLower(strings.TrimSpace(query))]
	return fragment, ok
}

// Len returns the number of shorthand entries.
func (t *Table) Len() int {
	return len(t.entries)
}
