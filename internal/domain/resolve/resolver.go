package resolve

import (
	"strings"

	"github.com/campuspulse/campuspulse/internal/domain/alias"
	"github.com/campuspulse/campuspulse/internal/domain/model"
)

// Resolver orchestrates the match tiers in fixed precedence order:
// alias, numeric code, then name matching. It is a pure function of its
// inputs; safe for arbitrary concurrent use.
type Resolver struct {
	aliases *alias.Table
}

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithAliasTable sets the shorthand table consulted before any matching.
func WithAliasTable(t *alias.Table) Option {
	return func(r *Resolver) {
		if t != nil {
			r.aliases = t
		}
	}
}

// NewResolver builds a Resolver with the default alias table unless
// overridden.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{aliases: alias.New()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Normalize trims and lowercases a raw query. Idempotent.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Resolve classifies a raw query against the record collection.
//
// An alias hit is resolved by substring search of its fragment against the
// names; an alias whose fragment matches nothing in the current collection
// falls through to the remaining tiers rather than failing. Purely numeric
// queries go to code matching and never fall through to name matching.
func (r *Resolver) Resolve(raw string, records []model.BuildingRecord) Result {
	query := Normalize(raw)
	if query == "" {
		return noMatch(TierNone)
	}

	if fragment, ok := r.aliases.Lookup(query); ok {
		if res, ok := matchAliasFragment(fragment, records); ok {
			return res
		}
	}

	if isAllDigits(query) {
		return matchCode(query, records)
	}

	return matchName(query, records)
}

// matchAliasFragment finds the first record whose name contains the alias
// target fragment.
func matchAliasFragment(fragment string, records []model.BuildingRecord) (Result, bool) {
	fragment = strings.ToLower(fragment)
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Name), fragment) {
			return exact(TierAlias, rec), true
		}
	}
	return Result{}, false
}
