// Package resolve classifies free-text or shorthand queries against the
// building collection using a fixed sequence of match tiers.
package resolve

import "github.com/campuspulse/campuspulse/internal/domain/model"

// Kind tags the outcome of a resolution.
type Kind int

const (
	// KindNoMatch means no tier produced a usable record.
	KindNoMatch Kind = iota
	// KindExact means a single record answers the query.
	KindExact
	// KindSuggestions means the query was ambiguous; ranked candidates follow.
	KindSuggestions
)

// String returns the wire form of the kind.
func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindSuggestions:
		return "suggestions"
	default:
		return "none"
	}
}

// Tier names the match stage that decided a result.
type Tier string

// Tier labels, in precedence order.
const (
	TierAlias      Tier = "alias"
	TierCode       Tier = "code"
	TierExactName  Tier = "exact_name"
	TierSubstring  Tier = "substring"
	TierSimilarity Tier = "similarity"
	TierNone       Tier = "none"
)

// Scored pairs a candidate record with its similarity score in [0,1].
type Scored struct {
	Record model.BuildingRecord
	Score  float64
}

// Result is the tagged outcome of one resolution. Record is meaningful only
// for KindExact, Suggestions only for KindSuggestions. Created fresh per
// query; never persisted.
type Result struct {
	Kind        Kind
	Tier        Tier
	Record      model.BuildingRecord
	Suggestions []Scored
}

func exact(tier Tier, r model.BuildingRecord) Result {
	return Result{Kind: KindExact, Tier: tier, Record: r}
}

func suggestions(tier Tier, s []Scored) Result {
	return Result{Kind: KindSuggestions, Tier: tier, Suggestions: s}
}

func noMatch(tier Tier) Result {
	return Result{Kind: KindNoMatch, Tier: tier}
}
