package resolve

import (
	"sort"
	"strings"

	"github.com/xrash/smetrics"

	"github.com/campuspulse/campuspulse/internal/domain/model"
)

// Similarity thresholds and the suggestion cap. These are load-bearing:
// changing them changes which queries auto-correct versus prompt the user.
const (
	exactThreshold   = 0.90
	suggestThreshold = 0.60
	maxSuggestions   = 3
)

// Jaro-Winkler parameters (conventional values).
const (
	jwBoostThreshold = 0.7
	jwPrefixSize     = 4
)

// strategy is one name-matching tier. It reports whether it decided the
// query; tiers run in order and short-circuit on the first decision.
type strategy func(query string, records []model.BuildingRecord) (Result, bool)

var nameTiers = []strategy{matchExactName, matchSubstringName, matchSimilarName}

// matchName resolves a non-numeric query against building names.
func matchName(query string, records []model.BuildingRecord) Result {
	for _, tier := range nameTiers {
		if res, ok := tier(query, records); ok {
			return res
		}
	}
	return noMatch(TierNone)
}

// matchExactName matches on case-insensitive full equality with a name.
func matchExactName(query string, records []model.BuildingRecord) (Result, bool) {
	for _, r := range records {
		if strings.EqualFold(r.Name, query) {
			return exact(TierExactName, r), true
		}
	}
	return Result{}, false
}

// matchSubstringName matches records whose name contains the query. Among
// multiple hits the shortest name wins: "Library" should land on the generic
// library rather than a longer compound name that merely contains the word.
// Equal lengths fall back to collection order. Heuristic, not a guarantee.
func matchSubstringName(query string, records []model.BuildingRecord) (Result, bool) {
	best := -1
	for i, r := range records {
		if !strings.Contains(strings.ToLower(r.Name), query) {
			continue
		}
		if best == -1 || len(r.Name) < len(records[best].Name) {
			best = i
		}
	}
	if best == -1 {
		return Result{}, false
	}
	return exact(TierSubstring, records[best]), true
}

// matchSimilarName scores every record and classifies by the best score:
// at or above exactThreshold the query is treated as a typo of the top
// record; between the thresholds the top candidates come back as
// suggestions; below suggestThreshold nothing is close enough.
func matchSimilarName(query string, records []model.BuildingRecord) (Result, bool) {
	if len(records) == 0 {
		return noMatch(TierSimilarity), true
	}
	scored := make([]Scored, len(records))
	for i, r := range records {
		scored[i] = Scored{Record: r, Score: Similarity(query, r.Name)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Record.Name < scored[j].Record.Name
	})

	top := scored[0].Score
	switch {
	case top >= exactThreshold:
		return exact(TierSimilarity, scored[0].Record), true
	case top >= suggestThreshold:
		n := maxSuggestions
		if len(scored) < n {
			n = len(scored)
		}
		return suggestions(TierSimilarity, scored[:n]), true
	default:
		return noMatch(TierSimilarity), true
	}
}

// Similarity returns a normalized score in [0,1] between a query and a
// building name. The score is the maximum of the Jaro-Winkler similarity
// against the full name and against each whitespace token of the name, so a
// typo of one word ("libary") still corrects against a multi-word official
// name ("Gilbert Memorial Library").
func Similarity(query, name string) float64 {
	query = strings.ToLower(query)
	name = strings.ToLower(name)
	best := smetrics.JaroWinkler(query, name, jwBoostThreshold, jwPrefixSize)
	for _, token := range strings.Fields(name) {
		if s := smetrics.JaroWinkler(query, token, jwBoostThreshold, jwPrefixSize); s > best {
			best = s
		}
	}
	return best
}
