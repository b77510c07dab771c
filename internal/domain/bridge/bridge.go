// Package bridge maps sensor codes to the display codes they aggregate.
//
// The occupancy feed reports under a coarse numeric sensor code while the
// geometry collection labels individual wings with richer display codes
// ("191N", "191S"). The bridge is the one-to-many index between the two
// identifier spaces, built once per snapshot and read-only afterwards.
package bridge

import "github.com/campuspulse/campuspulse/internal/domain/model"

// Bridge is the derived sensor-code to display-codes multimap.
type Bridge struct {
	entries map[string][]string
}

// NormalizeCode extracts the first contiguous digit run from a display code
// and strips its leading zeros. Returns false when the code contains no
// digits. An all-zero run normalizes to "0".
func NormalizeCode(displayCode string) (string, bool) {
	start, end := -1, -1
	for i, c := range displayCode {
		if c >= '0' && c <= '9' {
			if start == -1 {
				start = i
			}
			end = i + 1
		} else if start != -1 {
			break
		}
	}
	if start == -1 {
		return "", false
	}
	run := displayCode[start:end]
	for len(run) > 1 && run[0] == '0' {
		run = run[1:]
	}
	return run, true
}

// Build constructs a Bridge from the building collection. Each record's
// display code is appended, in collection order, to the entry for its
// normalized sensor code; records with no extractable digit run are left
// out entirely and pass through Expand unchanged.
func Build(records []model.BuildingRecord) *Bridge {
	b := &Bridge{entries: make(map[string][]string, len(records))}
	for _, r := range records {
		code, ok := NormalizeCode(r.DisplayCode)
		if !ok {
			continue
		}
		b.entries[code] = append(b.entries[code], r.DisplayCode)
	}
	return b
}

// Expand returns the display codes aggregated under a sensor code. A code
// absent from the bridge expands to itself, so an observation can still be
// presented even when its identifier was never aggregated from wings.
func (b *Bridge) Expand(sensorCode string) []string {
	if codes, ok := b.entries[sensorCode]; ok {
		return codes
	}
	return []string{sensorCode}
}

// Len returns the number of distinct sensor codes in the bridge.
func (b *Bridge) Len() int {
	return len(b.entries)
}
