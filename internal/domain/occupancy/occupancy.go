// Package occupancy joins sensor-coded measurements onto display codes for
// presentation.
package occupancy

import (
	"fmt"
	"sort"

	"github.com/campuspulse/campuspulse/internal/domain/bridge"
	"github.com/campuspulse/campuspulse/internal/domain/model"
)

// Join fans each observation out onto every display code sharing its sensor
// code. Each emitted pair carries the full measured count: the sensor
// aggregates the whole building, so every wing presents the whole value.
// This is a deliberate fan-out, not a partition.
func Join(observations []model.OccupancyObservation, b *bridge.Bridge) []model.DisplayCount {
	out := make([]model.DisplayCount, 0, len(observations))
	for _, obs := range observations {
		for _, code := range b.Expand(obs.SensorCode) {
			out = append(out, model.DisplayCount{DisplayCode: code, Count: obs.Count})
		}
	}
	return out
}

// Overlay left-merges joined counts onto the full building collection, so
// every building appears exactly once and buildings with no observation in
// the slice report zero. Later counts for the same display code overwrite
// earlier ones; duplicate source rows are an upstream data concern.
func Overlay(records []model.BuildingRecord, counts []model.DisplayCount) []model.DisplayCount {
	byCode := make(map[string]int, len(counts))
	for _, c := range counts {
		byCode[c.DisplayCode] = c.Count
	}
	out := make([]model.DisplayCount, len(records))
	for i, r := range records {
		out[i] = model.DisplayCount{DisplayCode: r.DisplayCode, Count: byCode[r.DisplayCode]}
	}
	return out
}

// TimelinePoint is one aggregated occupancy total for a time bin and
// category. Category "Total" sums all categories for the bin.
type TimelinePoint struct {
	Time      string `json:"time"` // "HH:MM"
	Category  string `json:"category"`
	Occupancy int    `json:"occupancy"`
}

// totalSeries labels the synthetic all-categories series.
const totalSeries = "Total"

// Timeline aggregates a day of observations into per-category and total
// series. Each observation's category comes from the first of its display
// codes present in categoryByDisplay; observations whose codes appear in no
// building record count as Unknown. Output is ordered by time, then
// category, with the Total series last within each bin.
func Timeline(observations []model.OccupancyObservation, b *bridge.Bridge, categoryByDisplay map[string]model.Category) []TimelinePoint {
	type key struct {
		time     string
		category string
	}
	sums := make(map[key]int)
	for _, obs := range observations {
		bin := fmt.Sprintf("%02d:%02d", obs.Hour, obs.Minute)
		category := model.CategoryUnknown
		for _, code := range b.Expand(obs.SensorCode) {
			if c, ok := categoryByDisplay[code]; ok {
				category = c
				break
			}
		}
		sums[key{bin, category.String()}] += obs.Count
		sums[key{bin, totalSeries}] += obs.Count
	}

	out := make([]TimelinePoint, 0, len(sums))
	for k, occ := range sums {
		out = append(out, TimelinePoint{Time: k.time, Category: k.category, Occupancy: occ})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		if (out[i].Category == totalSeries) != (out[j].Category == totalSeries) {
			return out[j].Category == totalSeries
		}
		return out[i].Category < out[j].Category
	})
	return out
}
