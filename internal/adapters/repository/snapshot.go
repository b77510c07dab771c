// Package repository holds the immutable data snapshot and its atomic
// publication point.
package repository

import (
	"sort"
	"time"

	"github.com/campuspulse/campuspulse/internal/domain/bridge"
	"github.com/campuspulse/campuspulse/internal/domain/model"
	"github.com/campuspulse/campuspulse/pkg/metrics"
)

// sliceKey addresses one ten-minute time bucket of one day.
type sliceKey struct {
	date   string
	hour   int
	minute int
}

// Snapshot is an immutable view of the loaded data set: the building
// collection, the occupancy observations with their time-slice indexes, and
// the identifier bridge derived from the same record set. All fields are
// built once here and never mutated, so any number of readers can share a
// Snapshot without locking. A reload builds a brand-new Snapshot and swaps
// it in wholesale; the bridge can therefore never be paired with records
// from a different load.
type Snapshot struct {
	records           []model.BuildingRecord
	observations      []model.OccupancyObservation
	bridge            *bridge.Bridge
	bySlice           map[sliceKey][]model.OccupancyObservation
	byDate            map[string][]model.OccupancyObservation
	dates             []string
	categories        []string
	categoryByDisplay map[string]model.Category
}

// NewSnapshot derives all indexes from the given collections. The caller
// hands over ownership of both slices; they must not be mutated afterwards.
func NewSnapshot(records []model.BuildingRecord, observations []model.OccupancyObservation) *Snapshot {
	start := time.Now()

	s := &Snapshot{
		records:           records,
		observations:      observations,
		bridge:            bridge.Build(records),
		bySlice:           make(map[sliceKey][]model.OccupancyObservation),
		byDate:            make(map[string][]model.OccupancyObservation),
		categoryByDisplay: make(map[string]model.Category, len(records)),
	}

	seenCategory := make(map[string]bool)
	for _, r := range records {
		s.categoryByDisplay[r.DisplayCode] = r.Category
		if name := r.Category.String(); !seenCategory[name] {
			seenCategory[name] = true
			s.categories = append(s.categories, name)
		}
	}
	sort.Strings(s.categories)

	seenDate := make(map[string]bool)
	for _, obs := range observations {
		k := sliceKey{obs.Date, obs.Hour, obs.Minute}
		s.bySlice[k] = append(s.bySlice[k], obs)
		s.byDate[obs.Date] = append(s.byDate[obs.Date], obs)
		if !seenDate[obs.Date] {
			seenDate[obs.Date] = true
			s.dates = append(s.dates, obs.Date)
		}
	}
	sort.Strings(s.dates)

	ms := float64(time.Since(start).Nanoseconds()) / 1e6
	metrics.RecordSnapshotRebuildDuration(ms)
	metrics.UpdateSnapshotLastDurationMs(ms)

	return s
}

// Records returns the building collection. Callers must not mutate it.
func (s *Snapshot) Records() []model.BuildingRecord {
	return s.records
}

// Bridge returns the sensor-code to display-codes index for this snapshot.
func (s *Snapshot) Bridge() *bridge.Bridge {
	return s.bridge
}

// Slice returns the observations for one (date, hour, minute) bucket. A
// missing bucket returns nil; that is "no data", not an error.
func (s *Snapshot) Slice(date string, hour, minute int) []model.OccupancyObservation {
	return s.bySlice[sliceKey{date, hour, minute}]
}

// Day returns all observations for one date.
func (s *Snapshot) Day(date string) []model.OccupancyObservation {
	return s.byDate[date]
}

// Dates returns the sorted list of dates with at least one observation.
func (s *Snapshot) Dates() []string {
	return s.dates
}

// Categories returns the sorted building category names present.
func (s *Snapshot) Categories() []string {
	return s.categories
}

// CategoryByDisplay returns the display-code to category lookup.
func (s *Snapshot) CategoryByDisplay() map[string]model.Category {
	return s.categoryByDisplay
}

// RecordCount returns the number of building records.
func (s *Snapshot) RecordCount() int {
	return len(s.records)
}

// ObservationCount returns the number of occupancy observations.
func (s *Snapshot) ObservationCount() int {
	return len(s.observations)
}
