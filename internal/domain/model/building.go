// Package model contains domain models passed between layers.
package model

// Category classifies a building by its primary use.
type Category int

const (
	// CategoryUnknown is used when the source record carries no usable type.
	CategoryUnknown Category = iota
	// CategoryResidential covers residence halls, dormitories, housing and
	// greek-life buildings.
	CategoryResidential
	// CategoryNonResidential covers everything else.
	CategoryNonResidential
)

// String returns the presentation form used by metadata and timelines.
func (c Category) String() string {
	switch c {
	case CategoryResidential:
		return "Residential"
	case CategoryNonResidential:
		return "Non-Residential"
	default:
		return "Unknown"
	}
}

// Centroid is a precomputed representative point for a building shape.
type Centroid struct {
	Lat float64
	Lng float64
}

// BuildingRecord represents one mappable building shape.
//
// DisplayCode is unique per record. SensorCode is the coarse identifier the
// occupancy feed reports under; several records (wings of one building) may
// share it, and it is empty when no digit run could be extracted from the
// display code.
type BuildingRecord struct {
	DisplayCode string
	SensorCode  string
	Name        string
	Category    Category
	Centroid    Centroid
}

// OccupancyObservation is one measurement from the occupancy feed.
type OccupancyObservation struct {
	Date       string // calendar date, "YYYY-MM-DD"
	Hour       int
	Minute     int
	SensorCode string
	Count      int
}

// DisplayCount pairs a display code with an occupancy count for presentation.
type DisplayCount struct {
	DisplayCode string `json:"display_code"`
	Count       int    `json:"count"`
}
