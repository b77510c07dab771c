// Package loader reads and cleans the source data files into domain
// collections. All data hygiene lives here: code normalization, category
// classification, centroid computation, and exclusion of known-bad dates.
// The core packages consume the result as-is and never revalidate.
package loader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/campuspulse/campuspulse/internal/domain/bridge"
	"github.com/campuspulse/campuspulse/internal/domain/model"
)

// GeoJSON property keys in the source geometry collection.
const (
	propName = "BLDG_NAME"
	propCode = "BLDG_CODE"
	propType = "BLDG_TYPE"
)

// residentialKeywords classify a building type string as Residential.
var residentialKeywords = []string{"residence", "dormitory", "housing", "greek"}

// LoadBuildings reads a GeoJSON FeatureCollection of campus buildings and
// returns one record per feature. Features without a display code are
// dropped: they cannot be keyed by either identifier space.
func LoadBuildings(path string) ([]model.BuildingRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadBuildings, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadBuildings, err)
	}

	records := make([]model.BuildingRecord, 0, len(fc.Features))
	for _, f := range fc.Features {
		displayCode := NormalizeDisplayCode(propString(f.Properties, propCode))
		if displayCode == "" {
			continue
		}

		r := model.BuildingRecord{
			DisplayCode: displayCode,
			Name:        strings.TrimSpace(propString(f.Properties, propName)),
			Category:    ClassifyCategory(f.Properties[propType]),
		}
		if sensor, ok := bridge.NormalizeCode(displayCode); ok {
			r.SensorCode = sensor
		}
		if f.Geometry != nil {
			point, _ := planar.CentroidArea(f.Geometry)
			r.Centroid = model.Centroid{Lat: point.Lat(), Lng: point.Lon()}
		}
		records = append(records, r)
	}
	return records, nil
}

// ClassifyCategory buckets a raw building type value. A missing or
// non-string value is Unknown; a type containing a residential keyword is
// Residential; everything else is Non-Residential.
func ClassifyCategory(rawType any) model.Category {
	s, ok := rawType.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return model.CategoryUnknown
	}
	s = strings.ToLower(s)
	for _, kw := range residentialKeywords {
		if strings.Contains(s, kw) {
			return model.CategoryResidential
		}
	}
	return model.CategoryNonResidential
}

// NormalizeDisplayCode trims a raw code value and strips the trailing ".0"
// artifact left by float-typed code columns in the source exports.
func NormalizeDisplayCode(raw string) string {
	raw = strings.TrimSpace(raw)
	return strings.TrimSuffix(raw, ".0")
}

// propString reads a GeoJSON property as a string, accepting numeric values
// (codes frequently arrive as JSON numbers).
func propString(props geojson.Properties, key string) string {
	switch v := props[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
