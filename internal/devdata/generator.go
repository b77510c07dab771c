// Package devdata generates a small synthetic campus data set for local
// runs: a buildings GeoJSON collection and one day of ten-minute occupancy
// readings. Output is deterministic for a given seed.
package devdata

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Generation defaults.
const (
	defaultBuildings = 40
	defaultSeed      = 42
	defaultDate      = "2025-03-03"

	binMinutes  = 10
	binsPerHour = 60 / binMinutes

	// Campus bounding box the generated centroids fall into.
	baseLat = 33.774
	baseLng = -84.398
	spanLat = 0.012
	spanLng = 0.016
)

// buildingNames seed the synthetic campus. A few entries intentionally
// produce multi-wing buildings sharing one sensor code.
var buildingNames = []string{
	"Gilbert Memorial Library",
	"Clough Commons",
	"Campus Recreation Center",
	"North Residence Hall",
	"South Residence Hall",
	"Engineering Annex",
	"Chemistry Laboratory",
	"Student Dining Commons",
	"Physics Building",
	"Design Studio",
}

// wingSuffixes split every fourth building into wings.
var wingSuffixes = []string{"N", "S"}

// Config controls generation.
type Config struct {
	Buildings int
	Date      string // YYYY-MM-DD
	Seed      int64
	OutDir    string
}

// Option applies a configuration option to the Config.
type Option func(*Config)

// WithBuildings sets the number of building records to generate.
func WithBuildings(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Buildings = n
		}
	}
}

// WithDate sets the date of the generated occupancy day.
func WithDate(date string) Option {
	return func(c *Config) {
		if date != "" {
			c.Date = date
		}
	}
}

// WithSeed sets the random seed.
func WithSeed(seed int64) Option {
	return func(c *Config) {
		c.Seed = seed
	}
}

// WithOutDir sets the output directory.
func WithOutDir(dir string) Option {
	return func(c *Config) {
		if dir != "" {
			c.OutDir = dir
		}
	}
}

// NewConfig builds a Config with defaults.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		Buildings: defaultBuildings,
		Date:      defaultDate,
		Seed:      defaultSeed,
		OutDir:    "data",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate writes the buildings GeoJSON and the occupancy CSV into OutDir
// and returns both paths.
func Generate(cfg *Config) (buildingsPath, occupancyPath string, err error) {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic synthetic data

	codes, fc := generateBuildings(cfg, rng)

	buildingsPath = filepath.Join(cfg.OutDir, "campus_buildings_categories.geojson")
	data, err := fc.MarshalJSON()
	if err != nil {
		return "", "", fmt.Errorf("marshal buildings: %w", err)
	}
	if err := os.WriteFile(buildingsPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("write buildings: %w", err)
	}

	occupancyPath = filepath.Join(cfg.OutDir, "ten_min_occupancy_summary.csv")
	if err := writeOccupancy(occupancyPath, cfg, codes, rng); err != nil {
		return "", "", err
	}
	return buildingsPath, occupancyPath, nil
}

// generateBuildings returns the display codes emitted and the feature
// collection. Codes are three digits; every fourth building becomes two
// wings with lettered suffixes over the same numeric run.
func generateBuildings(cfg *Config, rng *rand.Rand) ([]string, *geojson.FeatureCollection) {
	fc := geojson.NewFeatureCollection()
	var codes []string

	code := 1
	for i := 0; len(codes) < cfg.Buildings; i++ {
		name := buildingNames[i%len(buildingNames)]
		if i >= len(buildingNames) {
			name = fmt.Sprintf("%s %d", name, i/len(buildingNames)+1)
		}
		base := fmt.Sprintf("%03d", code)
		code++

		bldgType := "academic"
		if rng.Intn(4) == 0 {
			bldgType = "residence hall"
		}

		suffixes := []string{""}
		if i%4 == 3 {
			suffixes = wingSuffixes
		}
		for _, suffix := range suffixes {
			display := base + suffix
			codes = append(codes, display)
			f := geojson.NewFeature(buildingFootprint(rng))
			f.Properties["BLDG_NAME"] = name
			f.Properties["BLDG_CODE"] = display
			f.Properties["BLDG_TYPE"] = bldgType
			fc.Append(f)
		}
	}
	return codes, fc
}

// buildingFootprint returns a small square polygon at a random campus
// location.
func buildingFootprint(rng *rand.Rand) orb.Polygon {
	lng := baseLng + rng.Float64()*spanLng
	lat := baseLat + rng.Float64()*spanLat
	const d = 0.0004
	return orb.Polygon{orb.Ring{
		{lng, lat},
		{lng + d, lat},
		{lng + d, lat + d},
		{lng, lat + d},
		{lng, lat},
	}}
}

// writeOccupancy emits one ten-minute reading per building per bin for the
// configured date. Counts follow a crude day-shape: low overnight, peaking
// early afternoon.
func writeOccupancy(path string, cfg *Config, codes []string, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create occupancy file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time_bin", "BLDG_CODE", "occupancy"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for hour := 0; hour < 24; hour++ {
		for bin := 0; bin < binsPerHour; bin++ {
			minute := bin * binMinutes
			ts := fmt.Sprintf("%s %02d:%02d:00", cfg.Date, hour, minute)
			for _, code := range codes {
				count := dayShape(hour, rng)
				if err := w.Write([]string{ts, code, strconv.Itoa(count)}); err != nil {
					return fmt.Errorf("write row: %w", err)
				}
			}
		}
	}
	return nil
}

// dayShape produces a plausible occupancy count for an hour of day.
func dayShape(hour int, rng *rand.Rand) int {
	peak := 14
	dist := hour - peak
	if dist < 0 {
		dist = -dist
	}
	base := 120 - dist*10
	if base < 5 {
		base = 5
	}
	return base/2 + rng.Intn(base)
}
