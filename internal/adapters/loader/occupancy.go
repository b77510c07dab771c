package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/campuspulse/campuspulse/internal/domain/bridge"
	"github.com/campuspulse/campuspulse/internal/domain/model"
)

// CSV column names in the occupancy summary table.
const (
	colTimeBin   = "time_bin"
	colCode      = "BLDG_CODE"
	colOccupancy = "occupancy"
)

// timeBinLayouts are tried in order when parsing the time_bin column.
var timeBinLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// LoadOccupancy reads the ten-minute occupancy CSV. Rows dated on an
// excluded date are dropped; sensor codes are normalized to the building
// record convention (first digit run, leading zeros stripped). Malformed
// rows fail the whole load with the offending line number, rather than
// silently producing a partial snapshot.
func LoadOccupancy(path string, excludedDates []string) ([]model.OccupancyObservation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadOccupancy, err)
	}
	defer f.Close()

	excluded := make(map[string]bool, len(excludedDates))
	for _, d := range excludedDates {
		excluded[d] = true
	}

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrLoadOccupancy, err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var observations []model.OccupancyObservation
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrLoadOccupancy, line, err)
		}

		ts, err := parseTimeBin(row[cols.timeBin])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrLoadOccupancy, line, err)
		}
		date := ts.Format("2006-01-02")
		if excluded[date] {
			continue
		}

		count, err := parseCount(row[cols.occupancy])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrLoadOccupancy, line, err)
		}

		code := NormalizeDisplayCode(row[cols.code])
		if normalized, ok := bridge.NormalizeCode(code); ok {
			code = normalized
		}

		observations = append(observations, model.OccupancyObservation{
			Date:       date,
			Hour:       ts.Hour(),
			Minute:     ts.Minute(),
			SensorCode: code,
			Count:      count,
		})
	}
	return observations, nil
}

type columns struct {
	timeBin   int
	code      int
	occupancy int
}

// columnIndex locates the required columns by header name, so column order
// in the export does not matter.
func columnIndex(header []string) (columns, error) {
	cols := columns{timeBin: -1, code: -1, occupancy: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case colTimeBin:
			cols.timeBin = i
		case colCode:
			cols.code = i
		case colOccupancy:
			cols.occupancy = i
		}
	}
	if cols.timeBin == -1 || cols.code == -1 || cols.occupancy == -1 {
		return cols, fmt.Errorf("%w: header must contain %s, %s and %s",
			ErrLoadOccupancy, colTimeBin, colCode, colOccupancy)
	}
	return cols, nil
}

func parseTimeBin(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeBinLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable time_bin %q", raw)
}

// parseCount accepts integer or float-formatted counts and rejects
// negatives.
func parseCount(raw string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable occupancy %q", raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative occupancy %q", raw)
	}
	return int(v), nil
}
