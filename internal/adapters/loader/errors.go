package loader

import "errors"

// Sentinel kinds for data loading errors.
var (
	ErrLoadBuildings = errors.New("load buildings failed")
	ErrLoadOccupancy = errors.New("load occupancy failed")
)
