package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	// ErrNotLoaded is returned by reads before the first snapshot publish.
	ErrNotLoaded = errors.New("snapshot not loaded")
)
