package config

import (
	"errors"
)

// Sentinel kinds for configuration errors, matchable with errors.Is.
var (
	// ErrInvalidConfig marks a config that loaded but failed validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrLoadConfig marks a failure reading or parsing a config source.
	ErrLoadConfig = errors.New("load config failed")
)
