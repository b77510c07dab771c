package app

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrInvalidInput marks a malformed time selector. Callers must be able
	// to distinguish "bad request" from "no data", which is an empty result,
	// and from "no match", which is a first-class resolution outcome.
	ErrInvalidInput = errors.New("invalid time selector")
)
