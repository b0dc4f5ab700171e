package engine

import "errors"

// Sentinel kinds for engine errors.
var (
	ErrUnknownRepository = errors.New("unknown repository")
)
