package engine

import "errors"

// Sentinel errors for loader operations.
var (
	ErrNotFailed = errors.New("loader is not in the failed state")
	ErrClosed    = errors.New("loader is closed")
)
