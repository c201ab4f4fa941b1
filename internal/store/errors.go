package store

import "errors"

// Sentinel errors for store operations.
var (
	ErrNotFound    = errors.New("task not found")
	ErrDuplicateID = errors.New("duplicate task id")
)
