package repository

import "errors"

var (
	ErrKeyNotFound = errors.New("key not found")
	// ErrUnavailable is returned by a backend when no storage environment exists.
	ErrUnavailable = errors.New("storage environment unavailable")
)
