package gamedata

import "errors"

var (
	// ErrNotFound is returned by a store when it attempts to look up
	// an entry that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRecord is returned when a store is asked to persist a
	// record with missing required fields.
	ErrInvalidRecord = errors.New("record has missing / invalid required fields")
)
