package index

import "errors"

var (
	// ErrNotFound is returned whenever a lookup fails to match a document.
	ErrNotFound = errors.New("not found")

	// ErrMissingName is returned when a document with an empty name is
	// submitted for indexing.
	ErrMissingName = errors.New("document does not provide a valid name")
)
