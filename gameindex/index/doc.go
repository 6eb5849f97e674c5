package index

import "time"

// Document defines a catalog game whose name and genres have been
// successfully indexed for searching.
type Document struct {
	// Name of the game; serves as the document key.
	Name string

	// Genres assigned to the game by the classifier.
	Genres []string

	// Popularity score derived from the number of distinct users that
	// interacted with the game. Refreshed after every graph rebuild.
	Popularity float64

	// Last time the document was indexed.
	IndexedAt time.Time
}
