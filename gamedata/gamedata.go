/*
	gamedata package defines the record types produced by the data
	loading / classification phase together with the interfaces that
	interaction and catalog data stores must implement.
*/

package gamedata

// Store should be implemented by types that persist user-game
// interactions and classified catalog entries.
type Store interface {
	// UpsertInteraction creates a new or updates an existing interaction
	// for the same (user, game) pair. The most recent write wins.
	UpsertInteraction(interaction *Interaction) error

	// UpsertGame creates a new or updates an existing classified
	// catalog entry.
	UpsertGame(game *Game) error

	// Interactions returns an iterator over every stored interaction.
	Interactions() (InteractionIterator, error)

	// Games returns an iterator over every classified catalog entry.
	Games() (GameIterator, error)
}

// InteractionIterator is implemented by types that iterate stored
// interactions.
type InteractionIterator interface {
	Iterator

	// Interaction returns the currently fetched interaction object.
	Interaction() *Interaction
}

// GameIterator is implemented by types that iterate classified catalog
// entries.
type GameIterator interface {
	Iterator

	// Game returns the currently fetched catalog entry.
	Game() *Game
}

// Iterator should be embedded / implemented by types that require
// iteration functionality.
type Iterator interface {
	// Next loads the next item, returns false when no more items
	// are available or when an error occurs.
	Next() bool

	// Error returns the last error encountered by the iterator.
	Error() error

	// Close releases any resources allocated to the iterator.
	Close() error
}

// Interaction represents a single user-game interaction assembled by
// the loader from play history and (optionally) a matching review.
// it serves as a model / schema object.
type Interaction struct {
	UserID   string // Opaque, stable user identifier.
	GameName string // Game display name, the graph vertex key.
	Playtime int    // Total minutes played, never negative.

	// Recommend is nil when the user left no review verdict.
	Recommend *bool

	// Review holds the free-form review text, empty when absent.
	Review string
}

// Valid reports whether the interaction carries every field required
// by the graph builder. Invalid records are skipped, not fatal.
func (i *Interaction) Valid() bool {
	return i != nil && i.UserID != "" && i.GameName != "" && i.Playtime >= 0
}

// Game represents a classified catalog entry: a game name together with
// the genres assigned by the external classifier.
type Game struct {
	Name   string   // Game display name.
	Genres []string // Ordered genre labels, possibly empty.
}

// Valid reports whether the catalog entry can be inserted into the
// genre tree.
func (g *Game) Valid() bool {
	return g != nil && g.Name != ""
}
