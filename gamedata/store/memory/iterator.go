package memory

import "github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata"

// Static and compile-time check to ensure interactionIterator implements
// gamedata.Iterator interface.
var _ gamedata.Iterator = (*interactionIterator)(nil)

// interactionIterator is a gamedata.InteractionIterator implementation
// for the in-memory store.
type interactionIterator struct {
	// Pointer to an InMemoryStore instance. it's used here to provide
	// access to the store's mutex object.
	store        *InMemoryStore
	interactions []*gamedata.Interaction
	currentIndex int
}

// Next loads the next item, returns false when no more interactions
// are available or when an error occurs.
func (i *interactionIterator) Next() bool {
	if i.currentIndex >= len(i.interactions) {
		return false
	}

	i.currentIndex++

	return true
}

// Error returns the last error encountered by the iterator.
func (i *interactionIterator) Error() error {
	return nil
}

// Close releases any resources allocated to the iterator.
func (i *interactionIterator) Close() error {
	return nil
}

// Interaction returns the currently fetched interaction object.
func (i *interactionIterator) Interaction() *gamedata.Interaction {
	// The interaction pointer contents may be overwritten by a store
	// update outside this method. To avoid data-races, we acquire the
	// read lock first and clone creating a local pointer to the queried
	// interaction.
	i.store.mu.RLock()
	defer i.store.mu.RUnlock()

	interaction := new(gamedata.Interaction)
	*interaction = *i.interactions[i.currentIndex-1]

	return interaction
}

// gameIterator is a gamedata.GameIterator implementation for the
// in-memory store.
type gameIterator struct {
	store        *InMemoryStore // Provides access to the store mutex object.
	games        []*gamedata.Game
	currentIndex int
}

// Next advances the iterator. When no entries are available or when an
// error occurs, calls to Next() return false.
func (i *gameIterator) Next() bool {
	if i.currentIndex >= len(i.games) {
		return false
	}

	i.currentIndex++

	return true
}

// Error returns the last error recorded by the iterator.
func (i *gameIterator) Error() error {
	return nil
}

// Close releases any resources linked to the iterator.
func (i *gameIterator) Close() error {
	return nil
}

// Game returns the currently fetched catalog entry.
func (i *gameIterator) Game() *gamedata.Game {
	// The game pointer contents may be overwritten by a store update
	// outside this method. To avoid data-races, we acquire the read lock
	// first and clone creating a local pointer to the queried entry.
	i.store.mu.RLock()
	defer i.store.mu.RUnlock()

	game := new(gamedata.Game)
	*game = *i.games[i.currentIndex-1]
	game.Genres = append([]string(nil), i.games[i.currentIndex-1].Genres...)

	return game
}
