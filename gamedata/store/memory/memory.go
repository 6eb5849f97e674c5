package memory

import (
	"sync"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata"
)

// Static and compile-time check to ensure InMemoryStore implements
// Store interface.
var _ gamedata.Store = (*InMemoryStore)(nil)

// InMemoryStore implements an in-memory interaction and catalog data
// store that can be concurrently accessed by multiple clients.
type InMemoryStore struct {
	mu           sync.RWMutex
	interactions map[interactionKey]*gamedata.Interaction
	games        map[string]*gamedata.Game
}

// interactionKey uniquely identifies an interaction. The graph holds at
// most one edge per (user, game) pair, so the store enforces the same
// uniqueness at write time.
type interactionKey struct {
	userID   string
	gameName string
}

// NewInMemoryStore creates a new in-memory interaction / catalog store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		interactions: make(map[interactionKey]*gamedata.Interaction),
		games:        make(map[string]*gamedata.Game),
	}
}

// UpsertInteraction creates a new or updates an existing interaction
// for the same (user, game) pair. The most recent write wins.
func (s *InMemoryStore) UpsertInteraction(interaction *gamedata.Interaction) error {
	if !interaction.Valid() {
		return gamedata.ErrInvalidRecord
	}

	// Acquire a general lock to avoid data races while mutating store data.
	s.mu.Lock()
	defer s.mu.Unlock()

	// Make a new local pointer to the interaction provided by the user.
	// This step protects the local data from side-effects triggered
	// outside this method.
	iCopy := new(gamedata.Interaction)
	*iCopy = *interaction

	s.interactions[interactionKey{iCopy.UserID, iCopy.GameName}] = iCopy

	return nil
}

// UpsertGame creates a new or updates an existing classified catalog
// entry keyed by game name.
func (s *InMemoryStore) UpsertGame(game *gamedata.Game) error {
	if !game.Valid() {
		return gamedata.ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	gCopy := new(gamedata.Game)
	*gCopy = *game
	gCopy.Genres = append([]string(nil), game.Genres...)

	s.games[gCopy.Name] = gCopy

	return nil
}

// Interactions returns an iterator over every stored interaction.
func (s *InMemoryStore) Interactions() (gamedata.InteractionIterator, error) {
	// Read lock allows other processes or goroutines to perform reads by
	// concurrently acquiring other read locks.
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*gamedata.Interaction, 0, len(s.interactions))
	for _, interaction := range s.interactions {
		list = append(list, interaction)
	}

	return &interactionIterator{store: s, interactions: list}, nil
}

// Games returns an iterator over every classified catalog entry.
func (s *InMemoryStore) Games() (gamedata.GameIterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*gamedata.Game, 0, len(s.games))
	for _, game := range s.games {
		list = append(list, game)
	}

	return &gameIterator{store: s, games: list}, nil
}
