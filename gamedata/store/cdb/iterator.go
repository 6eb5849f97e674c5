package cdb

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata"
)

// Static and compile-time check to ensure interactionIterator implements
// gamedata.Iterator interface.
var _ gamedata.Iterator = (*interactionIterator)(nil)

// interactionIterator is a gamedata.InteractionIterator implementation
// for the cockroachDB store. It wraps the [database/sql] Rows type that
// serves as an iterator for the returned query data.
type interactionIterator struct {
	rows        *sql.Rows
	lastErr     error
	interaction *gamedata.Interaction
}

// Next loads the next item, returns false when no more rows
// are available or when an error occurs.
func (i *interactionIterator) Next() bool {
	// Check if an error occurred during the most recent [rows.Scan]
	// operation or if there are no more rows data to return.
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	var recommend sql.NullBool

	interaction := new(gamedata.Interaction)
	if i.lastErr = i.rows.Scan(
		&interaction.UserID, &interaction.GameName, &interaction.Playtime,
		&recommend, &interaction.Review,
	); i.lastErr != nil {

		return false
	}

	if recommend.Valid {
		interaction.Recommend = &recommend.Bool
	}

	i.interaction = interaction

	return true
}

// Error returns the last error encountered by the iterator.
func (i *interactionIterator) Error() error {
	return i.lastErr
}

// Close releases any resources allocated to the iterator.
func (i *interactionIterator) Close() error {
	if err := i.rows.Close(); err != nil {
		return fmt.Errorf("interaction iterator: %w", err)
	}

	return nil
}

// Interaction returns the currently fetched interaction object.
func (i *interactionIterator) Interaction() *gamedata.Interaction {
	return i.interaction
}

// gameIterator is a gamedata.GameIterator implementation for the
// cockroachDB store.
type gameIterator struct {
	rows    *sql.Rows
	lastErr error
	game    *gamedata.Game
}

// Next advances the iterator. When no rows are available or when an
// error occurs, calls to Next() return false.
func (i *gameIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	game := new(gamedata.Game)
	if i.lastErr = i.rows.Scan(
		&game.Name, pq.Array(&game.Genres),
	); i.lastErr != nil {

		return false
	}

	i.game = game

	return true
}

// Error returns the last error recorded by the iterator.
func (i *gameIterator) Error() error {
	return i.lastErr
}

// Close releases any resources linked to the iterator.
func (i *gameIterator) Close() error {
	if err := i.rows.Close(); err != nil {
		return fmt.Errorf("game iterator: %w", err)
	}

	return nil
}

// Game returns the currently fetched catalog entry.
func (i *gameIterator) Game() *gamedata.Game {
	return i.game
}
