package cdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata"
)

var (
	upsertInteractionQuery = `
					INSERT INTO interactions (user_id, game_name, playtime, recommend, review)
					VALUES ($1, $2, $3, $4, $5)
					ON CONFLICT (user_id, game_name)
					DO UPDATE SET playtime=$3, recommend=$4, review=$5
					`

	upsertGameQuery = `
					INSERT INTO games (name, genres)
					VALUES ($1, $2)
					ON CONFLICT (name)
					DO UPDATE SET genres=$2
					`

	interactionsQuery = "SELECT user_id, game_name, playtime, recommend, review FROM interactions"

	gamesQuery = "SELECT name, genres FROM games"
)

// Static and compile-time check to ensure CockroachDBStore implements
// Store interface.
var _ gamedata.Store = (*CockroachDBStore)(nil)

// CockroachDBStore implements a persistent interaction and catalog data
// store using a CockroachDB instance.
type CockroachDBStore struct {
	db *sql.DB
}

// NewCockroachDBStore returns a CockroachDBStore instance.
func NewCockroachDBStore(dsn string) (*CockroachDBStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return &CockroachDBStore{db}, nil
}

// Close terminates the connection to the cockroachDB instance.
func (s *CockroachDBStore) Close() error {
	return s.db.Close()
}

// UpsertInteraction creates a new or updates an existing interaction
// for the same (user, game) pair. The most recent write wins.
func (s *CockroachDBStore) UpsertInteraction(interaction *gamedata.Interaction) error {
	if !interaction.Valid() {
		return fmt.Errorf("upsert interaction: %w", gamedata.ErrInvalidRecord)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := s.db.ExecContext(
		ctx, upsertInteractionQuery,
		interaction.UserID, interaction.GameName, interaction.Playtime,
		recommendToNullBool(interaction.Recommend), interaction.Review,
	)
	if err != nil {
		return fmt.Errorf("upsert interaction: %w", err)
	}

	return nil
}

// UpsertGame creates a new or updates an existing classified catalog
// entry keyed by game name.
func (s *CockroachDBStore) UpsertGame(game *gamedata.Game) error {
	if !game.Valid() {
		return fmt.Errorf("upsert game: %w", gamedata.ErrInvalidRecord)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := s.db.ExecContext(
		ctx, upsertGameQuery, game.Name, pq.Array(game.Genres),
	)
	if err != nil {
		return fmt.Errorf("upsert game: %w", err)
	}

	return nil
}

// Interactions returns an iterator over every stored interaction.
func (s *CockroachDBStore) Interactions() (gamedata.InteractionIterator, error) {
	rows, err := s.db.Query(interactionsQuery)
	if err != nil {
		return nil, fmt.Errorf("interactions: %w", err)
	}

	return &interactionIterator{rows: rows}, nil
}

// Games returns an iterator over every classified catalog entry.
func (s *CockroachDBStore) Games() (gamedata.GameIterator, error) {
	rows, err := s.db.Query(gamesQuery)
	if err != nil {
		return nil, fmt.Errorf("games: %w", err)
	}

	return &gameIterator{rows: rows}, nil
}

// recommendToNullBool maps an optional recommend verdict onto a
// nullable SQL boolean.
func recommendToNullBool(recommend *bool) sql.NullBool {
	if recommend == nil {
		return sql.NullBool{}
	}

	return sql.NullBool{Bool: *recommend, Valid: true}
}
