package gamedata

import (
	"bufio"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// interactionFeedEntry mirrors the wire format emitted by the loader:
// one JSON object per line.
type interactionFeedEntry struct {
	UserID    string `json:"user_id"`
	ItemName  string `json:"item_name"`
	Playtime  int    `json:"playtime_forever"`
	Recommend *bool  `json:"recommend,omitempty"`
	Review    string `json:"review,omitempty"`
}

// catalogFeedEntry mirrors the classifier output format: a JSON array
// of classified games.
type catalogFeedEntry struct {
	ItemName string   `json:"item_name"`
	Genres   []string `json:"genre"`
}

// LoadInteractions reads a JSON-lines interaction feed from r and
// upserts each well-formed record into the store. Malformed lines are
// skipped individually rather than aborting the whole load. it returns
// the number of records stored and the number of lines skipped.
func LoadInteractions(r io.Reader, store Store) (loaded, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	// Review text can push a single line past the default scanner limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry interactionFeedEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			skipped++

			continue
		}

		interaction := &Interaction{
			UserID:    entry.UserID,
			GameName:  entry.ItemName,
			Playtime:  entry.Playtime,
			Recommend: entry.Recommend,
			Review:    entry.Review,
		}
		if !interaction.Valid() {
			skipped++

			continue
		}

		if err := store.UpsertInteraction(interaction); err != nil {
			return loaded, skipped, fmt.Errorf("load interactions: %w", err)
		}

		loaded++
	}

	if err := scanner.Err(); err != nil {
		return loaded, skipped, fmt.Errorf("load interactions: %w", err)
	}

	return loaded, skipped, nil
}

// LoadCatalog reads a JSON array of classified games from r and upserts
// each well-formed entry into the store. Entries with a missing name
// are skipped individually. it returns the number of entries stored and
// the number of entries skipped.
func LoadCatalog(r io.Reader, store Store) (loaded, skipped int, err error) {
	var entries []catalogFeedEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return 0, 0, fmt.Errorf("load catalog: %w", err)
	}

	for _, entry := range entries {
		game := &Game{
			Name:   entry.ItemName,
			Genres: entry.Genres,
		}
		if !game.Valid() {
			skipped++

			continue
		}

		if err := store.UpsertGame(game); err != nil {
			return loaded, skipped, fmt.Errorf("load catalog: %w", err)
		}

		loaded++
	}

	return loaded, skipped, nil
}
