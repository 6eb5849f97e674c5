package genretree

import (
	"fmt"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata"
)

// CatalogSource defines a minimum set of API methods for reading the
// classified game catalog.
type CatalogSource interface {
	// Games returns an iterator over every classified catalog entry.
	Games() (gamedata.GameIterator, error)
}

// Build consumes the classified catalog and returns a freshly populated
// genre tree. Every genre assigned to a game contributes one taxonomy
// path. Entries without a name or without genres are skipped: a game
// with no genre assignment never appears in the tree and can therefore
// never pass the relevance filter.
func Build(source CatalogSource) (*Tree, error) {
	it, err := source.Games()
	if err != nil {
		return nil, fmt.Errorf("genre tree build: %w", err)
	}

	tree := NewTree()
	for it.Next() {
		game := it.Game()
		if !game.Valid() {
			continue
		}

		for _, genre := range game.Genres {
			tree.InsertPath(genre, game.Name)
		}
	}

	if err := it.Error(); err != nil {
		_ = it.Close()

		return nil, fmt.Errorf("genre tree build: %w", err)
	}

	if err := it.Close(); err != nil {
		return nil, fmt.Errorf("genre tree build: %w", err)
	}

	return tree, nil
}
