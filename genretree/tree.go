/*
	genretree package implements the genre taxonomy used as the
	relevance filter of the recommendation engine: a rooted multi-way
	tree whose internal nodes are genre labels and whose leaves are
	games.
*/

package genretree

import (
	"sort"
	"strings"
	"sync"
)

// node is a single tree node. Game leaves are explicitly tagged rather
// than inferred from their child count, so a game whose name collides
// with a genre label can never be mistaken for a category.
type node struct {
	label    string
	game     bool
	subtrees []*node
}

// contains reports whether a game leaf with the given name exists
// anywhere in the subtree rooted at n.
func (n *node) contains(game string) bool {
	if n.game {
		return n.label == game
	}

	for _, subtree := range n.subtrees {
		if subtree.contains(game) {
			return true
		}
	}

	return false
}

// Tree implements the genre taxonomy. It is populated through a single
// construction pass and treated as immutable afterwards; catalog
// changes are handled by building a replacement tree wholesale.
//
// The game-to-genres index is owned by the tree instance and computed
// lazily on first use. A rebuild of the underlying catalog produces a
// new tree with a fresh index; callers that mutate a tree they still
// hold must invalidate the index explicitly.
type Tree struct {
	mu    sync.RWMutex
	root  *node
	index map[string][]string
}

// NewTree creates a new empty genre tree.
func NewTree() *Tree {
	return &Tree{
		root: &node{label: "All Games"},
	}
}

// InsertPath inserts one taxonomy entry: a chain of genre labels ending
// in a game name. At every level the walk descends into an existing
// child carrying the same label instead of branching, so sibling labels
// never duplicate. The final label is appended as a game leaf.
//
// A path needs at least one genre label ahead of the game name; shorter
// paths are ignored so every reachable leaf keeps a non-empty chain of
// genre ancestors.
func (t *Tree) InsertPath(labels ...string) {
	if len(labels) < 2 {
		return
	}
	for _, label := range labels {
		if label == "" {
			return
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	current := t.root
	for _, label := range labels[:len(labels)-1] {
		var match *node
		for _, subtree := range current.subtrees {
			if !subtree.game && subtree.label == label {
				match = subtree

				break
			}
		}

		if match == nil {
			match = &node{label: label}
			current.subtrees = append(current.subtrees, match)
		}

		current = match
	}

	game := labels[len(labels)-1]
	for _, subtree := range current.subtrees {
		if subtree.game && subtree.label == game {
			return
		}
	}

	current.subtrees = append(current.subtrees, &node{label: game, game: true})
}

// GenresOf returns every top-level genre label under whose subtree the
// game appears as a leaf. A game legitimately belongs to multiple
// genres; an unknown game yields an empty result.
func (t *Tree) GenresOf(game string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.genresOf(game)
}

func (t *Tree) genresOf(game string) []string {
	var genres []string
	for _, subtree := range t.root.subtrees {
		if subtree.contains(game) {
			genres = append(genres, subtree.label)
		}
	}

	return genres
}

// AllGameNames returns the name of every game leaf in the tree. Games
// that appear under multiple genres are reported once.
func (t *Tree) AllGameNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.allGameNames()
}

func (t *Tree) allGameNames() []string {
	seen := make(map[string]struct{})
	var walk func(n *node)
	walk = func(n *node) {
		if n.game {
			seen[n.label] = struct{}{}

			return
		}

		for _, subtree := range n.subtrees {
			walk(subtree)
		}
	}
	walk(t.root)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Index returns the game-to-genres mapping for every game in the tree.
// The mapping is computed once by scanning the tree for each game name
// and cached for the lifetime of the tree instance; repeated calls
// without an intervening InvalidateIndex return the same results.
func (t *Tree) Index() map[string][]string {
	t.mu.RLock()
	index := t.index
	t.mu.RUnlock()

	if index != nil {
		return index
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Another reader may have populated the cache while the write lock
	// was pending.
	if t.index == nil {
		index := make(map[string][]string)
		for _, game := range t.allGameNames() {
			index[game] = t.genresOf(game)
		}

		t.index = index
	}

	return t.index
}

// InvalidateIndex drops the cached game-to-genres mapping. Callers own
// invalidation: the cache is never recomputed implicitly, only on the
// next Index call.
func (t *Tree) InvalidateIndex() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.index = nil
}

// String returns an indented, human readable representation of the
// tree. Each node's label is printed before any of its descendants.
func (t *Tree) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var b strings.Builder
	var walk func(n *node, depth int)
	walk = func(n *node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.label)
		b.WriteByte('\n')

		for _, subtree := range n.subtrees {
			walk(subtree, depth+1)
		}
	}
	walk(t.root, 0)

	return strings.TrimRight(b.String(), "\n")
}
