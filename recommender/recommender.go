/*
	recommender package implements the ranking pipeline that turns one
	liked game into a scored candidate list: neighbor expansion over the
	interaction graph, genre relevance filtering against the taxonomy
	and popularity-corrected score normalization.
*/

package recommender

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamegraph"
)

// GraphAPI defines a minimum set of API methods for querying the
// interaction graph.
type GraphAPI interface {
	// Vertex performs a vertex lookup by name.
	Vertex(name string) (*gamegraph.Vertex, bool)
}

// TreeAPI defines a minimum set of API methods for querying the genre
// taxonomy.
type TreeAPI interface {
	// Index returns the cached game-to-genres mapping for every game
	// in the taxonomy.
	Index() map[string][]string
}

// Config defines configurations for the recommendation engine.
type Config struct {
	// API for querying the interaction graph.
	GraphAPI GraphAPI

	// API for querying the genre taxonomy.
	TreeAPI TreeAPI

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.GraphAPI == nil {
		err = multierror.Append(err, fmt.Errorf("graph API not provided"))
	}

	if config.TreeAPI == nil {
		err = multierror.Append(err, fmt.Errorf("tree API not provided"))
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}

// Ranking is the result of a single recommendation query.
type Ranking struct {
	// Games lists the top recommended game names, best first.
	Games []string

	// Scores maps every candidate that survived the relevance filter
	// to its final score, including candidates beyond the requested
	// top-K cutoff.
	Scores map[string]float64

	// Genres maps each ranked game to its genre labels.
	Genres map[string][]string
}

// Engine produces genre-aware recommendations from one interaction
// graph and one genre taxonomy. It holds no state beyond the borrowed
// collaborator references, so a single engine instance can serve any
// number of concurrent queries.
type Engine struct {
	config Config
}

// New creates and returns a fully configured recommendation engine.
// Missing collaborators indicate a wiring bug and fail immediately.
func New(config Config) (*Engine, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("recommendation engine: config validation failed: %w", err)
	}

	return &Engine{config: config}, nil
}

// Recommend returns up to topK games similar to the liked game,
// together with the full score map of every surviving candidate and the
// genres of each ranked game.
//
// "No recommendation" is a valid outcome of a user-facing query, never
// an error: a liked game that is unknown, not a game vertex, isolated,
// or not present in the taxonomy yields an empty ranking.
func (e *Engine) Recommend(likedGame string, topK int, boostFactor float64) *Ranking {
	ranking := &Ranking{
		Scores: make(map[string]float64),
		Genres: make(map[string][]string),
	}

	liked, exists := e.config.GraphAPI.Vertex(likedGame)
	if !exists || liked.Kind() != gamegraph.KindGame {
		return ranking
	}

	index := e.config.TreeAPI.Index()

	// The genre cache is scoped to this query: concurrent queries never
	// share mutable state.
	cache := make(map[string]genreSet)

	likedGenres := cachedGenreSet(cache, index, likedGame)
	if len(likedGenres) == 0 {
		// An uncategorized game cannot be matched by genre similarity.
		return ranking
	}

	rawScores := make(map[string]float64)
	support := make(map[string]int)

	for _, user := range liked.NeighborsOfKind(gamegraph.KindUser) {
		for _, candidate := range user.NeighborsOfKind(gamegraph.KindGame) {
			name := candidate.Name()
			if name == likedGame {
				continue
			}

			if !likedGenres.intersects(cachedGenreSet(cache, index, name)) {
				continue
			}

			// The graph holds at most one edge per (user, game) pair,
			// so each user contributes to a candidate exactly once.
			weight, _ := user.EdgeWeight(candidate)
			rawScores[name] += weight
			support[name]++
		}
	}

	// The logarithmic denominator suppresses globally popular games
	// that would otherwise dominate purely by appearing in many users'
	// histories.
	for name, raw := range rawScores {
		ranking.Scores[name] = raw / math.Log(1+float64(support[name])) * boostFactor
	}

	ranked := make([]string, 0, len(ranking.Scores))
	for name := range ranking.Scores {
		ranked = append(ranked, name)
	}
	sort.Slice(ranked, func(i, j int) bool {
		si, sj := ranking.Scores[ranked[i]], ranking.Scores[ranked[j]]
		if si != sj {
			return si > sj
		}

		// Equal scores fall back to the game name so rankings stay
		// reproducible across runs.
		return ranked[i] < ranked[j]
	})

	if topK < 0 {
		topK = 0
	}
	if topK < len(ranked) {
		ranked = ranked[:topK]
	}
	ranking.Games = ranked

	for _, name := range ranked {
		ranking.Genres[name] = index[name]
	}

	e.config.Logger.WithFields(logrus.Fields{
		"liked_game": likedGame,
		"candidates": len(ranking.Scores),
		"returned":   len(ranking.Games),
	}).Debug("recommendation query complete")

	return ranking
}

// genreSet supports constant-time genre intersection checks.
type genreSet map[string]struct{}

func (s genreSet) intersects(other genreSet) bool {
	// Iterate the smaller set.
	if len(other) < len(s) {
		s, other = other, s
	}

	for genre := range s {
		if _, exists := other[genre]; exists {
			return true
		}
	}

	return false
}

// cachedGenreSet resolves a game's genre set through the query-scoped
// cache, falling back to the taxonomy index.
func cachedGenreSet(
	cache map[string]genreSet, index map[string][]string, game string,
) genreSet {

	if set, exists := cache[game]; exists {
		return set
	}

	set := make(genreSet)
	for _, genre := range index[game] {
		set[genre] = struct{}{}
	}
	cache[game] = set

	return set
}
