package frontend

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gameindex/index"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/recommender"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/steam"
)

const (
	defaultNumOfResultsPerPage = 10
	defaultTopK                = 10
	defaultBoostFactor         = 1.0
)

// RecommenderAPI defines a minimum set of API methods for querying the
// recommendation engine.
type RecommenderAPI interface {
	// Recommend returns a ranking of games related to likedGame.
	Recommend(likedGame string, topK int, boostFactor float64) (*recommender.Ranking, error)
}

// IndexAPI defines a minimum set of API methods for searching indexed
// game documents.
type IndexAPI interface {
	// Search performs a look up based on query and returns a result
	// iterator if successful or an error otherwise.
	Search(q index.Query) (index.Iterator, error)

	// FindByName looks up a document by its exact game name.
	FindByName(name string) (*index.Document, error)
}

// DetailsAPI defines a minimum set of API methods for fetching game
// artwork and metadata from the storefront.
type DetailsAPI interface {
	// Details returns the store metadata for a game.
	Details(ctx context.Context, gameName string) (*steam.GameDetails, error)
}

// Config defines configurations for the front-end service.
type Config struct {
	// API for querying the recommendation engine.
	RecommenderAPI RecommenderAPI

	// API for searching the index store.
	IndexAPI IndexAPI

	// Optional API for fetching store metadata for games. Game detail
	// responses omit store metadata when not specified.
	DetailsAPI DetailsAPI

	// Port to listen for incoming requests.
	ListenAddr string

	// Number of results per page. If not specified, a default value of 10 results
	// per page will be used instead.
	NumOfResultsPerPage int

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.RecommenderAPI == nil {
		err = multierror.Append(err, fmt.Errorf("recommender API not provided"))
	}

	if config.IndexAPI == nil {
		err = multierror.Append(err, fmt.Errorf("index API not provided"))
	}

	if config.ListenAddr == "" {
		err = multierror.Append(err, fmt.Errorf("listen address not provided"))
	}

	if config.NumOfResultsPerPage <= 0 {
		config.NumOfResultsPerPage = defaultNumOfResultsPerPage
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
