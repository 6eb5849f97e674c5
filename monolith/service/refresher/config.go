package refresher

import (
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gameindex/index"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/monolith/partition"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/recommender"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/sentiment"
)

// DataAPI defines a minimum set of API methods for reading the
// interaction stream and the classified game catalog.
type DataAPI interface {
	// Interactions returns an iterator over every stored interaction.
	Interactions() (gamedata.InteractionIterator, error)

	// Games returns an iterator over every classified catalog entry.
	Games() (gamedata.GameIterator, error)
}

// IndexAPI defines a minimum set of API methods for re-indexing the
// game catalog.
type IndexAPI interface {
	// Index adds a new document or updates an existing index entry
	// in case of an existing document.
	Index(doc *index.Document) error

	// UpdatePopularity updates the popularity score for the document
	// with the specified game name.
	UpdatePopularity(name string, popularity float64) error
}

// Config defines configurations for the refresher service.
type Config struct {
	// API for reading interaction and catalog data.
	DataAPI DataAPI

	// API for communicating with the index store.
	IndexAPI IndexAPI

	// Holder through which freshly built engines are published.
	Holder *recommender.Holder

	// An API for detecting partition assignments for this service.
	PartitionDetector partition.Detector

	// Scorer for review sentiment. If not specified, review text
	// contributes nothing to edge weights.
	Scorer sentiment.Scorer

	// A clock instance for generating time-related events. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The duration between subsequent refresh passes.
	RefreshInterval time.Duration

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.DataAPI == nil {
		err = multierror.Append(err, fmt.Errorf("data API not provided"))
	}

	if config.IndexAPI == nil {
		err = multierror.Append(err, fmt.Errorf("index API not provided"))
	}

	if config.Holder == nil {
		err = multierror.Append(err, fmt.Errorf("engine holder not provided"))
	}

	if config.PartitionDetector == nil {
		err = multierror.Append(err, fmt.Errorf("partition detector not provided"))
	}

	if config.Clock == nil {
		config.Clock = clock.WallClock
	}

	if config.RefreshInterval == 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for refresh interval"))
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
