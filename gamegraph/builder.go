package gamegraph

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/sentiment"
)

// InteractionSource defines a minimum set of API methods for reading
// the interaction record stream.
type InteractionSource interface {
	// Interactions returns an iterator over every stored interaction.
	Interactions() (gamedata.InteractionIterator, error)
}

// BuilderConfig defines configurations for the graph builder.
type BuilderConfig struct {
	// Source of the interaction record stream.
	Source InteractionSource

	// Scorer for review sentiment. If not specified, review text
	// contributes nothing to edge weights.
	Scorer sentiment.Scorer

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (config *BuilderConfig) validate() error {
	var err error

	if config.Source == nil {
		err = multierror.Append(err, fmt.Errorf("interaction source not provided"))
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}

// Builder assembles interaction graphs from a record stream. Building
// is a strict two-pass process: the first pass aggregates per-game
// playtime statistics, the second pass synthesizes edge weights against
// those statistics and populates the graph.
type Builder struct {
	config BuilderConfig
	model  WeightModel
}

// NewBuilder creates and returns a fully configured graph builder.
func NewBuilder(config BuilderConfig) (*Builder, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("graph builder: config validation failed: %w", err)
	}

	return &Builder{
		config: config,
		model:  WeightModel{Scorer: config.Scorer},
	}, nil
}

// Build runs both construction passes and returns a freshly populated
// graph. Malformed records are skipped individually with a diagnostic;
// they never abort the build.
func (b *Builder) Build() (*Graph, error) {
	it, err := b.config.Source.Interactions()
	if err != nil {
		return nil, fmt.Errorf("graph build: %w", err)
	}

	stats, err := gamedata.ComputeStats(it)
	if err != nil {
		return nil, fmt.Errorf("graph build: stats pass: %w", err)
	}

	it, err = b.config.Source.Interactions()
	if err != nil {
		return nil, fmt.Errorf("graph build: %w", err)
	}

	graph := NewGraph()
	var processed, skipped int

	for it.Next() {
		interaction := it.Interaction()
		if !interaction.Valid() {
			skipped++
			b.config.Logger.WithFields(logrus.Fields{
				"user": interaction.UserID,
				"game": interaction.GameName,
			}).Debug("skipping malformed interaction record")

			continue
		}

		weight := b.model.Weight(interaction, stats[interaction.GameName])

		graph.AddVertex(interaction.UserID, KindUser)
		graph.AddVertex(interaction.GameName, KindGame)
		graph.AddEdge(interaction.UserID, interaction.GameName, weight)

		processed++
	}

	if err := it.Error(); err != nil {
		_ = it.Close()

		return nil, fmt.Errorf("graph build: weight pass: %w", err)
	}

	if err := it.Close(); err != nil {
		return nil, fmt.Errorf("graph build: weight pass: %w", err)
	}

	b.config.Logger.WithFields(logrus.Fields{
		"processed_records": processed,
		"skipped_records":   skipped,
		"vertices":          graph.VertexCount(),
	}).Info("interaction graph build complete")

	return graph, nil
}
