package refresher

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamegraph"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gameindex/index"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/genretree"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/monolith/partition"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/recommender"
)

// Service represents a refresher service for the recommender
// application. It periodically rebuilds the interaction graph and the
// genre tree from the data store, publishes a freshly configured
// recommendation engine and re-indexes the game catalog. It satisfies
// the service.Service interface.
type Service struct {
	config Config
}

// New creates and returns a fully configured refresher service instance.
func New(config Config) (*Service, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("refresher service: config validation failed: %w", err)
	}

	return &Service{config: config}, nil
}

// Name returns the name of the service.
func (svc *Service) Name() string { return "refresher" }

// Run executes the service and blocks until the context gets cancelled
// or an error occurs. An initial refresh pass runs immediately so that
// the engine becomes available without waiting for the first interval
// to elapse.
func (svc *Service) Run(ctx context.Context) error {
	svc.config.Logger.WithField(
		"refresh_interval", svc.config.RefreshInterval.String(),
	).Info("started service")
	defer svc.config.Logger.Info("stopped service")

	if exit, err := svc.runPass(ctx); exit || err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-svc.config.Clock.After(svc.config.RefreshInterval):
			if exit, err := svc.runPass(ctx); exit || err != nil {
				return err
			}
		}
	}
}

// runPass checks the partition assignment for this instance and runs a
// refresh pass when it is the master. The returned exit flag signals
// that the service should stop without an error.
func (svc *Service) runPass(ctx context.Context) (exit bool, err error) {
	currPartition, _, err := svc.config.PartitionDetector.PartitionInfo()
	if err != nil {
		if errors.Is(err, partition.ErrNoPartitionDataAvailableYet) {
			svc.config.Logger.Warn(
				"deferring refresh pass: partition data not yet available",
			)

			return false, nil
		}

		return true, err
	}

	if currPartition != 0 {
		svc.config.Logger.Info(
			"service should only run on the master node of the application cluster",
		)

		return true, nil
	}

	return false, svc.refresh(ctx)
}

func (svc *Service) refresh(_ context.Context) error {
	svc.config.Logger.Info("started refresh pass")

	startedAt := svc.config.Clock.Now()

	tick := svc.config.Clock.Now()
	builder, err := gamegraph.NewBuilder(gamegraph.BuilderConfig{
		Source: svc.config.DataAPI,
		Scorer: svc.config.Scorer,
		Logger: svc.config.Logger,
	})
	if err != nil {
		return err
	}

	interactionGraph, err := builder.Build()
	if err != nil {
		return err
	}
	graphBuildDuration := svc.config.Clock.Now().Sub(tick)

	tick = svc.config.Clock.Now()
	tree, err := genretree.Build(svc.config.DataAPI)
	if err != nil {
		return err
	}
	treeBuildDuration := svc.config.Clock.Now().Sub(tick)

	engine, err := recommender.New(recommender.Config{
		GraphAPI: interactionGraph,
		TreeAPI:  tree,
		Logger:   svc.config.Logger,
	})
	if err != nil {
		return err
	}

	svc.config.Holder.Publish(engine)

	tick = svc.config.Clock.Now()
	indexedGames, err := svc.reindexCatalog(interactionGraph)
	if err != nil {
		return err
	}
	reindexDuration := svc.config.Clock.Now().Sub(tick)

	svc.config.Logger.WithFields(logrus.Fields{
		"graph_vertices":       interactionGraph.VertexCount(),
		"indexed_games":        indexedGames,
		"graph_build_duration": graphBuildDuration,
		"tree_build_duration":  treeBuildDuration,
		"reindex_duration":     reindexDuration,
		"total_refresh_time":   svc.config.Clock.Now().Sub(startedAt),
	}).Info("completed refresh pass")

	return nil
}

// reindexCatalog re-indexes every classified catalog entry and refreshes
// its popularity score with the number of distinct users that interacted
// with the game in the freshly built graph.
func (svc *Service) reindexCatalog(interactionGraph *gamegraph.Graph) (int, error) {
	gameIt, err := svc.config.DataAPI.Games()
	if err != nil {
		return 0, err
	}

	var indexedGames int
	for gameIt.Next() {
		game := gameIt.Game()

		if err := svc.config.IndexAPI.Index(&index.Document{
			Name:   game.Name,
			Genres: game.Genres,
		}); err != nil {
			_ = gameIt.Close()

			return indexedGames, err
		}

		var popularity float64
		if vertex, exists := interactionGraph.Vertex(game.Name); exists {
			popularity = float64(len(vertex.NeighborsOfKind(gamegraph.KindUser)))
		}

		if err := svc.config.IndexAPI.UpdatePopularity(game.Name, popularity); err != nil {
			_ = gameIt.Close()

			return indexedGames, err
		}

		indexedGames++
	}

	// Check for iteration errors.
	if err := gameIt.Error(); err != nil {
		_ = gameIt.Close()

		return indexedGames, err
	}

	return indexedGames, gameIt.Close()
}
