package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata/store/cdb"
	memstore "github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata/store/memory"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gameindex/index"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gameindex/store/es"
	memindex "github.com/Samario-in-UofT24/Content-based-Filtering-Program/gameindex/store/memory"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/monolith/partition"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/monolith/service"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/monolith/service/frontend"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/monolith/service/refresher"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/recommender"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/sentiment"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/steam"
)

const (
	appName = "game-recommender-monolith"
	appSHA  = "compiled-and-deployed-at"
)

func main() {
	host, _ := os.Hostname()
	// Instantiate a root logger that will be passed to all services.
	rootLogger := logrus.New()
	logger := rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"SHA":  appSHA,
		"host": host,
	})

	svcGroup, err := configureServices(logger)
	if err != nil {
		logger.WithField("err", err).Error("shutting down due to an error")

		return
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	// Launch a separate process to listen and respond to os signals
	// and trigger a graceful shutdown.
	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGINT, syscall.SIGHUP)

		select {
		case s := <-signalChan:
			logger.WithField("signal", s.String()).Info("shutting down due to os signal")
			// Cancel context, this signals all services to return since they all
			// share this same context.
			cancelFn()
		case <-ctx.Done():
		}
	}()

	if err := svcGroup.Execute(ctx); err != nil {
		logger.WithField("err", err).Error("shutting down due to an error")

		return
	}

	// Shutdown due to context cancellation.
	logger.Info("shutdown complete")
}

func configureServices(logger *logrus.Entry) (service.Group, error) {
	var (
		refresherConfig refresher.Config
		frontendConfig  frontend.Config
	)

	flag.DurationVar(
		&refresherConfig.RefreshInterval, "refresh-interval",
		5*time.Minute, "Time between subsequent graph and index refresh passes",
	)

	flag.StringVar(
		&frontendConfig.ListenAddr, "frontend-listen-addr",
		":8080", "Address to listen on for incoming frontend requests",
	)
	flag.IntVar(
		&frontendConfig.NumOfResultsPerPage, "frontend-search-results-per-page",
		10, "Number of search results returned per page",
	)

	gameDataURI := flag.String(
		"game-data-uri", "in-memory://",
		"URI for connecting to a game data store."+
			" [supported URI's: in-memory://, postgresql://user@host:26257/gamedata?sslmode=disable]",
	)
	gameIndexURI := flag.String(
		"game-index-uri", "in-memory://",
		"URI for connecting to a game index store."+
			" [supported URI's: in-memory://, es://node1:9200,...,nodeN:9200]",
	)

	interactionsFile := flag.String(
		"interactions-file", "",
		"Optional path to a JSON-lines interaction feed loaded into the data store on start up",
	)
	catalogFile := flag.String(
		"catalog-file", "",
		"Optional path to a JSON catalog feed loaded into the data store on start up",
	)

	partitionDetectorMode := flag.String(
		"partition-detection-mode", "single",
		"The partition detection mode to use. Supported values are"+
			" 'dns=HEADLESS_SERVICE_NAME' (k8s) and 'single' (local dev mode)",
	)

	steamEnabled := flag.Bool(
		"steam-lookups", false,
		"Fetch game artwork and metadata from the steam storefront",
	)
	steamCacheFile := flag.String(
		"steam-cache-file", "",
		"Optional path to a JSON file for persisting resolved steam app id's",
	)

	flag.Parse()

	// Retrieve a suitable game data store and game index implementation
	// and plug it into service configurations.
	dataStore, err := getGameDataStore(*gameDataURI, logger)
	if err != nil {
		return nil, err
	}

	gameIndex, err := getGameIndex(*gameIndexURI, logger)
	if err != nil {
		return nil, err
	}

	if err := loadFeeds(dataStore, *interactionsFile, *catalogFile, logger); err != nil {
		return nil, err
	}

	partDet, err := getPartitionDetector(*partitionDetectorMode)
	if err != nil {
		return nil, err
	}

	var svc service.Service
	var svcGrp service.Group

	engineHolder := new(recommender.Holder)

	refresherConfig.DataAPI = dataStore
	refresherConfig.IndexAPI = gameIndex
	refresherConfig.Holder = engineHolder
	refresherConfig.PartitionDetector = partDet
	refresherConfig.Scorer = sentiment.NewVaderScorer()
	refresherConfig.Logger = logger.WithField("service", "refresher")
	if svc, err = refresher.New(refresherConfig); err == nil {
		svcGrp = append(svcGrp, svc)
	} else {
		return nil, err
	}

	if *steamEnabled {
		storeClient, err := steam.NewClient(steam.Config{
			CacheFile: *steamCacheFile,
			Logger:    logger.WithField("component", "steam-client"),
		})
		if err != nil {
			return nil, err
		}

		frontendConfig.DetailsAPI = storeClient
	}

	frontendConfig.RecommenderAPI = engineHolder
	frontendConfig.IndexAPI = gameIndex
	frontendConfig.Logger = logger.WithField("service", "frontend")
	if svc, err = frontend.New(frontendConfig); err == nil {
		svcGrp = append(svcGrp, svc)
	} else {
		return nil, err
	}

	return svcGrp, nil
}

// DataStoreAPI defines a minimum set of API methods for the game data store.
type DataStoreAPI interface {
	// UpsertInteraction creates a new or updates an existing interaction.
	UpsertInteraction(interaction *gamedata.Interaction) error

	// UpsertGame creates a new or updates an existing catalog entry.
	UpsertGame(game *gamedata.Game) error

	// Interactions returns an iterator over every stored interaction.
	Interactions() (gamedata.InteractionIterator, error)

	// Games returns an iterator over every classified catalog entry.
	Games() (gamedata.GameIterator, error)
}

func getGameDataStore(gameDataURI string, logger *logrus.Entry) (DataStoreAPI, error) {
	if gameDataURI == "" {
		return nil, fmt.Errorf("game data URI must be specified with --game-data-uri")
	}

	url, err := url.Parse(gameDataURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse game data URI: %w", err)
	}

	switch url.Scheme {
	case "in-memory":
		logger.Info("using in-memory game data store")

		return memstore.NewInMemoryStore(), nil
	case "postgresql":
		logger.Info("using CDB game data store")

		return cdb.NewCockroachDBStore(gameDataURI)
	default:
		return nil, fmt.Errorf("unsupported game data URI scheme: %q", url.Scheme)
	}
}

// IndexAPI defines a minimum set of API methods for indexing and searching
// game documents.
type IndexAPI interface {
	// Index adds a new document or updates an existing index entry
	// in case of an existing document.
	Index(doc *index.Document) error

	// FindByName looks up a document by its exact game name.
	FindByName(name string) (*index.Document, error)

	// Search performs a look up based on query and returns a result
	// iterator if successful or an error otherwise.
	Search(q index.Query) (index.Iterator, error)

	// UpdatePopularity updates the popularity score for the document
	// with the specified game name. If no such document exists, a
	// placeholder document with the provided score will be created.
	UpdatePopularity(name string, popularity float64) error
}

func getGameIndex(gameIndexURI string, logger *logrus.Entry) (IndexAPI, error) {
	if gameIndexURI == "" {
		return nil, fmt.Errorf("game index URI must be specified with --game-index-uri")
	}

	url, err := url.Parse(gameIndexURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse game index URI: %w", err)
	}

	switch url.Scheme {
	case "in-memory":
		logger.Info("using in-memory index store")

		return memindex.NewInMemoryIndex()
	case "es":
		nodes := strings.Split(url.Host, ",")
		for i := 0; i < len(nodes); i++ {
			nodes[i] = "http://" + nodes[i]
		}
		logger.Info("using ES index store")

		return es.NewEsIndexer(nodes, false)
	default:
		return nil, fmt.Errorf("unsupported game index URI scheme: %q", url.Scheme)
	}
}

func getPartitionDetector(mode string) (partition.Detector, error) {
	switch {
	case mode == "single":
		return partition.DummyDetector{
			Partition:       0,
			NumOfPartitions: 1,
		}, nil
	case strings.HasPrefix(mode, "dns="):
		tokens := strings.Split(mode, "=")
		return partition.DetectFromSRVRecords(tokens[1]), nil
	default:
		return nil, fmt.Errorf("unsupported partition detector mode: %q", mode)
	}
}

// loadFeeds populates the data store with the optional interaction and
// catalog feed files before any service starts.
func loadFeeds(store DataStoreAPI, interactionsFile, catalogFile string, logger *logrus.Entry) error {
	if interactionsFile != "" {
		f, err := os.Open(interactionsFile)
		if err != nil {
			return fmt.Errorf("failed to open interactions feed: %w", err)
		}

		loaded, skipped, err := gamedata.LoadInteractions(f, store)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("failed to load interactions feed: %w", err)
		}

		logger.WithFields(logrus.Fields{
			"loaded":  loaded,
			"skipped": skipped,
		}).Info("loaded interactions feed")
	}

	if catalogFile != "" {
		f, err := os.Open(catalogFile)
		if err != nil {
			return fmt.Errorf("failed to open catalog feed: %w", err)
		}

		loaded, skipped, err := gamedata.LoadCatalog(f, store)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("failed to load catalog feed: %w", err)
		}

		logger.WithFields(logrus.Fields{
			"loaded":  loaded,
			"skipped": skipped,
		}).Info("loaded catalog feed")
	}

	return nil
}
