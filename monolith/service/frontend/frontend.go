package frontend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gameindex/index"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/recommender"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/steam"
)

const (
	recommendationsEndpoint = "/api/recommendations"
	searchEndpoint          = "/api/search"
	gameDetailsEndpoint     = "/api/games/{name}"
)

// Service represents a front-end service for the recommender
// application. It satisfies the service.Service interface.
type Service struct {
	config Config
	// Any router type that satisfies the http.Handler interface.
	router *chi.Mux
}

// New creates and returns a fully configured front-end service instance.
func New(config Config) (*Service, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("frontend service: config validation failed: %w", err)
	}

	svc := &Service{
		config: config,
		router: chi.NewRouter(),
	}

	svc.router.Use(svc.requestLogger)

	svc.router.Get(recommendationsEndpoint, svc.serveRecommendations)
	svc.router.Get(searchEndpoint, svc.serveSearchResults)
	svc.router.Get(gameDetailsEndpoint, svc.serveGameDetails)

	svc.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		svc.renderError(w, http.StatusNotFound, "resource not found")
	})

	return svc, nil
}

// Name returns the name of the service.
func (svc *Service) Name() string { return "frontend" }

// Run executes the service and blocks until the context gets cancelled
// or an error occurs.
func (svc *Service) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", svc.config.ListenAddr)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	srv := &http.Server{
		Addr:    svc.config.ListenAddr,
		Handler: svc.router,
	}

	go func() {
		<-ctx.Done()

		_ = srv.Close()
	}()

	svc.config.Logger.WithField("addr", svc.config.ListenAddr).Info(
		"started service",
	)

	if err = srv.Serve(l); err == http.ErrServerClosed {
		// Server closed gracefully.
		err = nil
	}

	return err
}

// requestLogger assigns every request a unique id and logs its outcome.
func (svc *Service) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startedAt := time.Now()
		requestID := uuid.New().String()

		next.ServeHTTP(w, r)

		svc.config.Logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"duration":   time.Since(startedAt),
		}).Debug("handled request")
	})
}

// recommendedGame describes a single entry of a recommendation response.
type recommendedGame struct {
	Name   string   `json:"name"`
	Score  float64  `json:"score"`
	Genres []string `json:"genres,omitempty"`
}

type recommendationsResponse struct {
	Game    string            `json:"game"`
	Results []recommendedGame `json:"results"`
}

func (svc *Service) serveRecommendations(w http.ResponseWriter, r *http.Request) {
	likedGame := r.URL.Query().Get("game")
	if likedGame == "" {
		svc.renderError(w, http.StatusBadRequest, "missing required parameter: game")

		return
	}

	topK := defaultTopK
	if rawTopK := r.URL.Query().Get("top_k"); rawTopK != "" {
		parsed, err := strconv.Atoi(rawTopK)
		if err != nil || parsed < 0 {
			svc.renderError(w, http.StatusBadRequest, "invalid value for parameter: top_k")

			return
		}

		topK = parsed
	}

	boostFactor := defaultBoostFactor
	if rawBoost := r.URL.Query().Get("boost"); rawBoost != "" {
		parsed, err := strconv.ParseFloat(rawBoost, 64)
		if err != nil || parsed <= 0 {
			svc.renderError(w, http.StatusBadRequest, "invalid value for parameter: boost")

			return
		}

		boostFactor = parsed
	}

	ranking, err := svc.config.RecommenderAPI.Recommend(likedGame, topK, boostFactor)
	if err != nil {
		if errors.Is(err, recommender.ErrNotReady) {
			svc.renderError(
				w, http.StatusServiceUnavailable,
				"recommendation engine is still warming up; please retry shortly",
			)

			return
		}

		svc.config.Logger.WithField("err", err).Error("recommendation query execution failed")
		svc.renderError(w, http.StatusInternalServerError, "an error occurred, please try again later")

		return
	}

	res := recommendationsResponse{
		Game: likedGame,
		// An unknown or unclassified game yields an empty result list
		// rather than an error.
		Results: make([]recommendedGame, 0, len(ranking.Games)),
	}

	for _, name := range ranking.Games {
		res.Results = append(res.Results, recommendedGame{
			Name:   name,
			Score:  ranking.Scores[name],
			Genres: ranking.Genres[name],
		})
	}

	svc.renderJSON(w, http.StatusOK, res)
}

// matchedGame describes a single entry of a search response.
type matchedGame struct {
	Name       string   `json:"name"`
	Genres     []string `json:"genres,omitempty"`
	Popularity float64  `json:"popularity"`
}

type searchResponse struct {
	Total   uint64        `json:"total"`
	Results []matchedGame `json:"results"`
}

func (svc *Service) serveSearchResults(w http.ResponseWriter, r *http.Request) {
	searchTerms := r.URL.Query().Get("q")
	if searchTerms == "" {
		svc.renderError(w, http.StatusBadRequest, "missing required parameter: q")

		return
	}

	offset, _ := strconv.ParseUint(r.URL.Query().Get("offset"), 10, 64)

	query := index.Query{
		Type:       index.QueryTypeMatch,
		Expression: searchTerms,
		Offset:     offset,
	}

	// Quoted search terms request an exact phrase match.
	if strings.HasPrefix(searchTerms, `"`) && strings.HasSuffix(searchTerms, `"`) {
		query.Type = index.QueryTypePhrase
		query.Expression = strings.Trim(searchTerms, `"`)
	}

	docsIt, err := svc.config.IndexAPI.Search(query)
	if err != nil {
		svc.config.Logger.WithField("err", err).Error("search query execution failed")
		svc.renderError(w, http.StatusInternalServerError, "an error occurred, please try again later")

		return
	}
	defer func() { _ = docsIt.Close() }()

	res := searchResponse{
		Results: make([]matchedGame, 0, svc.config.NumOfResultsPerPage),
	}

	for docCount := 0; docsIt.Next() && docCount < svc.config.NumOfResultsPerPage; docCount++ {
		doc := docsIt.Document()
		res.Results = append(res.Results, matchedGame{
			Name:       doc.Name,
			Genres:     doc.Genres,
			Popularity: doc.Popularity,
		})
	}

	if err = docsIt.Error(); err != nil {
		svc.config.Logger.WithField("err", err).Error("search query execution failed")
		svc.renderError(w, http.StatusInternalServerError, "an error occurred, please try again later")

		return
	}

	res.Total = docsIt.TotalCount()

	svc.renderJSON(w, http.StatusOK, res)
}

type gameDetailsResponse struct {
	Name       string             `json:"name"`
	Genres     []string           `json:"genres,omitempty"`
	Popularity float64            `json:"popularity"`
	Store      *steam.GameDetails `json:"store,omitempty"`
}

func (svc *Service) serveGameDetails(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	doc, err := svc.config.IndexAPI.FindByName(name)
	if err != nil {
		if errors.Is(err, index.ErrNotFound) {
			svc.renderError(w, http.StatusNotFound, "game not found")

			return
		}

		svc.config.Logger.WithField("err", err).Error("game lookup failed")
		svc.renderError(w, http.StatusInternalServerError, "an error occurred, please try again later")

		return
	}

	res := gameDetailsResponse{
		Name:       doc.Name,
		Genres:     doc.Genres,
		Popularity: doc.Popularity,
	}

	if svc.config.DetailsAPI != nil {
		details, err := svc.config.DetailsAPI.Details(r.Context(), doc.Name)
		if err != nil {
			// Store metadata is best-effort; serve the indexed document
			// without it.
			svc.config.Logger.WithFields(logrus.Fields{
				"game": doc.Name,
				"err":  err,
			}).Warn("store metadata lookup failed")
		} else {
			res.Store = details
		}
	}

	svc.renderJSON(w, http.StatusOK, res)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (svc *Service) renderError(w http.ResponseWriter, status int, msg string) {
	svc.renderJSON(w, status, errorResponse{Error: msg})
}

func (svc *Service) renderJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		svc.config.Logger.WithField("err", err).Error("failed to encode response payload")
	}
}
