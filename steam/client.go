package steam

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

const (
	defaultStoreURL = "https://store.steampowered.com"
	defaultImageURL = "https://cdn.cloudflare.steamstatic.com"

	// Number of game-name to app-id mappings retained in memory.
	defaultCacheSize = 512

	// Timeout applied to store requests when no custom client is provided.
	defaultTimeout = 10 * time.Second
)

// GameDetails defines the catalog metadata returned by the store for a
// single game.
type GameDetails struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	HeaderImage string   `json:"header_image"`
	Developers  []string `json:"developers,omitempty"`
	Publishers  []string `json:"publishers,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
	Genres      []string `json:"genres,omitempty"`
}

// Config encapsulates the settings for configuring the store client.
type Config struct {
	// Base URL for the storefront API. Defaults to the public steam
	// store endpoint.
	StoreURL string

	// Base URL for the static image CDN.
	ImageURL string

	// HTTP client used to perform store requests. A client with a
	// sensible timeout will be used if not specified.
	HTTPClient *http.Client

	// Optional path to a JSON file where the app-id cache is persisted
	// across runs. Persistence is disabled when empty.
	CacheFile string

	// Maximum number of app-id mappings retained in memory.
	CacheSize int

	// Logger instance for the client to use.
	Logger *logrus.Entry
}

// validate configuration values and set defaults for missing values
// where necessary.
func (cfg *Config) validate() error {
	var err error

	if cfg.StoreURL == "" {
		cfg.StoreURL = defaultStoreURL
	}

	if cfg.ImageURL == "" {
		cfg.ImageURL = defaultImageURL
	}

	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}

	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}

	if cfg.Logger == nil {
		// Avoid logging anything by default.
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}

// Client looks up game artwork and metadata from the storefront API.
// App-id lookups are memoized in a bounded LRU cache which can
// optionally be persisted to disk.
type Client struct {
	cfg Config

	// Serializes cache-file writes.
	mu    sync.Mutex
	cache *lru.Cache[string, int]
}

// NewClient instantiates and returns a store client. Any previously
// persisted app-id cache is loaded before the client is returned.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cache, err := lru.New[string, int](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("steam client: %w", err)
	}

	c := &Client{
		cfg:   cfg,
		cache: cache,
	}

	if err := c.loadCacheFile(); err != nil {
		cfg.Logger.WithField("err", err).Warn("failed to load app-id cache file")
	}

	return c, nil
}

type searchResponse struct {
	Total int `json:"total"`
	Items []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"items"`
}

// AppID resolves a game name to its store app id using the storesearch
// endpoint. Results are cached so that repeated lookups for the same
// game avoid a network round-trip. The second return value is false
// when the store does not know the game or the lookup fails.
func (c *Client) AppID(ctx context.Context, gameName string) (int, bool) {
	if id, exists := c.cache.Get(gameName); exists {
		return id, true
	}

	searchURL := fmt.Sprintf(
		"%s/api/storesearch?term=%s&l=english&cc=US",
		c.cfg.StoreURL, url.QueryEscape(gameName),
	)

	var res searchResponse
	if err := c.getJSON(ctx, searchURL, &res); err != nil {
		c.cfg.Logger.WithFields(logrus.Fields{
			"game": gameName,
			"err":  err,
		}).Debug("app-id lookup failed")

		return 0, false
	}

	if res.Total == 0 || len(res.Items) == 0 {
		return 0, false
	}

	id := res.Items[0].ID
	c.cache.Add(gameName, id)

	if err := c.saveCacheFile(); err != nil {
		c.cfg.Logger.WithField("err", err).Warn("failed to persist app-id cache file")
	}

	return id, true
}

// ImageURL returns the header image URL for a game. When the game
// cannot be resolved to an app id a placeholder image URL that embeds
// the game name is returned instead.
func (c *Client) ImageURL(ctx context.Context, gameName string) string {
	if id, exists := c.AppID(ctx, gameName); exists {
		return fmt.Sprintf("%s/steam/apps/%d/header.jpg", c.cfg.ImageURL, id)
	}

	return fmt.Sprintf(
		"https://placehold.co/600x300?text=%s",
		strings.ReplaceAll(gameName, " ", "+"),
	)
}

type detailsResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Name             string   `json:"name"`
		ShortDescription string   `json:"short_description"`
		HeaderImage      string   `json:"header_image"`
		Developers       []string `json:"developers"`
		Publishers       []string `json:"publishers"`
		ReleaseDate      struct {
			Date string `json:"date"`
		} `json:"release_date"`
		Genres []struct {
			Description string `json:"description"`
		} `json:"genres"`
	} `json:"data"`
}

// Details returns the store metadata for a game. Games the store does
// not know still yield a minimal result carrying the game name and a
// placeholder image so that callers can render something.
func (c *Client) Details(ctx context.Context, gameName string) (*GameDetails, error) {
	id, exists := c.AppID(ctx, gameName)
	if !exists {
		return c.fallbackDetails(ctx, gameName), nil
	}

	detailsURL := fmt.Sprintf(
		"%s/api/appdetails?appids=%d&cc=US&l=english",
		c.cfg.StoreURL, id,
	)

	// The appdetails endpoint keys its response by app id.
	var res map[string]detailsResponse
	if err := c.getJSON(ctx, detailsURL, &res); err != nil {
		return nil, fmt.Errorf("game details: %w", err)
	}

	entry, exists := res[fmt.Sprint(id)]
	if !exists || !entry.Success {
		return c.fallbackDetails(ctx, gameName), nil
	}

	details := &GameDetails{
		Name:        entry.Data.Name,
		Description: entry.Data.ShortDescription,
		HeaderImage: entry.Data.HeaderImage,
		Developers:  entry.Data.Developers,
		Publishers:  entry.Data.Publishers,
		ReleaseDate: entry.Data.ReleaseDate.Date,
	}

	if details.Name == "" {
		details.Name = gameName
	}

	if details.HeaderImage == "" {
		details.HeaderImage = c.ImageURL(ctx, gameName)
	}

	if details.ReleaseDate == "" {
		details.ReleaseDate = "Unknown"
	}

	for _, genre := range entry.Data.Genres {
		details.Genres = append(details.Genres, genre.Description)
	}

	return details, nil
}

func (c *Client) fallbackDetails(ctx context.Context, gameName string) *GameDetails {
	return &GameDetails{
		Name:        gameName,
		HeaderImage: c.ImageURL(ctx, gameName),
	}
}

func (c *Client) getJSON(ctx context.Context, reqURL string, into interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(into)
}

func (c *Client) loadCacheFile() error {
	if c.cfg.CacheFile == "" {
		return nil
	}

	data, err := os.ReadFile(c.cfg.CacheFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}

	var entries map[string]int
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	for name, id := range entries {
		c.cache.Add(name, id)
	}

	return nil
}

func (c *Client) saveCacheFile() error {
	if c.cfg.CacheFile == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make(map[string]int, c.cache.Len())
	for _, name := range c.cache.Keys() {
		if id, exists := c.cache.Get(name); exists {
			entries[name] = id
		}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.cfg.CacheFile), 0o755); err != nil {
		return err
	}

	return os.WriteFile(c.cfg.CacheFile, data, 0o644)
}
