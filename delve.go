// Package delve serves source files from local git repositories with
// line-range addressing.
//
// A fragment such as #L10-L20 selects lines of the file being viewed. The
// client keeps highlight, scroll position and external links in step with
// the fragment as lines are clicked.
//
// Basic usage:
//
//	client, err := delve.New(
//	    delve.WithSQLite(".delve/delve.db"),
//	    delve.WithRepositories(service.RepositoryParams{Name: "delve", Path: "/src/delve"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	file, excerpt, err := client.Files.ReadRange(ctx, "delve", "HEAD", "go.mod", "#L1-L3")
package delve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/helixml/delve/application/handler"
	"github.com/helixml/delve/application/service"
	"github.com/helixml/delve/infrastructure/git"
	"github.com/helixml/delve/infrastructure/persistence"
	"github.com/helixml/delve/internal/config"
	"github.com/helixml/delve/internal/database"
)

// ErrNoDatabase indicates no database was configured and no data directory
// was available for the default one.
var ErrNoDatabase = errors.New("delve: no database configured")

// Client is the main entry point for the delve library.
//
// Access resources via struct fields:
//
//	client.Repositories.Find(ctx)
//	client.Files.Open(ctx, "delve", "HEAD", "README.md")
//	client.Navigator.Navigate(ctx, req)
type Client struct {
	Repositories *service.Repositories
	Files        *service.FileView
	Navigator    *handler.Navigator

	db      database.Database
	closers []io.Closer
	logger  *slog.Logger
	apiKeys []string
	closed  atomic.Bool
	mu      sync.Mutex
}

// New creates a new Client with the given options. Without a database
// option a SQLite file in the data directory is used.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	dbURL := cfg.dbURL
	if dbURL == "" {
		if cfg.dataDir == "" {
			return nil, ErrNoDatabase
		}
		if err := os.MkdirAll(cfg.dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		dbURL = "sqlite:///" + filepath.Join(cfg.dataDir, config.DefaultDBFile)
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbURL, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), db.Close())
	}
	if err := persistence.ValidateSchema(db); err != nil {
		return nil, errors.Join(fmt.Errorf("validate schema: %w", err), db.Close())
	}

	gitAdapter := git.NewGoGitAdapter(logger)
	repositories := service.NewRepositories(persistence.NewRepositoryStore(db), gitAdapter, logger)
	files := service.NewFileView(repositories, gitAdapter, cfg.layout, logger)

	client := &Client{
		Repositories: repositories,
		Files:        files,
		Navigator:    handler.NewNavigator(files, logger),
		db:           db,
		closers:      cfg.closers,
		logger:       logger,
		apiKeys:      cfg.apiKeys,
	}

	seeds, err := seedParams(cfg)
	if err != nil {
		return nil, errors.Join(err, client.Close())
	}
	if len(seeds) > 0 {
		if _, err := repositories.Seed(ctx, seeds); err != nil {
			return nil, errors.Join(fmt.Errorf("seed repositories: %w", err), client.Close())
		}
	}

	return client, nil
}

func seedParams(cfg *clientConfig) ([]service.RepositoryParams, error) {
	seeds := append([]service.RepositoryParams(nil), cfg.repositories...)
	if cfg.reposFile == "" {
		return seeds, nil
	}

	entries, err := config.LoadRepositories(cfg.reposFile)
	if err != nil {
		return nil, fmt.Errorf("load repositories: %w", err)
	}
	for _, e := range entries {
		seeds = append(seeds, service.RepositoryParams{
			Name:            e.Name,
			Path:            e.Path,
			URLPattern:      e.Pattern(),
			DefaultRevision: e.Revision(),
		})
	}
	return seeds, nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger { return c.logger }

// APIKeys returns the keys accepted for mutating API requests.
func (c *Client) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// Ping checks the database connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.closed.Load() {
		return service.ErrClientClosed
	}
	sqlDB, err := c.db.GORM().DB()
	if err != nil {
		return fmt.Errorf("get underlying db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the database and any registered closers. Closing twice
// returns ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed.CompareAndSwap(false, true) {
		return service.ErrClientClosed
	}

	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	return errors.Join(errs...)
}
