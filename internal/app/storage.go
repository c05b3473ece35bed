package app

import (
	"context"
	"fmt"

	"github.com/vadim/linkedin-mcp/internal/config"
	"github.com/vadim/linkedin-mcp/internal/database"
	"github.com/vadim/linkedin-mcp/internal/domain/post/dao"
)

// postStore is the post repository selected by configuration together with
// its lifecycle hooks
type postStore struct {
	repo    dao.PostRepository
	migrate func(ctx context.Context) error
	ping    func(ctx context.Context) error
	close   func()
}

func openPostStore(ctx context.Context, cfg config.Storage) (*postStore, error) {
	switch cfg.Driver {
	case config.DriverJSON:
		return &postStore{
			repo:    dao.NewPostJSON(cfg.DataDir),
			migrate: func(context.Context) error { return nil },
			ping:    func(context.Context) error { return nil },
			close:   func() {},
		}, nil

	case config.DriverSQLite:
		db, err := database.NewSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		repo := dao.NewPostSQLite(db)
		return &postStore{
			repo:    repo,
			migrate: repo.Migrate,
			ping:    db.PingContext,
			close:   func() { db.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.PostgresDSN, database.PoolOptions{
			MaxConns: cfg.MaxConns,
			MinConns: cfg.MinConns,
		})
		if err != nil {
			return nil, err
		}
		repo := dao.NewPostPostgres(pool)
		return &postStore{
			repo:    repo,
			migrate: repo.Migrate,
			ping:    pool.Ping,
			close:   pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Migrate creates the post schema for the configured driver and exits.
// The JSON driver has no schema.
func Migrate(ctx context.Context, cfg config.Config) error {
	store, err := openPostStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.Storage.Driver, err)
	}
	defer store.close()

	return store.migrate(ctx)
}
