package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/LetterSpin_Go/internal/catalog"
	"github.com/osse101/LetterSpin_Go/internal/config"
	"github.com/osse101/LetterSpin_Go/internal/database"
	"github.com/osse101/LetterSpin_Go/internal/database/postgres"
	"github.com/osse101/LetterSpin_Go/internal/memstore"
	"github.com/osse101/LetterSpin_Go/internal/repository"
	"github.com/osse101/LetterSpin_Go/migrations"
)

// Stores holds the backing store and the cached catalog view over it.
type Stores struct {
	Store   repository.Store
	Catalog *catalog.Catalog
	close   func()
}

// Close releases the underlying connections, if any.
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// InitializeStores builds the store selected by cfg.StoreDriver. The postgres
// driver connects, applies the embedded migrations when enabled, and wraps
// the pool. The memory driver starts empty. Either way the catalog is seeded
// when it has no active slots.
func InitializeStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	stores := &Stores{}

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{
			MaxConns:        cfg.DBMaxConns,
			MaxConnIdleTime: cfg.DBMaxConnIdleTime,
			MaxConnLifetime: cfg.DBMaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if cfg.RunMigrations {
			if err := database.Migrate(ctx, pool, migrations.FS); err != nil {
				pool.Close()
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
			}
		} else {
			slog.Info(LogMsgMigrationsSkipped)
		}
		stores.Store = postgres.NewStore(pool)
		stores.close = pool.Close
	case config.StoreDriverMemory:
		stores.Store = memstore.NewStore()
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStoreDriver, cfg.StoreDriver)
	}

	if _, err := SeedCatalog(ctx, stores.Store, cfg.CatalogSeedFile); err != nil {
		stores.Close()
		return nil, err
	}

	stores.Catalog = catalog.New(stores.Store, cfg.CatalogCacheSize, cfg.CatalogCacheTTL)

	slog.Info(LogMsgStoreInitialized,
		"driver", cfg.StoreDriver,
		"catalog_cache_size", cfg.CatalogCacheSize,
		"catalog_cache_ttl", cfg.CatalogCacheTTL)
	return stores, nil
}
