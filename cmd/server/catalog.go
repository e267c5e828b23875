// cmd/server/catalog.go
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/storefront/internal/cache"
	"github.com/javajoker/storefront/internal/catalog"
	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/database"
	"github.com/javajoker/storefront/internal/services"
)

// catalogBackend bundles the configured catalog source, its cache and the
// connections they hold.
type catalogBackend struct {
	source  catalog.Source
	cache   cache.Cache
	storage *services.StorageService

	db    *gorm.DB
	redis *cache.RedisCache
	mem   *cache.MemoryCache
}

func newCatalogBackend(ctx context.Context, cfg *config.Config, publishSeed bool) (*catalogBackend, error) {
	storage, err := services.NewStorageService(cfg.AWS)
	if err != nil {
		return nil, err
	}
	b := &catalogBackend{storage: storage}

	switch cfg.Catalog.Source {
	case config.SourceMemory:
		products, err := database.SeedCatalog()
		if err != nil {
			return nil, err
		}
		b.source = catalog.NewStaticSource(products)

	case config.SourcePostgres:
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			return nil, err
		}
		b.db = db
		if err := database.RunMigrations(db); err != nil {
			b.Close()
			return nil, err
		}
		if cfg.Database.Seed {
			if err := database.SeedInitialData(db); err != nil {
				b.Close()
				return nil, err
			}
		}
		b.source = database.NewProductRepository(db)

	case config.SourceS3:
		if publishSeed {
			products, err := database.SeedCatalog()
			if err != nil {
				return nil, err
			}
			if err := storage.PublishCatalog(ctx, products); err != nil {
				return nil, err
			}
		}
		b.source = storage

	default:
		return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownSource, cfg.Catalog.Source)
	}

	switch cfg.Catalog.Cache {
	case config.CacheRedis:
		redisCache, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			b.Close()
			return nil, err
		}
		b.redis = redisCache
		b.cache = redisCache
	default:
		b.mem = cache.NewMemoryCache(logrus.WithField("component", "cache"))
		b.cache = b.mem
	}

	return b, nil
}

// Maintain purges expired in-process cache entries until ctx is done.
func (b *catalogBackend) Maintain(ctx context.Context, every time.Duration) {
	if b.mem == nil || every <= 0 {
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.mem.Purge()
		}
	}
}

func (b *catalogBackend) Close() {
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			logrus.WithError(err).Warn("Error closing redis connection")
		}
	}
	if b.db != nil {
		database.Close(b.db)
	}
}
