// README: Wires config into the plan store, image lookup, text generator and services.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"wanderlust/internal/ai"
	"wanderlust/internal/config"
	"wanderlust/internal/imagery"
	"wanderlust/internal/infra"
	"wanderlust/internal/modules/plan"
	"wanderlust/internal/service"
	"wanderlust/migrations"
)

type App struct {
	Pipeline *service.Pipeline
	Catalog  *service.Catalog
	// Photos is set only for the Places image provider.
	Photos *imagery.PlacesLookup

	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	a := &App{}
	ok := false
	defer func() {
		if !ok {
			_ = a.Close()
		}
	}()

	plans, err := a.openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	images, err := a.openImages(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	llm, closeLLM, err := ai.NewTextGenerator(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeLLM)

	a.Pipeline = service.NewPipeline(service.PipelineDeps{
		LLM:              llm,
		Images:           images,
		Plans:            plans,
		Logger:           logger,
		FallbackImageURL: cfg.Images.FallbackURL,
	})
	a.Catalog = service.NewCatalog(plans, logger)
	ok = true
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (plan.Repository, error) {
	switch cfg.Store {
	case config.StoreMongo:
		client, err := infra.NewMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { return client.Disconnect(context.Background()) })

		store := plan.NewMongoStore(client.Database(cfg.Mongo.Database))
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		logger.Info("plan store ready", zap.String("store", cfg.Store), zap.String("database", cfg.Mongo.Database))
		return store, nil
	default:
		db, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { db.Close(); return nil })

		if cfg.DB.AutoMigrate {
			if err := infra.Migrate(ctx, db, migrations.FS); err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		logger.Info("plan store ready", zap.String("store", cfg.Store), zap.Bool("auto_migrate", cfg.DB.AutoMigrate))
		return plan.NewStore(db), nil
	}
}

func (a *App) openImages(ctx context.Context, cfg config.Config, logger *zap.Logger) (imagery.Lookup, error) {
	var lookup imagery.Lookup
	switch cfg.Images.Provider {
	case config.ImagesNone:
		return imagery.Disabled{}, nil
	case config.ImagesPlaces:
		places, err := imagery.NewPlacesLookup(cfg.Images.MapsKey, cfg.HTTP.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		a.Photos = places
		lookup = places
	default:
		lookup = imagery.NewUnsplashLookup(cfg.Images.UnsplashKey)
	}

	var cache imagery.Cache
	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		cache = imagery.NewRedisCache(rdb)
	} else {
		cache = imagery.NewMemoryCache(cfg.Images.CacheTTL)
	}
	logger.Info("image lookup ready", zap.String("provider", cfg.Images.Provider), zap.Bool("redis_cache", cfg.Redis.Addr != ""))
	return imagery.NewCachedLookup(lookup, cache, cfg.Images.CacheTTL, logger), nil
}
