// Package app is the composition root shared by the HTTP server and the CLI:
// it opens the configured backend and wires stores, cache and services.
package app

import (
	"context"
	"errors"
	"fmt"

	"catalogo/internal/cache"
	"catalogo/internal/config"
	"catalogo/internal/infra"
	"catalogo/internal/repository"
	"catalogo/internal/service"
	"catalogo/internal/validacion"

	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// App holds the wired services and the resources they depend on.
type App struct {
	Productos service.ProductoService
	Codigos   service.CodigoBarrasService
	Catalogo  service.CatalogoService

	// Cache is nil when REDIS_URL is empty.
	Cache *cache.CodigoCache
	// Limites backs the HTTP rate limiter: Redis when configured, else memory.
	Limites limiter.Store

	db      pinger
	closers []func() error
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// New opens the database selected by cfg.DBDriver and, if configured, Redis.
// ctx bounds the startup pings.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	txp, productos, codigos, err := a.abrirBackend(cfg)
	if err != nil {
		return nil, err
	}

	var cc service.CodigoCache
	if cfg.RedisURL != "" {
		rdb, err := infra.NewRedis(ctx, cfg.RedisURL, cfg.RedisPingTimeout)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.closers = append(a.closers, rdb.Close)
		a.Cache = cache.NewCodigoCache(rdb, cfg.CacheTTL())
		cc = a.Cache

		a.Limites, err = sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{
			Prefix:   "catalogo:limite",
			MaxRetry: 3,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("redis rate limit store: %w", err)
		}
	} else {
		a.Limites = memory.NewStore()
	}

	a.wire(txp, productos, codigos, cc)
	return a, nil
}

func (a *App) abrirBackend(cfg *config.Config) (repository.TxProvider, repository.ProductoStore, repository.CodigoBarrasStore, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, nil, err
		}
		a.db = sqlDB
		a.closers = append(a.closers, sqlDB.Close)
		return repository.NewGormTxProvider(db), repository.NewGormProductoStore(), repository.NewGormCodigoBarrasStore(), nil
	case "sqlite":
		db, err := infra.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("sqlite: %w", err)
		}
		a.db = db
		a.closers = append(a.closers, db.Close)
		return repository.NewSQLiteTxProvider(db), repository.NewSQLiteProductoStore(), repository.NewSQLiteCodigoBarrasStore(), nil
	default:
		return nil, nil, nil, fmt.Errorf("driver %q no soportado", cfg.DBDriver)
	}
}

func (a *App) wire(txp repository.TxProvider, productos repository.ProductoStore, codigos repository.CodigoBarrasStore, cc service.CodigoCache) {
	v := validacion.NewValidador(nil)
	a.Productos = service.NewProductoService(txp, productos)
	a.Codigos = service.NewCodigoBarrasService(txp, productos, codigos, v, cc)
	a.Catalogo = service.NewCatalogoService(txp, productos, codigos, v, cc)
}

// PingContext checks database connectivity.
func (a *App) PingContext(ctx context.Context) error { return a.db.PingContext(ctx) }

// Close releases every resource opened by New, in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if err := errors.Join(errs...); err != nil {
		log.Warn().Err(err).Msg("app: cierre con errores")
		return err
	}
	return nil
}
