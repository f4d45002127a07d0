// Package storage arma los repositorios según STORE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/smartsales-api/internal/domain/repository"
	"github.com/jhoicas/smartsales-api/internal/infrastructure/memory"
	"github.com/jhoicas/smartsales-api/internal/infrastructure/postgres"
	"github.com/jhoicas/smartsales-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/smartsales-api/pkg/config"
	"github.com/jhoicas/smartsales-api/pkg/logger"
)

// Stores repositorios y runner transaccional de un mismo backend.
type Stores struct {
	Driver   string
	TxRunner repository.TxRunner
	Products repository.ProductRepository
	Sales    repository.SalesRepository
	close    func()
}

// Close libera conexiones. Es seguro llamarlo más de una vez.
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
		s.close = nil
	}
}

// Open abre el backend configurado. Postgres aplica las migraciones al arrancar.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Stores, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory, "":
		store := memory.NewStore()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &Stores{
			Driver:   config.DriverMemory,
			TxRunner: store,
			Products: store.Products(),
			Sales:    store.Sales(),
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.Store.SQLitePath).Msg("almacenamiento SQLite listo")
		return &Stores{
			Driver:   config.DriverSQLite,
			TxRunner: sqlite.NewTxRunner(db),
			Products: sqlite.NewProductRepository(db),
			Sales:    sqlite.NewSalesRepository(db),
			close:    func() { _ = db.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Str("db", cfg.DB.DBName).Msg("almacenamiento PostgreSQL listo")
		return &Stores{
			Driver:   config.DriverPostgres,
			TxRunner: postgres.NewTxRunner(pool),
			Products: postgres.NewProductRepository(pool),
			Sales:    postgres.NewSalesRepository(pool),
			close:    pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Store.Driver)
	}
}
