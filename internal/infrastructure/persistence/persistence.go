// Package persistence selecciona el backend de base de datos (PostgreSQL o SQLite) según la configuración
// y expone los repositorios como puertos del dominio.
package persistence

import (
	"context"
	"fmt"

	"github.com/jhoicas/almoxarifado-api/internal/application/inventory"
	"github.com/jhoicas/almoxarifado-api/internal/domain/repository"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/almoxarifado-api/pkg/config"
	"github.com/jhoicas/almoxarifado-api/pkg/logger"
)

// Repositories agrupa los adaptadores de persistencia de un backend.
type Repositories struct {
	Driver       string
	Institutions repository.InstitutionRepository
	Staff        repository.StaffRepository
	Categories   repository.CategoryRepository
	Products     repository.ProductRepository
	Movements    repository.MovementRepository
	Users        repository.UserRepository
	Reports      repository.ReportRepository
	TxRunner     inventory.TxRunner

	close func()
}

// Close libera el pool o el handle SQLite.
func (r *Repositories) Close() {
	if r != nil && r.close != nil {
		r.close()
	}
}

// Open conecta al backend configurado y aplica las migraciones embebidas.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Repositories, error) {
	if log == nil {
		log = logger.Nop()
	}
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		log.Info().Str("driver", cfg.Driver).Str("path", cfg.SQLitePath).Msg("base de datos lista")
		db := store.DB()
		return &Repositories{
			Driver:       cfg.Driver,
			Institutions: sqlite.NewInstitutionRepository(db),
			Staff:        sqlite.NewStaffRepository(db),
			Categories:   sqlite.NewCategoryRepository(db),
			Products:     sqlite.NewProductRepository(db),
			Movements:    sqlite.NewMovementRepository(db),
			Users:        sqlite.NewUserRepository(db),
			Reports:      sqlite.NewReportRepository(db),
			TxRunner:     sqlite.NewTxRunner(store),
			close:        func() { _ = store.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones PostgreSQL: %w", err)
		}
		log.Info().Str("driver", cfg.Driver).Int("max_conns", cfg.MaxConns).Msg("base de datos lista")
		return &Repositories{
			Driver:       cfg.Driver,
			Institutions: postgres.NewInstitutionRepository(pool),
			Staff:        postgres.NewStaffRepository(pool),
			Categories:   postgres.NewCategoryRepository(pool),
			Products:     postgres.NewProductRepository(pool),
			Movements:    postgres.NewMovementRepository(pool),
			Users:        postgres.NewUserRepository(pool),
			Reports:      postgres.NewReportRepository(pool),
			TxRunner:     postgres.NewTxRunner(pool),
			close:        pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("driver de base de datos no soportado: %q", cfg.Driver)
}
