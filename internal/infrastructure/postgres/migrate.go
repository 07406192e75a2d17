package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/migrate"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/postgres/migrations"
)

// Migrate aplica las migraciones embebidas que aún no figuran en schema_migrations,
// cada una en su propia transacción.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	files, err := migrate.Files(migrations.FS)
	if err != nil {
		return err
	}
	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (name TEXT PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL)`, migrate.Table)
	if _, err := pool.Exec(ctx, createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, f := range files {
		var applied bool
		if err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM `+migrate.Table+` WHERE name = $1)`, f.Name,
		).Scan(&applied); err != nil {
			return fmt.Errorf("check migration %s: %w", f.Name, err)
		}
		if applied {
			continue
		}
		if err := applyOne(ctx, pool, f); err != nil {
			return err
		}
	}
	return nil
}

func applyOne(ctx context.Context, pool *pgxpool.Pool, f migrate.File) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", f.Name, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Un error aborta la tx en PostgreSQL; el DDL usa IF NOT EXISTS para ser re-ejecutable.
	if _, err := tx.Exec(ctx, f.Up); err != nil {
		return fmt.Errorf("exec migration %s: %w", f.Name, err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO `+migrate.Table+` (name, applied_at) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		f.Name, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("record migration %s: %w", f.Name, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration %s: %w", f.Name, err)
	}
	return nil
}
