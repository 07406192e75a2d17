// Package sqlite implementa los repositorios sobre SQLite embebido (modernc.org/sqlite, sin cgo).
// Se usa en desarrollo, en el seed local y en los tests de integración.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/migrate"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store es el handle SQLite compartido por los repositorios.
//
// Se abre con una sola conexión y transacciones BEGIN IMMEDIATE: toda transacción toma el lock
// de escritura al comenzar, por lo que dos movimientos sobre el mismo producto nunca se intercalan.
type Store struct {
	db *sql.DB
}

// Open abre (o crea) la base en path y aplica las migraciones embebidas.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite: path requerido")
	}
	dsn := filepath.Clean(path) +
		"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close cierra el handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB expone el *sql.DB (pool de una conexión).
func (s *Store) DB() *sql.DB {
	return s.db
}

func applyMigrations(db *sql.DB) error {
	files, err := migrate.Files(migrations.FS)
	if err != nil {
		return err
	}
	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (name TEXT PRIMARY KEY, applied_at INTEGER NOT NULL)`, migrate.Table)
	if _, err := db.Exec(createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}
	for _, f := range files {
		var found int
		err := db.QueryRow(`SELECT 1 FROM `+migrate.Table+` WHERE name = ?`, f.Name).Scan(&found)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check migration %s: %w", f.Name, err)
		}
		tx, err := db.BeginTx(context.Background(), nil)
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", f.Name, err)
		}
		if _, err := tx.Exec(f.Up); err != nil && !migrate.IsAlreadyExists(err) {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", f.Name, err)
		}
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO `+migrate.Table+` (name, applied_at) VALUES (?, ?)`,
			f.Name, toMillis(time.Now()),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", f.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", f.Name, err)
		}
	}
	return nil
}

// Querier es la superficie común de *sql.DB y *sql.Tx usada por los repositorios.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner es la superficie común de *sql.Row y *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	return hasCode(err, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY) ||
		strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return hasCode(err, sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY) ||
		strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}

func hasCode(err error, codes ...int) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	for _, c := range codes {
		if sqliteErr.Code() == c {
			return true
		}
	}
	return false
}

// limitClause devuelve LIMIT/OFFSET; limit <= 0 significa sin límite (LIMIT -1 en SQLite).
func limitClause(limit, offset int) (string, []any) {
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}
	return " LIMIT ? OFFSET ?", []any{limit, offset}
}

// whereBuilder arma cláusulas WHERE con placeholders "?".
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
