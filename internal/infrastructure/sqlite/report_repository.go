package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almoxarifado-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el dashboard y los reportes.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

func (r *ReportRepo) CountActiveProducts(ctx context.Context) (int, error) {
	return r.count(ctx, "report.CountActiveProducts", `SELECT COUNT(*) FROM products WHERE active = 1`)
}

func (r *ReportRepo) CountLowStockProducts(ctx context.Context) (int, error) {
	return r.count(ctx, "report.CountLowStockProducts",
		`SELECT COUNT(*) FROM products WHERE active = 1 AND current_quantity <= minimum_quantity`)
}

func (r *ReportRepo) CountMovementsSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, "report.CountMovementsSince", `SELECT COUNT(*) FROM movements WHERE created_at >= ?`, toMillis(since))
}

func (r *ReportRepo) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// StockValue suma current_quantity * unit_price en Go: unit_price es TEXT y SQLite no tiene tipo decimal.
func (r *ReportRepo) StockValue(ctx context.Context) (decimal.Decimal, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT current_quantity, unit_price FROM products WHERE active = 1`)
	if err != nil {
		return decimal.Zero, fmt.Errorf("report.StockValue: %w", err)
	}
	defer rows.Close()
	total := decimal.Zero
	for rows.Next() {
		var qty int64
		var price decimal.Decimal
		if err := rows.Scan(&qty, &price); err != nil {
			return decimal.Zero, fmt.Errorf("report.StockValue scan: %w", err)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(qty)))
	}
	return total, rows.Err()
}

func (r *ReportRepo) TopMovedProducts(ctx context.Context, limit int) ([]repository.MovedProduct, error) {
	const query = `
	SELECT p.id, p.code, p.name, COUNT(m.id) AS movement_count
	FROM movements m
	JOIN products  p ON p.id = m.product_id
	GROUP BY p.id, p.code, p.name
	ORDER BY movement_count DESC, p.name
	LIMIT ?`
	rows, err := r.q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("report.TopMovedProducts: %w", err)
	}
	defer rows.Close()
	results := make([]repository.MovedProduct, 0, limit)
	for rows.Next() {
		var row repository.MovedProduct
		if err := rows.Scan(&row.ProductID, &row.Code, &row.Name, &row.MovementCount); err != nil {
			return nil, fmt.Errorf("report.TopMovedProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountMovementsByKind cuenta por tipo los movimientos que cumplen el mismo filtro del listado.
func (r *ReportRepo) CountMovementsByKind(ctx context.Context, f repository.MovementFilter) (map[string]int, error) {
	w := movementWhere(f)
	rows, err := r.q.QueryContext(ctx,
		`SELECT m.kind, COUNT(*) FROM movements m JOIN products p ON p.id = m.product_id`+w.sql()+` GROUP BY m.kind`,
		w.args...)
	if err != nil {
		return nil, fmt.Errorf("report.CountMovementsByKind: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int, 3)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("report.CountMovementsByKind scan: %w", err)
		}
		out[kind] = n
	}
	return out, rows.Err()
}
