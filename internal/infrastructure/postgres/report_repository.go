package postgres

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

// CountActiveProducts cuenta productos activos.
func (r *ReportRepo) CountActiveProducts(ctx context.Context) (int, error) {
	return r.count(ctx, "report.CountActiveProducts", `SELECT COUNT(*) FROM products WHERE active`)
}

// CountLowStockProducts cuenta productos activos con current_quantity <= minimum_quantity.
func (r *ReportRepo) CountLowStockProducts(ctx context.Context) (int, error) {
	return r.count(ctx, "report.CountLowStockProducts",
		`SELECT COUNT(*) FROM products WHERE active AND current_quantity <= minimum_quantity`)
}

// CountMovementsSince cuenta movimientos creados desde since (inclusive).
func (r *ReportRepo) CountMovementsSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, "report.CountMovementsSince", `SELECT COUNT(*) FROM movements WHERE created_at >= $1`, since)
}

func (r *ReportRepo) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// StockValue suma current_quantity * unit_price de los productos activos.
func (r *ReportRepo) StockValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(current_quantity * unit_price), 0) FROM products WHERE active`,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("report.StockValue: %w", err)
	}
	return total, nil
}

// TopMovedProducts devuelve los productos con más movimientos.
func (r *ReportRepo) TopMovedProducts(ctx context.Context, limit int) ([]repository.MovedProduct, error) {
	const query = `
	SELECT p.id, p.code, p.name, COUNT(m.id) AS movement_count
	FROM movements m
	JOIN products  p ON p.id = m.product_id
	GROUP BY p.id, p.code, p.name
	ORDER BY movement_count DESC, p.name
	LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
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
	rows, err := r.q.Query(ctx,
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
