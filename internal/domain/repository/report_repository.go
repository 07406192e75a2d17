package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MovedProduct resultado crudo del ranking de productos más movimentados.
type MovedProduct struct {
	ProductID     string
	Code          string
	Name          string
	MovementCount int
}

// ReportRepository define las consultas de lectura para dashboard y reportes.
// Las implementaciones son read-only.
type ReportRepository interface {
	CountActiveProducts(ctx context.Context) (int, error)
	CountLowStockProducts(ctx context.Context) (int, error)
	CountMovementsSince(ctx context.Context, since time.Time) (int, error)

	// StockValue suma quantity * unit_price de los productos activos.
	StockValue(ctx context.Context) (decimal.Decimal, error)

	// TopMovedProducts devuelve los productos con más movimientos, de mayor a menor.
	TopMovedProducts(ctx context.Context, limit int) ([]MovedProduct, error)

	// CountMovementsByKind cuenta movimientos por tipo aplicando el mismo filtro que MovementRepository.List.
	CountMovementsByKind(ctx context.Context, filter MovementFilter) (map[string]int, error)
}
