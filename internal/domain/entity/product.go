package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un ítem almacenado por una institución.
// CurrentQuantity solo cambia vía movimientos y nunca es negativa.
type Product struct {
	ID              string
	InstitutionID   string
	CategoryID      string // vacío si no tiene categoría
	Code            string // único por institución
	Name            string
	Description     string
	MinimumQuantity int64
	CurrentQuantity int64
	UnitPrice       decimal.Decimal
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsLowStock indica si la cantidad actual está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.CurrentQuantity <= p.MinimumQuantity
}

// StockValue devuelve CurrentQuantity * UnitPrice.
func (p *Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(p.CurrentQuantity))
}
