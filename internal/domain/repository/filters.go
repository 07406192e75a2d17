package repository

import "time"

// ProductFilter criterios para listar productos.
type ProductFilter struct {
	Query           string // busca en nombre o código (insensible a mayúsculas y acentos)
	InstitutionID   string
	CategoryID      string
	LowStockOnly    bool
	IncludeInactive bool
}

// MovementFilter criterios para listar movimientos.
type MovementFilter struct {
	Query     string // busca en nombre/código del producto o en el motivo
	Kind      string
	ProductID string
	From      *time.Time
	To        *time.Time
}
