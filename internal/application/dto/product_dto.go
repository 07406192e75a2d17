package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. La cantidad inicial es 0: el stock entra vía movimientos.
type CreateProductRequest struct {
	InstitutionID   string          `json:"institution_id"`
	CategoryID      string          `json:"category_id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	MinimumQuantity int64           `json:"minimum_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// UpdateProductRequest entrada para actualizar un producto (sin cantidad actual).
type UpdateProductRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	CategoryID      *string          `json:"category_id"`
	MinimumQuantity *int64           `json:"minimum_quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
}

// ProductListRequest filtros de listado (query string).
type ProductListRequest struct {
	PageRequest
	Query         string `query:"q"`
	CategoryID    string `query:"category_id"`
	InstitutionID string `query:"institution_id"`
	LowStockOnly  bool   `query:"low_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string          `json:"id"`
	InstitutionID   string          `json:"institution_id"`
	CategoryID      string          `json:"category_id,omitempty"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	MinimumQuantity int64           `json:"minimum_quantity"`
	CurrentQuantity int64           `json:"current_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	StockValue      decimal.Decimal `json:"stock_value"`
	LowStock        bool            `json:"low_stock"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
