package dto

import "time"

// ApplyMovementRequest body para POST /api/movements.
// kind: receipt | withdrawal | adjustment. En adjustment, quantity es el valor final.
type ApplyMovementRequest struct {
	ProductID string `json:"product_id"`
	Kind      string `json:"kind"`
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes"`
}

// MovementListRequest filtros de listado (query string). From/To en RFC3339 o YYYY-MM-DD.
type MovementListRequest struct {
	PageRequest
	Query     string `query:"q"`
	Kind      string `query:"kind"`
	ProductID string `query:"product_id"`
	From      string `query:"from"`
	To        string `query:"to"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	ProductCode      string    `json:"product_code,omitempty"`
	ProductName      string    `json:"product_name,omitempty"`
	Kind             string    `json:"kind"`
	Quantity         int64     `json:"quantity"`
	PreviousQuantity int64     `json:"previous_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	Reason           string    `json:"reason"`
	Notes            string    `json:"notes"`
	StaffID          string    `json:"staff_id,omitempty"`
	StaffName        string    `json:"staff_name,omitempty"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
