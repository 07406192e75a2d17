package dto

import "time"

// StaffRequest entrada para crear o actualizar un funcionario. BirthDate en formato YYYY-MM-DD.
type StaffRequest struct {
	Name          string `json:"name"`
	BirthDate     string `json:"birth_date"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	InstitutionID string `json:"institution_id"`
	Active        *bool  `json:"active,omitempty"`
}

// StaffResponse salida de un funcionario.
type StaffResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	BirthDate     string    `json:"birth_date"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	InstitutionID string    `json:"institution_id"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// StaffListResponse lista paginada de funcionarios.
type StaffListResponse struct {
	Items []StaffResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
