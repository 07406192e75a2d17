package dto

import "time"

// InstitutionRequest entrada para crear o actualizar una institución.
type InstitutionRequest struct {
	Name     string `json:"name"`
	CEP      string `json:"cep"`
	Street   string `json:"street"`
	Number   string `json:"number"`
	District string `json:"district"`
	City     string `json:"city"`
	State    string `json:"state"`
	Phone    string `json:"phone"`
	CNPJ     string `json:"cnpj"`
	Active   *bool  `json:"active,omitempty"`
}

// InstitutionResponse salida de una institución.
type InstitutionResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CEP       string    `json:"cep"`
	Street    string    `json:"street"`
	Number    string    `json:"number"`
	District  string    `json:"district"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Phone     string    `json:"phone"`
	CNPJ      string    `json:"cnpj"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// InstitutionListResponse lista paginada de instituciones.
type InstitutionListResponse struct {
	Items []InstitutionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
