package entity

import "time"

// Institution representa una institución/empresa dueña de un almacén de productos.
type Institution struct {
	ID        string
	Name      string
	CEP       string
	Street    string
	Number    string
	District  string
	City      string
	State     string // UF de dos letras
	Phone     string
	CNPJ      string // único
	Active    bool
	CreatedAt time.Time
}
