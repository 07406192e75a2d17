package entity

import "time"

// Category agrupa productos para filtrado y reportes.
type Category struct {
	ID          string
	Name        string // único
	Description string
	Active      bool
	CreatedAt   time.Time
}
