package entity

import "time"

// StaffMember representa un funcionario vinculado a una institución.
type StaffMember struct {
	ID            string
	Name          string
	BirthDate     time.Time
	Email         string // único
	Phone         string
	InstitutionID string
	Active        bool
	CreatedAt     time.Time
}
