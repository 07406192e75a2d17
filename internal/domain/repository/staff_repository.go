package repository

import (
	"context"

	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
)

// StaffRepository define el puerto de persistencia para funcionarios.
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.StaffMember) error
	GetByID(ctx context.Context, id string) (*entity.StaffMember, error)
	GetByEmail(ctx context.Context, email string) (*entity.StaffMember, error)
	Update(ctx context.Context, staff *entity.StaffMember) error
	// List filtra por nombre, email o teléfono; limit <= 0 devuelve todos.
	List(ctx context.Context, query string, limit, offset int) ([]*entity.StaffMember, int, error)
	Delete(ctx context.Context, id string) error
}
