package repository

import (
	"context"

	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
)

// InstitutionRepository define el puerto de persistencia para Institution (DIP).
type InstitutionRepository interface {
	Create(ctx context.Context, inst *entity.Institution) error
	GetByID(ctx context.Context, id string) (*entity.Institution, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*entity.Institution, error)
	Update(ctx context.Context, inst *entity.Institution) error
	// List filtra por nombre o CNPJ; limit <= 0 devuelve todas.
	List(ctx context.Context, query string, limit, offset int) ([]*entity.Institution, int, error)
	// Delete elimina la institución junto con sus funcionarios y productos.
	Delete(ctx context.Context, id string) error
}
