package repository

import (
	"context"

	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context, includeInactive bool) ([]*entity.Category, error)
	// Delete elimina la categoría; los productos quedan sin categoría.
	Delete(ctx context.Context, id string) error
}
