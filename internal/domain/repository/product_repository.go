package repository

import (
	"context"

	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByInstitutionAndCode(ctx context.Context, institutionID, code string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea su fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update actualiza datos descriptivos. No modifica CurrentQuantity (se maneja vía movimientos).
	Update(ctx context.Context, product *entity.Product) error
	// UpdateQuantity actualiza solo la cantidad actual (usado por el motor de movimientos).
	UpdateQuantity(ctx context.Context, productID string, quantity int64) error
	// List devuelve la página y el total; limit <= 0 devuelve todos.
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, int, error)
}
