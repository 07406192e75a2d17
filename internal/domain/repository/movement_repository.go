package repository

import (
	"context"

	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos. Sin Update ni Delete:
// los movimientos son inmutables.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.MovementView, error)
	// List ordena por fecha descendente; limit <= 0 devuelve todos.
	List(ctx context.Context, filter MovementFilter, limit, offset int) ([]*entity.MovementView, int, error)
}
