package inventory

import (
	"context"

	"github.com/jhoicas/almoxarifado-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza atomicidad para el motor de movimientos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error
}

// Actor es el usuario autenticado que ejecuta la operación, resuelto por la capa HTTP a partir del JWT.
type Actor struct {
	UserID  string
	StaffID string // funcionario vinculado; vacío si no hay
	Role    string
}
