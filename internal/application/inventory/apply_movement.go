package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almoxarifado-api/internal/domain"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
	"github.com/jhoicas/almoxarifado-api/internal/domain/inventory"
	"github.com/jhoicas/almoxarifado-api/internal/domain/repository"
	"github.com/jhoicas/almoxarifado-api/pkg/logger"
)

// ApplyMovementInput entrada para aplicar un movimiento de stock.
// En adjustment, Quantity es el valor final del stock.
type ApplyMovementInput struct {
	ProductID string
	Kind      string
	Quantity  int64
	Reason    string
	Notes     string
}

// ApplyMovementUseCase aplica entradas, salidas y ajustes sobre la cantidad de un producto.
// Actualizar el producto y registrar el movimiento ocurren en la misma transacción,
// con la fila del producto bloqueada (GetForUpdate) para serializar salidas concurrentes.
type ApplyMovementUseCase struct {
	txRunner  TxRunner
	staffRepo repository.StaffRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewApplyMovementUseCase construye el caso de uso. staffRepo puede ser nil (no se valida el funcionario).
func NewApplyMovementUseCase(txRunner TxRunner, staffRepo repository.StaffRepository, log *logger.Logger) *ApplyMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ApplyMovementUseCase{
		txRunner:  txRunner,
		staffRepo: staffRepo,
		log:       log.Component("inventory"),
		now:       time.Now,
	}
}

// Receive registra una entrada de quantity unidades.
func (uc *ApplyMovementUseCase) Receive(ctx context.Context, actor Actor, productID string, quantity int64, reason, notes string) (*entity.Movement, error) {
	return uc.Apply(ctx, actor, ApplyMovementInput{
		ProductID: productID, Kind: entity.MovementKindReceipt, Quantity: quantity, Reason: reason, Notes: notes,
	})
}

// Withdraw registra una salida; falla con *domain.InsufficientStockError si no hay stock suficiente.
func (uc *ApplyMovementUseCase) Withdraw(ctx context.Context, actor Actor, productID string, quantity int64, reason, notes string) (*entity.Movement, error) {
	return uc.Apply(ctx, actor, ApplyMovementInput{
		ProductID: productID, Kind: entity.MovementKindWithdrawal, Quantity: quantity, Reason: reason, Notes: notes,
	})
}

// Adjust fija el stock en target. Solo administradores.
func (uc *ApplyMovementUseCase) Adjust(ctx context.Context, actor Actor, productID string, target int64, reason, notes string) (*entity.Movement, error) {
	return uc.Apply(ctx, actor, ApplyMovementInput{
		ProductID: productID, Kind: entity.MovementKindAdjustment, Quantity: target, Reason: reason, Notes: notes,
	})
}

// Apply valida la entrada, abre una transacción, bloquea el producto, calcula la nueva cantidad,
// actualiza el producto y crea el movimiento. Cualquier error hace Rollback y no persiste nada.
//
// Errores: domain.ValidationError (ErrInvalidInput), domain.ErrForbidden (ajuste sin rol admin),
// domain.ErrNotFound (producto inexistente o inactivo), *domain.InsufficientStockError.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, actor Actor, in ApplyMovementInput) (*entity.Movement, error) {
	in.ProductID = strings.TrimSpace(in.ProductID)
	in.Reason = strings.TrimSpace(in.Reason)
	in.Notes = strings.TrimSpace(in.Notes)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Kind == entity.MovementKindAdjustment && actor.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	staffID, err := uc.resolveStaff(ctx, actor)
	if err != nil {
		return nil, err
	}
	movement := &entity.Movement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Kind:      in.Kind,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Notes:     in.Notes,
		StaffID:   staffID,
		CreatedBy: actor.UserID,
		CreatedAt: uc.now().UTC(),
	}

	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return fmt.Errorf("bloquear producto: %w", err)
		}
		if product == nil || !product.Active {
			return domain.ErrNotFound
		}

		next, err := inventory.NextQuantity(product.CurrentQuantity, in.Kind, in.Quantity)
		if err != nil {
			var stockErr *domain.InsufficientStockError
			if errors.As(err, &stockErr) {
				stockErr.ProductID = product.ID
			}
			return err
		}

		movement.PreviousQuantity = product.CurrentQuantity
		movement.NewQuantity = next

		// El producto se actualiza antes de insertar el movimiento, dentro de la misma tx.
		if err := productRepo.UpdateQuantity(ctx, product.ID, next); err != nil {
			return fmt.Errorf("actualizar cantidad: %w", err)
		}
		if err := movementRepo.Create(ctx, movement); err != nil {
			return fmt.Errorf("registrar movimiento: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			var stockErr *domain.InsufficientStockError
			if errors.As(err, &stockErr) {
				uc.log.Warn().
					Str("product_id", stockErr.ProductID).
					Int64("available", stockErr.Available).
					Int64("requested", stockErr.Requested).
					Str("user_id", actor.UserID).
					Msg("salida rechazada por stock insuficiente")
			}
		}
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", movement.ID).
		Str("product_id", movement.ProductID).
		Str("kind", movement.Kind).
		Int64("quantity", movement.Quantity).
		Int64("previous", movement.PreviousQuantity).
		Int64("new", movement.NewQuantity).
		Str("user_id", actor.UserID).
		Msg("movimiento aplicado")
	return movement, nil
}

func validateInput(in ApplyMovementInput) error {
	v := domain.NewValidationError()
	if in.ProductID == "" {
		v.Add("product_id", "el producto es obligatorio")
	}
	switch in.Kind {
	case entity.MovementKindReceipt, entity.MovementKindWithdrawal:
		if in.Quantity <= 0 {
			v.Add("quantity", "la cantidad debe ser mayor que cero")
		}
	case entity.MovementKindAdjustment:
		if in.Quantity < 0 {
			v.Add("quantity", "la cantidad del ajuste no puede ser negativa")
		}
	default:
		v.Add("kind", "tipo inválido (receipt, withdrawal, adjustment)")
	}
	if in.Reason == "" {
		v.Add("reason", "el motivo es obligatorio")
	}
	return v.OrNil()
}

// resolveStaff devuelve el funcionario del actor si todavía existe; si fue eliminado el
// movimiento se registra sin funcionario. Los errores de lectura se propagan.
func (uc *ApplyMovementUseCase) resolveStaff(ctx context.Context, actor Actor) (string, error) {
	if actor.StaffID == "" || uc.staffRepo == nil {
		return actor.StaffID, nil
	}
	staff, err := uc.staffRepo.GetByID(ctx, actor.StaffID)
	if err != nil {
		return "", fmt.Errorf("buscar funcionario: %w", err)
	}
	if staff == nil {
		uc.log.Warn().Str("staff_id", actor.StaffID).Str("user_id", actor.UserID).
			Msg("funcionario del usuario no encontrado; movimiento sin funcionario")
		return "", nil
	}
	return staff.ID, nil
}
