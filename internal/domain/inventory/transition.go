// Package inventory contiene la regla de transición de stock (servicio de dominio puro).
package inventory

import (
	"math"

	"github.com/jhoicas/almoxarifado-api/internal/domain"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
)

// NextQuantity calcula la nueva cantidad de un producto tras aplicar un movimiento.
//
//	receipt:    current + quantity
//	withdrawal: current - quantity, solo si current >= quantity
//	adjustment: quantity (valor absoluto)
//
// Devuelve *domain.InsufficientStockError (sin ProductID) si la salida excede el stock,
// y domain.ErrInvalidInput para tipos desconocidos o cantidades fuera de rango.
func NextQuantity(current int64, kind string, quantity int64) (int64, error) {
	switch kind {
	case entity.MovementKindReceipt:
		if quantity <= 0 {
			return current, domain.ErrInvalidInput
		}
		if quantity > math.MaxInt64-current {
			v := domain.NewValidationError()
			v.Add("quantity", "la entrada excede la cantidad máxima admitida")
			return current, v
		}
		return current + quantity, nil
	case entity.MovementKindWithdrawal:
		if quantity <= 0 {
			return current, domain.ErrInvalidInput
		}
		if current < quantity {
			return current, &domain.InsufficientStockError{Available: current, Requested: quantity}
		}
		return current - quantity, nil
	case entity.MovementKindAdjustment:
		// Ajuste define el valor; negativo violaría el invariante de stock >= 0.
		if quantity < 0 {
			return current, domain.ErrInvalidInput
		}
		return quantity, nil
	}
	return current, domain.ErrInvalidInput
}
