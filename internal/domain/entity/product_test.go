package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
)

func TestProduct_IsLowStock_LimiteInclusivo(t *testing.T) {
	p := &entity.Product{MinimumQuantity: 10}

	p.CurrentQuantity = 11
	assert.False(t, p.IsLowStock(), "por encima del mínimo no es stock bajo")

	p.CurrentQuantity = 10
	assert.True(t, p.IsLowStock(), "igual al mínimo es stock bajo")

	p.CurrentQuantity = 0
	assert.True(t, p.IsLowStock())
}

func TestProduct_IsLowStock_MinimoCero(t *testing.T) {
	p := &entity.Product{MinimumQuantity: 0, CurrentQuantity: 0}
	assert.True(t, p.IsLowStock(), "0 <= 0 cuenta como stock bajo")
}

func TestProduct_StockValue(t *testing.T) {
	p := &entity.Product{CurrentQuantity: 3, UnitPrice: decimal.RequireFromString("12.50")}
	assert.True(t, decimal.RequireFromString("37.50").Equal(p.StockValue()))
}

func TestValidMovementKind(t *testing.T) {
	assert.True(t, entity.ValidMovementKind(entity.MovementKindReceipt))
	assert.True(t, entity.ValidMovementKind(entity.MovementKindWithdrawal))
	assert.True(t, entity.ValidMovementKind(entity.MovementKindAdjustment))
	assert.False(t, entity.ValidMovementKind("transfer"))
	assert.False(t, entity.ValidMovementKind(""))
}
