package inventory_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almoxarifado-api/internal/domain"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
	"github.com/jhoicas/almoxarifado-api/internal/domain/inventory"
)

func TestNextQuantity(t *testing.T) {
	cases := []struct {
		name     string
		current  int64
		kind     string
		quantity int64
		want     int64
		wantErr  error
	}{
		{"entrada suma", 10, entity.MovementKindReceipt, 5, 15, nil},
		{"entrada desde cero", 0, entity.MovementKindReceipt, 1, 1, nil},
		{"salida resta", 45, entity.MovementKindWithdrawal, 20, 25, nil},
		{"salida exacta deja cero", 45, entity.MovementKindWithdrawal, 45, 0, nil},
		{"salida mayor al stock", 45, entity.MovementKindWithdrawal, 50, 45, domain.ErrInsufficientStock},
		{"ajuste fija valor", 45, entity.MovementKindAdjustment, 7, 7, nil},
		{"ajuste a cero", 45, entity.MovementKindAdjustment, 0, 0, nil},
		{"ajuste mayor al actual", 3, entity.MovementKindAdjustment, 300, 300, nil},
		{"entrada cero inválida", 10, entity.MovementKindReceipt, 0, 10, domain.ErrInvalidInput},
		{"salida negativa inválida", 10, entity.MovementKindWithdrawal, -1, 10, domain.ErrInvalidInput},
		{"ajuste negativo inválido", 10, entity.MovementKindAdjustment, -5, 10, domain.ErrInvalidInput},
		{"tipo desconocido", 10, "transfer", 5, 10, domain.ErrInvalidInput},
		{"entrada que desborda", 1, entity.MovementKindReceipt, math.MaxInt64, 1, domain.ErrInvalidInput},
		{"entrada hasta el máximo", 1, entity.MovementKindReceipt, math.MaxInt64 - 1, math.MaxInt64, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := inventory.NextQuantity(tc.current, tc.kind, tc.quantity)
			assert.Equal(t, tc.want, got)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tc.wantErr), "error esperado %v, obtenido %v", tc.wantErr, err)
		})
	}
}

func TestNextQuantity_SalidaInsuficienteInformaDisponible(t *testing.T) {
	_, err := inventory.NextQuantity(45, entity.MovementKindWithdrawal, 50)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(45), stockErr.Available)
	assert.Equal(t, int64(50), stockErr.Requested)
}
