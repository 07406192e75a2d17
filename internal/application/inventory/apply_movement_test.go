package inventory_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almoxarifado-api/internal/application/inventory"
	"github.com/jhoicas/almoxarifado-api/internal/domain"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
	"github.com/jhoicas/almoxarifado-api/internal/domain/repository"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/sqlite"
)

var (
	admin    = inventory.Actor{UserID: "u-admin", Role: entity.RoleAdmin}
	operator = inventory.Actor{UserID: "u-op", Role: entity.RoleOperator}
)

type fixture struct {
	store    *sqlite.Store
	uc       *inventory.ApplyMovementUseCase
	products *sqlite.ProductRepo
	moves    *sqlite.MovementRepo
	inst     *entity.Institution
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "inv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	inst := &entity.Institution{ID: uuid.New().String(), Name: "Escola", CNPJ: "11.222.333/0001-81", Active: true, CreatedAt: time.Now()}
	require.NoError(t, sqlite.NewInstitutionRepository(store.DB()).Create(context.Background(), inst))

	return &fixture{
		store:    store,
		uc:       inventory.NewApplyMovementUseCase(sqlite.NewTxRunner(store), sqlite.NewStaffRepository(store.DB()), nil),
		products: sqlite.NewProductRepository(store.DB()),
		moves:    sqlite.NewMovementRepository(store.DB()),
		inst:     inst,
	}
}

func (f *fixture) product(t *testing.T, qty, min int64) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID: uuid.New().String(), InstitutionID: f.inst.ID, Code: uuid.New().String()[:8], Name: "Papel A4",
		MinimumQuantity: min, CurrentQuantity: qty, UnitPrice: decimal.NewFromInt(1), Active: true,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) quantity(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentQuantity
}

func (f *fixture) movementCount(t *testing.T, productID string) int {
	t.Helper()
	_, total, err := f.moves.List(context.Background(), repository.MovementFilter{ProductID: productID}, 0, 0)
	require.NoError(t, err)
	return total
}

func TestApply_EntradaSumaCantidad(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 5, 0)

	m, err := f.uc.Receive(context.Background(), operator, p.ID, 7, "Compra", "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), m.PreviousQuantity)
	assert.Equal(t, int64(12), m.NewQuantity)
	assert.Equal(t, int64(7), m.Quantity)
	assert.Equal(t, int64(12), f.quantity(t, p.ID))

	stored, err := f.moves.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.MovementKindReceipt, stored.Kind)
	assert.Equal(t, "u-op", stored.CreatedBy)
}

func TestApply_SalidaHastaCero_QuedaEnStockBajo(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 45, 10)

	_, err := f.uc.Withdraw(context.Background(), operator, p.ID, 50, "Requisição", "")
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, p.ID, stockErr.ProductID)
	assert.Equal(t, int64(45), stockErr.Available)
	assert.Equal(t, int64(50), stockErr.Requested)
	assert.Equal(t, int64(45), f.quantity(t, p.ID))
	assert.Zero(t, f.movementCount(t, p.ID), "una salida rechazada no registra movimiento")

	_, err = f.uc.Withdraw(context.Background(), operator, p.ID, 45, "Requisição", "")
	require.NoError(t, err)
	got, err := f.products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.CurrentQuantity)
	assert.True(t, got.IsLowStock())
	assert.Equal(t, 1, f.movementCount(t, p.ID))
}

func TestApply_AjusteFijaValor(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 30, 0)

	m, err := f.uc.Adjust(context.Background(), admin, p.ID, 0, "Inventário", "contagem física")
	require.NoError(t, err)
	assert.Equal(t, int64(30), m.PreviousQuantity)
	assert.Equal(t, int64(0), f.quantity(t, p.ID))

	_, err = f.uc.Adjust(context.Background(), admin, p.ID, 8, "Inventário", "")
	require.NoError(t, err)
	assert.Equal(t, int64(8), f.quantity(t, p.ID))
}

func TestApply_AjusteRequiereAdmin(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 30, 0)

	_, err := f.uc.Adjust(context.Background(), operator, p.ID, 1, "Inventário", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, int64(30), f.quantity(t, p.ID))
}

func TestApply_Validaciones(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 1, 0)
	ctx := context.Background()

	cases := []struct {
		name  string
		in    inventory.ApplyMovementInput
		field string
	}{
		{"cantidad cero", inventory.ApplyMovementInput{ProductID: p.ID, Kind: entity.MovementKindReceipt, Quantity: 0, Reason: "x"}, "quantity"},
		{"salida negativa", inventory.ApplyMovementInput{ProductID: p.ID, Kind: entity.MovementKindWithdrawal, Quantity: -1, Reason: "x"}, "quantity"},
		{"ajuste negativo", inventory.ApplyMovementInput{ProductID: p.ID, Kind: entity.MovementKindAdjustment, Quantity: -1, Reason: "x"}, "quantity"},
		{"tipo desconocido", inventory.ApplyMovementInput{ProductID: p.ID, Kind: "transfer", Quantity: 1, Reason: "x"}, "kind"},
		{"sin motivo", inventory.ApplyMovementInput{ProductID: p.ID, Kind: entity.MovementKindReceipt, Quantity: 1, Reason: "  "}, "reason"},
		{"sin producto", inventory.ApplyMovementInput{Kind: entity.MovementKindReceipt, Quantity: 1, Reason: "x"}, "product_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Apply(ctx, admin, tc.in)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Fields, tc.field)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, int64(1), f.quantity(t, p.ID))
}

func TestApply_ProductoInexistenteOInactivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Receive(ctx, operator, uuid.New().String(), 1, "Compra", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p := f.product(t, 3, 0)
	p.Active = false
	require.NoError(t, f.products.Update(ctx, p))
	_, err = f.uc.Receive(ctx, operator, p.ID, 1, "Compra", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(3), f.quantity(t, p.ID))
}

func TestApply_SinUsuario(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 3, 0)

	_, err := f.uc.Receive(context.Background(), inventory.Actor{}, p.ID, 1, "Compra", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestApply_FuncionarioEliminado_MovimientoSinFuncionario(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 3, 0)
	actor := inventory.Actor{UserID: "u1", StaffID: uuid.New().String(), Role: entity.RoleOperator}

	m, err := f.uc.Receive(context.Background(), actor, p.ID, 1, "Compra", "")
	require.NoError(t, err)
	assert.Empty(t, m.StaffID)
}

func TestApply_SalidasConcurrentesNuncaNegativas(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 10, 0)
	ctx := context.Background()

	const workers = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		ok         int
		rejected   int
		unexpected []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Withdraw(ctx, operator, p.ID, 3, "Requisição", "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				unexpected = append(unexpected, err)
			}
		}()
	}
	wg.Wait()

	require.Empty(t, unexpected)
	assert.Equal(t, 3, ok)
	assert.Equal(t, workers-3, rejected)
	assert.Equal(t, int64(1), f.quantity(t, p.ID))
	assert.Equal(t, 3, f.movementCount(t, p.ID))
}

type failingRunner struct{ err error }

func (r failingRunner) Run(_ context.Context, _ func(repository.ProductRepository, repository.MovementRepository) error) error {
	return r.err
}

func TestApply_ErrorDeTransaccionSePropaga(t *testing.T) {
	boom := errors.New("conexión perdida")
	uc := inventory.NewApplyMovementUseCase(failingRunner{err: boom}, nil, nil)

	_, err := uc.Receive(context.Background(), operator, "p1", 1, "Compra", "")
	assert.ErrorIs(t, err, boom)
}

func TestApply_EntradaQueDesbordaEsInvalida(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 1, 0)

	_, err := f.uc.Receive(context.Background(), operator, p.ID, math.MaxInt64, "Compra", "")
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "quantity")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(1), f.quantity(t, p.ID))
	assert.Zero(t, f.movementCount(t, p.ID))
}

// staffRepoConError simula una falla de la base al leer funcionarios.
type staffRepoConError struct {
	repository.StaffRepository
	err error
}

func (r staffRepoConError) GetByID(context.Context, string) (*entity.StaffMember, error) {
	return nil, r.err
}

func TestApply_ErrorAlBuscarFuncionarioSePropaga(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 3, 0)
	boom := errors.New("database is locked")
	uc := inventory.NewApplyMovementUseCase(sqlite.NewTxRunner(f.store), staffRepoConError{err: boom}, nil)
	actor := inventory.Actor{UserID: "u1", StaffID: uuid.New().String(), Role: entity.RoleOperator}

	_, err := uc.Receive(context.Background(), actor, p.ID, 1, "Compra", "")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(3), f.quantity(t, p.ID))
	assert.Zero(t, f.movementCount(t, p.ID))
}
