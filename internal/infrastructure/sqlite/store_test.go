package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almoxarifado-api/internal/domain"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
	"github.com/jhoicas/almoxarifado-api/internal/domain/repository"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/sqlite"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "almoxarifado.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedInstitution(t *testing.T, store *sqlite.Store, name, cnpj string) *entity.Institution {
	t.Helper()
	inst := &entity.Institution{
		ID: uuid.New().String(), Name: name, CNPJ: cnpj, State: "SP", Active: true, CreatedAt: time.Now(),
	}
	require.NoError(t, sqlite.NewInstitutionRepository(store.DB()).Create(context.Background(), inst))
	return inst
}

func seedProduct(t *testing.T, store *sqlite.Store, institutionID, categoryID, code, name string, qty, min int64) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID: uuid.New().String(), InstitutionID: institutionID, CategoryID: categoryID, Code: code, Name: name,
		MinimumQuantity: min, CurrentQuantity: qty, UnitPrice: decimal.RequireFromString("2.50"),
		Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, sqlite.NewProductRepository(store.DB()).Create(context.Background(), p))
	return p
}

func TestOpen_MigracionesIdempotentes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "almoxarifado.db")
	store, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = sqlite.Open(path)
	require.NoError(t, err)
	defer store.Close()

	var n int
	require.NoError(t, store.DB().QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestInstitutionRepo_CNPJDuplicado(t *testing.T) {
	store := openStore(t)
	seedInstitution(t, store, "Escola Central", "11.222.333/0001-81")

	dup := &entity.Institution{ID: uuid.New().String(), Name: "Outra", CNPJ: "11.222.333/0001-81", CreatedAt: time.Now()}
	err := sqlite.NewInstitutionRepository(store.DB()).Create(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestInstitutionRepo_ListBuscaSinAcentos(t *testing.T) {
	store := openStore(t)
	seedInstitution(t, store, "Escola São João", "11.222.333/0001-81")
	seedInstitution(t, store, "Hospital Municipal", "44.555.666/0001-81")
	repo := sqlite.NewInstitutionRepository(store.DB())

	list, total, err := repo.List(context.Background(), "sao joao", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Escola São João", list[0].Name)

	list, total, err = repo.List(context.Background(), "", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Hospital Municipal", list[0].Name)
}

func TestInstitutionRepo_DeleteEnCascada(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	inst := seedInstitution(t, store, "Escola Central", "11.222.333/0001-81")
	p := seedProduct(t, store, inst.ID, "", "P-1", "Papel A4", 5, 1)

	require.NoError(t, sqlite.NewInstitutionRepository(store.DB()).Delete(ctx, inst.ID))

	got, err := sqlite.NewProductRepository(store.DB()).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = sqlite.NewInstitutionRepository(store.DB()).Delete(ctx, inst.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryRepo_DeleteDejaProductoSinCategoria(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	inst := seedInstitution(t, store, "Escola Central", "11.222.333/0001-81")
	cat := &entity.Category{ID: uuid.New().String(), Name: "Papelaria", Active: true, CreatedAt: time.Now()}
	require.NoError(t, sqlite.NewCategoryRepository(store.DB()).Create(ctx, cat))
	p := seedProduct(t, store, inst.ID, cat.ID, "P-1", "Papel A4", 5, 1)

	require.NoError(t, sqlite.NewCategoryRepository(store.DB()).Delete(ctx, cat.ID))

	got, err := sqlite.NewProductRepository(store.DB()).GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.CategoryID)
}

func TestProductRepo_CodigoUnicoPorInstitucion(t *testing.T) {
	store := openStore(t)
	a := seedInstitution(t, store, "A", "11.222.333/0001-81")
	b := seedInstitution(t, store, "B", "44.555.666/0001-81")
	seedProduct(t, store, a.ID, "", "P-1", "Papel", 0, 0)
	seedProduct(t, store, b.ID, "", "P-1", "Papel", 0, 0)

	now := time.Now()
	dup := &entity.Product{ID: uuid.New().String(), InstitutionID: a.ID, Code: "P-1", Name: "Otro", Active: true, CreatedAt: now, UpdatedAt: now}
	err := sqlite.NewProductRepository(store.DB()).Create(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductRepo_ListFiltros(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	inst := seedInstitution(t, store, "Escola", "11.222.333/0001-81")
	seedProduct(t, store, inst.ID, "", "CAN-01", "Caneta Azul", 3, 10)
	seedProduct(t, store, inst.ID, "", "PAP-01", "Papel Sulfite", 50, 10)
	inactive := seedProduct(t, store, inst.ID, "", "BOR-01", "Borracha", 0, 5)
	inactive.Active = false
	inactive.UpdatedAt = time.Now()
	repo := sqlite.NewProductRepository(store.DB())
	require.NoError(t, repo.Update(ctx, inactive))

	list, total, err := repo.List(ctx, repository.ProductFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "Caneta Azul", list[0].Name)

	list, _, err = repo.List(ctx, repository.ProductFilter{LowStockOnly: true}, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "CAN-01", list[0].Code)

	list, _, err = repo.List(ctx, repository.ProductFilter{Query: "pap"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, decimal.RequireFromString("2.50").Equal(list[0].UnitPrice))

	_, total, err = repo.List(ctx, repository.ProductFilter{IncludeInactive: true}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestTxRunner_RollbackNoPersisteNada(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	inst := seedInstitution(t, store, "Escola", "11.222.333/0001-81")
	p := seedProduct(t, store, inst.ID, "", "P-1", "Papel", 10, 0)
	boom := errors.New("boom")

	err := sqlite.NewTxRunner(store).Run(ctx, func(products repository.ProductRepository, movements repository.MovementRepository) error {
		require.NoError(t, products.UpdateQuantity(ctx, p.ID, 99))
		require.NoError(t, movements.Create(ctx, &entity.Movement{
			ID: uuid.New().String(), ProductID: p.ID, Kind: entity.MovementKindAdjustment, Quantity: 99,
			PreviousQuantity: 10, NewQuantity: 99, Reason: "teste", CreatedBy: "u1", CreatedAt: time.Now(),
		}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := sqlite.NewProductRepository(store.DB()).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.CurrentQuantity)

	_, total, err := sqlite.NewMovementRepository(store.DB()).List(ctx, repository.MovementFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestMovementRepo_ListBuscaPorMotivoYProducto(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	inst := seedInstitution(t, store, "Escola", "11.222.333/0001-81")
	p := seedProduct(t, store, inst.ID, "", "CAN-01", "Caneta", 0, 0)
	repo := sqlite.NewMovementRepository(store.DB())
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, reason := range []string{"Compra de material", "Requisição da secretaria"} {
		require.NoError(t, repo.Create(ctx, &entity.Movement{
			ID: uuid.New().String(), ProductID: p.ID, Kind: entity.MovementKindReceipt, Quantity: 1,
			PreviousQuantity: int64(i), NewQuantity: int64(i + 1), Reason: reason, CreatedBy: "u1",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	list, total, err := repo.List(ctx, repository.MovementFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "Requisição da secretaria", list[0].Reason, "más reciente primero")
	assert.Equal(t, "Caneta", list[0].ProductName)

	list, _, err = repo.List(ctx, repository.MovementFilter{Query: "requisicao"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, _, err = repo.List(ctx, repository.MovementFilter{Query: "can-01"}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	to := base.Add(30 * time.Minute)
	list, _, err = repo.List(ctx, repository.MovementFilter{To: &to}, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Compra de material", list[0].Reason)
}

func TestReportRepo_Agregados(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	inst := seedInstitution(t, store, "Escola", "11.222.333/0001-81")
	seedProduct(t, store, inst.ID, "", "A", "A", 4, 10)
	seedProduct(t, store, inst.ID, "", "B", "B", 20, 10)
	repo := sqlite.NewReportRepository(store.DB())

	n, err := repo.CountActiveProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.CountLowStockProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	value, err := repo.StockValue(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("60").Equal(value), "got %s", value)
}
