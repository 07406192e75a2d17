package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/application/usecase"
	"github.com/jhoicas/almoxarifado-api/internal/domain"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/sqlite"
)

type suite struct {
	institutions *usecase.InstitutionUseCase
	staff        *usecase.StaffUseCase
	categories   *usecase.CategoryUseCase
	products     *usecase.ProductUseCase
	productRepo  *sqlite.ProductRepo
}

func newSuite(t *testing.T) *suite {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "uc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	db := store.DB()
	instRepo := sqlite.NewInstitutionRepository(db)
	catRepo := sqlite.NewCategoryRepository(db)
	prodRepo := sqlite.NewProductRepository(db)
	return &suite{
		institutions: usecase.NewInstitutionUseCase(instRepo),
		staff:        usecase.NewStaffUseCase(sqlite.NewStaffRepository(db), instRepo),
		categories:   usecase.NewCategoryUseCase(catRepo),
		products:     usecase.NewProductUseCase(prodRepo, instRepo, catRepo),
		productRepo:  prodRepo,
	}
}

func (s *suite) institution(t *testing.T, cnpj string) *dto.InstitutionResponse {
	t.Helper()
	inst, err := s.institutions.Create(context.Background(), dto.InstitutionRequest{
		Name: "Escola Municipal", CNPJ: cnpj, State: "sp", CEP: "01001-000",
	})
	require.NoError(t, err)
	return inst
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	return v.Fields
}

func TestInstitution_CreateNormalizaYValida(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	inst := s.institution(t, "11222333000181")
	assert.Equal(t, "11.222.333/0001-81", inst.CNPJ)
	assert.Equal(t, "SP", inst.State)
	assert.True(t, inst.Active)

	_, err := s.institutions.Create(ctx, dto.InstitutionRequest{Name: "Otra", CNPJ: "11.222.333/0001-81"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = s.institutions.Create(ctx, dto.InstitutionRequest{CNPJ: "11.222.333/0001-82", State: "XX"})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "cnpj")
	assert.Contains(t, fields, "state")
}

func TestInstitution_UpdateYDelete(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	a := s.institution(t, "11.222.333/0001-81")
	b := s.institution(t, "44.555.666/0001-81")

	_, err := s.institutions.Update(ctx, b.ID, dto.InstitutionRequest{Name: "B", CNPJ: a.CNPJ})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	inactive := false
	upd, err := s.institutions.Update(ctx, b.ID, dto.InstitutionRequest{Name: "Hospital", CNPJ: b.CNPJ, Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Hospital", upd.Name)
	assert.False(t, upd.Active)

	missing, err := s.institutions.Update(ctx, "no-existe", dto.InstitutionRequest{Name: "X", CNPJ: b.CNPJ})
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, s.institutions.Delete(ctx, a.ID))
	assert.ErrorIs(t, s.institutions.Delete(ctx, a.ID), domain.ErrNotFound)

	list, err := s.institutions.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
	assert.Equal(t, 20, list.Page.Limit)
}

func TestStaff_Create(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	inst := s.institution(t, "11.222.333/0001-81")

	created, err := s.staff.Create(ctx, dto.StaffRequest{
		Name: "Maria", BirthDate: "1990-05-01", Email: " Maria@Example.com ", InstitutionID: inst.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", created.Email)
	assert.Equal(t, "1990-05-01", created.BirthDate)

	_, err = s.staff.Create(ctx, dto.StaffRequest{
		Name: "Otra", BirthDate: "1991-01-01", Email: "maria@example.com", InstitutionID: inst.ID,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = s.staff.Create(ctx, dto.StaffRequest{
		Name: "X", BirthDate: "01/05/1990", Email: "no-es-email", InstitutionID: "no-existe",
	})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "birth_date")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "institution_id")
}

func TestCategory_NombreUnicoYListado(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	a, err := s.categories.Create(ctx, dto.CategoryRequest{Name: " Limpeza "})
	require.NoError(t, err)
	assert.Equal(t, "Limpeza", a.Name)

	_, err = s.categories.Create(ctx, dto.CategoryRequest{Name: "Limpeza"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	inactive := false
	_, err = s.categories.Create(ctx, dto.CategoryRequest{Name: "Antiga", Active: &inactive})
	require.NoError(t, err)

	active, err := s.categories.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 1)
	all, err := s.categories.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = s.categories.Update(ctx, a.ID, dto.CategoryRequest{Name: "Antiga"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.ErrorIs(t, s.categories.Delete(ctx, "no-existe"), domain.ErrNotFound)
}

func TestProduct_CreateUpdateDelete(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	inst := s.institution(t, "11.222.333/0001-81")

	p, err := s.products.Create(ctx, dto.CreateProductRequest{
		InstitutionID: inst.ID, CategoryID: "no-existe", Code: "PAP-A4", Name: "Papel A4",
		MinimumQuantity: 10, UnitPrice: decimal.RequireFromString("27.905"),
	})
	require.NoError(t, err)
	assert.Empty(t, p.CategoryID, "categoría inexistente se ignora")
	assert.Equal(t, int64(0), p.CurrentQuantity)
	assert.True(t, p.LowStock)
	assert.Equal(t, "27.91", p.UnitPrice.StringFixed(2))

	_, err = s.products.Create(ctx, dto.CreateProductRequest{InstitutionID: inst.ID, Code: "PAP-A4", Name: "Duplicado"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = s.products.Create(ctx, dto.CreateProductRequest{MinimumQuantity: -1, UnitPrice: decimal.NewFromInt(-1)})
	fields := fieldErrors(t, err)
	for _, f := range []string{"code", "name", "minimum_quantity", "unit_price", "institution_id"} {
		assert.Contains(t, fields, f)
	}

	cat, err := s.categories.Create(ctx, dto.CategoryRequest{Name: "Papelaria"})
	require.NoError(t, err)
	name := "Papel A4 75g"
	minimum := int64(5)
	upd, err := s.products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, MinimumQuantity: &minimum, CategoryID: &cat.ID})
	require.NoError(t, err)
	assert.Equal(t, name, upd.Name)
	assert.Equal(t, cat.ID, upd.CategoryID)
	assert.Equal(t, int64(0), upd.CurrentQuantity)

	require.NoError(t, s.products.Delete(ctx, p.ID))
	got, err := s.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "producto desactivado no se expone")
	assert.ErrorIs(t, s.products.Delete(ctx, p.ID), domain.ErrNotFound)

	// soft delete: la fila sigue existiendo
	row, err := s.productRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.False(t, row.Active)
}

func TestProduct_ListFiltros(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	inst := s.institution(t, "11.222.333/0001-81")
	for _, code := range []string{"A-1", "B-2", "C-3"} {
		_, err := s.products.Create(ctx, dto.CreateProductRequest{
			InstitutionID: inst.ID, Code: code, Name: "Caneta " + code, UnitPrice: decimal.NewFromInt(1),
		})
		require.NoError(t, err)
	}

	list, err := s.products.List(ctx, dto.ProductListRequest{Query: "b-2"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "B-2", list.Items[0].Code)

	page, err := s.products.List(ctx, dto.ProductListRequest{PageRequest: dto.PageRequest{Limit: 2, Offset: 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page.Total)
	assert.Len(t, page.Items, 1)
}
