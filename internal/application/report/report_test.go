package report_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/application/inventory"
	"github.com/jhoicas/almoxarifado-api/internal/application/report"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/xmlexport"
)

var admin = inventory.Actor{UserID: "u-admin", Role: entity.RoleAdmin}

type env struct {
	dashboard *report.DashboardUseCase
	reports   *report.ReportUseCase
	export    *report.ExportUseCase
	apply     *inventory.ApplyMovementUseCase
	products  *sqlite.ProductRepo
	inst      *entity.Institution
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "report.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	db := store.DB()

	instRepo := sqlite.NewInstitutionRepository(db)
	inst := &entity.Institution{ID: uuid.New().String(), Name: "Escola", CNPJ: "11.222.333/0001-81", Active: true, CreatedAt: time.Now()}
	require.NoError(t, instRepo.Create(context.Background(), inst))

	products := sqlite.NewProductRepository(db)
	movements := sqlite.NewMovementRepository(db)
	reportRepo := sqlite.NewReportRepository(db)
	staffRepo := sqlite.NewStaffRepository(db)
	reports := report.NewReportUseCase(products, movements, reportRepo)
	return &env{
		dashboard: report.NewDashboardUseCase(reportRepo, movements),
		reports:   reports,
		export:    report.NewExportUseCase(instRepo, staffRepo, reports, pdf.NewMarotoPDFGenerator("test"), xmlexport.NewExporter()),
		apply:     inventory.NewApplyMovementUseCase(sqlite.NewTxRunner(store), staffRepo, nil),
		products:  products,
		inst:      inst,
	}
}

// product crea un producto sin stock y le da entrada de qty unidades.
func (e *env) product(t *testing.T, code string, qty, min int64, price string) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID: uuid.New().String(), InstitutionID: e.inst.ID, Code: code, Name: "Produto " + code,
		MinimumQuantity: min, UnitPrice: decimal.RequireFromString(price), Active: true,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, e.products.Create(context.Background(), p))
	if qty > 0 {
		_, err := e.apply.Receive(context.Background(), admin, p.ID, qty, "compra", "")
		require.NoError(t, err)
	}
	return p
}

func TestDashboard_Resumen(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.product(t, "A", 45, 10, "2.50")
	e.product(t, "B", 3, 5, "10.00")
	e.product(t, "C", 0, 0, "1.00")

	_, err := e.apply.Withdraw(ctx, admin, a.ID, 5, "consumo", "")
	require.NoError(t, err)
	_, err = e.apply.Adjust(ctx, admin, a.ID, 38, "inventario", "")
	require.NoError(t, err)

	sum, err := e.dashboard.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.TotalProducts)
	assert.Equal(t, 2, sum.LowStockProducts, "B (3<=5) y C (0<=0)")
	assert.Equal(t, 4, sum.MovementsLastWeek)
	assert.Equal(t, "125.00", sum.StockValue.StringFixed(2)) // 38×2.50 + 3×10
	assert.Equal(t, 2, sum.Receipts)
	assert.Equal(t, 1, sum.Withdrawals)
	assert.Equal(t, 1, sum.Adjustments)
	require.NotEmpty(t, sum.TopProducts)
	assert.Equal(t, a.ID, sum.TopProducts[0].ProductID)
	assert.Equal(t, 3, sum.TopProducts[0].MovementCount)
	require.Len(t, sum.LatestMovements, 4)
	assert.Equal(t, entity.MovementKindAdjustment, sum.LatestMovements[0].Kind)
}

func TestStockReport_TotalesYFiltros(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.product(t, "A", 4, 10, "2.50")
	e.product(t, "B", 20, 10, "2.50")

	rep, err := e.reports.Stock(ctx, dto.StockReportRequest{})
	require.NoError(t, err)
	assert.Len(t, rep.Products, 2)
	assert.Equal(t, int64(24), rep.TotalItems)
	assert.Equal(t, "60.00", rep.TotalValue.StringFixed(2))

	low, err := e.reports.Stock(ctx, dto.StockReportRequest{LowStockOnly: true})
	require.NoError(t, err)
	require.Len(t, low.Products, 1)
	assert.Equal(t, "A", low.Products[0].Code)
}

func TestLowStock_OrdenadoPorCantidad(t *testing.T) {
	e := newEnv(t)
	e.product(t, "A", 8, 10, "1")
	e.product(t, "B", 2, 10, "1")
	e.product(t, "C", 50, 10, "1")

	rep, err := e.reports.LowStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Total)
	require.Len(t, rep.Products, 2)
	assert.Equal(t, "B", rep.Products[0].Code)
	assert.Equal(t, "A", rep.Products[1].Code)
}

func TestMovementReport_Totales(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.product(t, "A", 10, 0, "1")
	_, err := e.apply.Withdraw(ctx, admin, a.ID, 4, "consumo", "")
	require.NoError(t, err)

	all, err := e.reports.Movements(ctx, dto.MovementListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Page.Total)
	assert.Equal(t, 1, all.TotalReceipts)
	assert.Equal(t, 1, all.TotalWithdrawals)

	// los totales respetan los mismos filtros que los ítems
	rep, err := e.reports.Movements(ctx, dto.MovementListRequest{Kind: entity.MovementKindWithdrawal})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Page.Total)
	assert.Len(t, rep.Items, 1)
	assert.Equal(t, 0, rep.TotalReceipts)
	assert.Equal(t, 1, rep.TotalWithdrawals)

	b := e.product(t, "B", 5, 0, "1")
	byProduct, err := e.reports.Movements(ctx, dto.MovementListRequest{ProductID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, byProduct.TotalReceipts)
	assert.Equal(t, 0, byProduct.TotalWithdrawals)

	byReason, err := e.reports.Movements(ctx, dto.MovementListRequest{Query: "consumo"})
	require.NoError(t, err)
	assert.Equal(t, 0, byReason.TotalReceipts)
	assert.Equal(t, 1, byReason.TotalWithdrawals)

	future := time.Now().AddDate(0, 0, 2).Format(time.DateOnly)
	empty, err := e.reports.Movements(ctx, dto.MovementListRequest{From: future})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Page.Total)
	assert.Equal(t, 0, empty.TotalReceipts)

	_, err = e.reports.Movements(ctx, dto.MovementListRequest{From: "ayer"})
	assert.Error(t, err)
}

func TestExport_Archivos(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.product(t, "A", 4, 10, "2.50")

	b, name, err := e.export.InstitutionsPDF(ctx)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
	assert.True(t, strings.HasPrefix(name, "instituciones_"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	b, _, err = e.export.StaffPDF(ctx)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	b, _, err = e.export.StockPDF(ctx, dto.StockReportRequest{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	b, name, err = e.export.StockXML(ctx, dto.StockReportRequest{})
	require.NoError(t, err)
	assert.Contains(t, string(b), "<relatorioEstoque")
	assert.True(t, strings.HasSuffix(name, ".xml"))
}
