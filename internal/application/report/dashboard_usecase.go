// Package report contiene los casos de uso de lectura: dashboard, reportes de stock y de
// movimientos, alertas de stock bajo y exportaciones (PDF, XML).
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/application/inventory"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
	"github.com/jhoicas/almoxarifado-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardTopProducts     = 5  // productos en el ranking de más movimentados
	dashboardLatestMovements = 10 // últimos movimientos mostrados
	dashboardWindow          = 7 * 24 * time.Hour
)

// DashboardUseCase genera el resumen del almacén.
//
// Fuente de datos: ReportRepository (consultas read-only) y MovementRepository para los últimos movimientos.
type DashboardUseCase struct {
	reportRepo   repository.ReportRepository
	movementRepo repository.MovementRepository
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository, movementRepo repository.MovementRepository) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, movementRepo: movementRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO ejecutando las consultas en paralelo.
// Si alguna falla se cancela el resto y se devuelve el primer error.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	since := uc.now().UTC().Add(-dashboardWindow)

	var (
		totalProducts int
		lowStock      int
		lastWeek      int
		stockValue    decimal.Decimal
		top           []repository.MovedProduct
		latest        []*entity.MovementView
		byKind        map[string]int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totalProducts, err = uc.reportRepo.CountActiveProducts(gctx)
		return wrap("productos activos", err)
	})
	g.Go(func() (err error) {
		lowStock, err = uc.reportRepo.CountLowStockProducts(gctx)
		return wrap("stock bajo", err)
	})
	g.Go(func() (err error) {
		lastWeek, err = uc.reportRepo.CountMovementsSince(gctx, since)
		return wrap("movimientos de la semana", err)
	})
	g.Go(func() (err error) {
		stockValue, err = uc.reportRepo.StockValue(gctx)
		return wrap("valor en stock", err)
	})
	g.Go(func() (err error) {
		top, err = uc.reportRepo.TopMovedProducts(gctx, dashboardTopProducts)
		return wrap("productos más movimentados", err)
	})
	g.Go(func() (err error) {
		latest, _, err = uc.movementRepo.List(gctx, repository.MovementFilter{}, dashboardLatestMovements, 0)
		return wrap("últimos movimientos", err)
	})
	g.Go(func() (err error) {
		byKind, err = uc.reportRepo.CountMovementsByKind(gctx, repository.MovementFilter{})
		return wrap("movimientos por tipo", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	topDTO := make([]dto.MovedProductDTO, 0, len(top))
	for _, p := range top {
		topDTO = append(topDTO, dto.MovedProductDTO{
			ProductID:     p.ProductID,
			Code:          p.Code,
			Name:          p.Name,
			MovementCount: p.MovementCount,
		})
	}
	return &dto.DashboardSummaryDTO{
		TotalProducts:     totalProducts,
		LowStockProducts:  lowStock,
		MovementsLastWeek: lastWeek,
		StockValue:        stockValue.Round(2),
		TopProducts:       topDTO,
		LatestMovements:   inventory.ToMovementResponses(latest),
		Receipts:          byKind[entity.MovementKindReceipt],
		Withdrawals:       byKind[entity.MovementKindWithdrawal],
		Adjustments:       byKind[entity.MovementKindAdjustment],
	}, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("dashboard: %s: %w", what, err)
	}
	return nil
}
