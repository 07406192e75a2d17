package report

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/application/inventory"
	"github.com/jhoicas/almoxarifado-api/internal/application/usecase"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
	"github.com/jhoicas/almoxarifado-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReportUseCase reportes de stock, de movimientos y alerta de stock bajo.
type ReportUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	reportRepo   repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	reportRepo repository.ReportRepository,
) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, movementRepo: movementRepo, reportRepo: reportRepo}
}

// Stock devuelve todos los productos activos que cumplen el filtro con el total de ítems y de valor.
func (uc *ReportUseCase) Stock(ctx context.Context, in dto.StockReportRequest) (*dto.StockReportDTO, error) {
	list, _, err := uc.productRepo.List(ctx, repository.ProductFilter{
		InstitutionID: strings.TrimSpace(in.InstitutionID),
		CategoryID:    strings.TrimSpace(in.CategoryID),
		LowStockOnly:  in.LowStockOnly,
	}, 0, 0)
	if err != nil {
		return nil, err
	}
	var items int64
	value := decimal.Zero
	for _, p := range list {
		items += p.CurrentQuantity
		value = value.Add(p.StockValue())
	}
	return &dto.StockReportDTO{
		Products:   usecase.ToProductResponses(list),
		TotalItems: items,
		TotalValue: value.Round(2),
	}, nil
}

// LowStock lista los productos en o por debajo del mínimo, de menor a mayor cantidad actual.
func (uc *ReportUseCase) LowStock(ctx context.Context) (*dto.LowStockReportDTO, error) {
	list, total, err := uc.productRepo.List(ctx, repository.ProductFilter{LowStockOnly: true}, 0, 0)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CurrentQuantity < list[j].CurrentQuantity
	})
	return &dto.LowStockReportDTO{
		Products: usecase.ToProductResponses(list),
		Total:    total,
	}, nil
}

// Movements lista movimientos por período y tipo, paginados, con los totales de entradas y salidas del período.
func (uc *ReportUseCase) Movements(ctx context.Context, in dto.MovementListRequest) (*dto.MovementReportDTO, error) {
	filter, err := inventory.MovementFilterFrom(in.Query, in.Kind, in.ProductID, in.From, in.To)
	if err != nil {
		return nil, err
	}
	in.Normalize()
	list, total, err := uc.movementRepo.List(ctx, filter, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	byKind, err := uc.reportRepo.CountMovementsByKind(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.MovementReportDTO{
		Items:            inventory.ToMovementResponses(list),
		Page:             dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
		TotalReceipts:    byKind[entity.MovementKindReceipt],
		TotalWithdrawals: byKind[entity.MovementKindWithdrawal],
	}, nil
}
