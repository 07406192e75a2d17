package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/reports/dashboard.
type DashboardSummaryDTO struct {
	TotalProducts     int                `json:"total_products"`
	LowStockProducts  int                `json:"low_stock_products"`
	MovementsLastWeek int                `json:"movements_last_week"`
	StockValue        decimal.Decimal    `json:"stock_value"` // Σ cantidad × precio unitario
	TopProducts       []MovedProductDTO  `json:"top_products"`
	LatestMovements   []MovementResponse `json:"latest_movements"`
	Receipts          int                `json:"receipts"`
	Withdrawals       int                `json:"withdrawals"`
	Adjustments       int                `json:"adjustments"`
}

// MovedProductDTO producto del ranking de más movimentados.
type MovedProductDTO struct {
	ProductID     string `json:"product_id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	MovementCount int    `json:"movement_count"`
}

// StockReportRequest filtros del reporte de stock.
type StockReportRequest struct {
	CategoryID    string `query:"category_id"`
	InstitutionID string `query:"institution_id"`
	LowStockOnly  bool   `query:"low_stock"`
}

// StockReportDTO reporte completo de stock con totales.
type StockReportDTO struct {
	Products   []ProductResponse `json:"products"`
	TotalItems int64             `json:"total_items"`
	TotalValue decimal.Decimal   `json:"total_value"`
}

// MovementReportDTO reporte de movimientos por período y tipo.
type MovementReportDTO struct {
	Items            []MovementResponse `json:"items"`
	Page             PageResponse       `json:"page"`
	TotalReceipts    int                `json:"total_receipts"`
	TotalWithdrawals int                `json:"total_withdrawals"`
}

// LowStockReportDTO alerta de productos en o por debajo del mínimo.
type LowStockReportDTO struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
}
