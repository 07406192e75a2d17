package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/application/report"
)

// ReportHandler expone dashboard y reportes (protegido).
type ReportHandler struct {
	dashboard *report.DashboardUseCase
	reports   *report.ReportUseCase
	export    *report.ExportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(dashboard *report.DashboardUseCase, reports *report.ReportUseCase, export *report.ExportUseCase) *ReportHandler {
	return &ReportHandler{dashboard: dashboard, reports: reports, export: export}
}

// Dashboard godoc
// @Summary      Resumen del dashboard
// @Description  Productos activos, stock bajo, movimientos de los últimos 7 días, valor del stock,
// @Description  top 5 productos más movimentados y últimos 10 movimientos.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stock godoc
// @Summary      Reporte de stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        category_id     query  string  false  "Filtrar por categoría"
// @Param        institution_id  query  string  false  "Filtrar por institución"
// @Param        low_stock       query  bool    false  "Solo stock bajo"
// @Success      200  {object}  dto.StockReportDTO
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	var in dto.StockReportRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidQuery(c)
	}
	out, err := h.reports.Stock(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StockPDF godoc
// @Summary      Reporte de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        low_stock    query  bool    false  "Solo stock bajo"
// @Success      200  {file}  binary
// @Router       /api/reports/stock/pdf [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	var in dto.StockReportRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidQuery(c)
	}
	body, name, err := h.export.StockPDF(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return fileResponse(c, "application/pdf", name, body)
}

// StockXML godoc
// @Summary      Reporte de stock en XML
// @Tags         reports
// @Security     Bearer
// @Produce      application/xml
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        low_stock    query  bool    false  "Solo stock bajo"
// @Success      200  {file}  binary
// @Router       /api/reports/stock/xml [get]
func (h *ReportHandler) StockXML(c *fiber.Ctx) error {
	var in dto.StockReportRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidQuery(c)
	}
	body, name, err := h.export.StockXML(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return fileResponse(c, "application/xml", name, body)
}

// Movements godoc
// @Summary      Reporte de movimientos por período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD o RFC3339)"
// @Param        kind    query  string  false  "receipt | withdrawal | adjustment"
// @Param        limit   query  int     false  "Límite (default 20, máx 100)"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  dto.MovementReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidQuery(c)
	}
	out, err := h.reports.Movements(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Alerta de stock bajo
// @Description  Productos activos con cantidad actual menor o igual al mínimo, de menor a mayor cantidad.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockReportDTO
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.reports.LowStock(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
