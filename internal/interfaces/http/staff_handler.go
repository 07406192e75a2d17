package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/application/report"
	"github.com/jhoicas/almoxarifado-api/internal/application/usecase"
)

// StaffHandler maneja las peticiones HTTP de funcionarios (protegido).
type StaffHandler struct {
	uc     *usecase.StaffUseCase
	export *report.ExportUseCase
}

// NewStaffHandler construye el handler.
func NewStaffHandler(uc *usecase.StaffUseCase, export *report.ExportUseCase) *StaffHandler {
	return &StaffHandler{uc: uc, export: export}
}

// Create godoc
// @Summary      Crear funcionario
// @Tags         staff
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StaffRequest  true  "Datos del funcionario (birth_date YYYY-MM-DD)"
// @Success      201   {object}  dto.StaffResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/staff [post]
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var in dto.StaffRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener funcionario por ID
// @Tags         staff
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del funcionario"
// @Success      200  {object}  dto.StaffResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/staff/{id} [get]
func (h *StaffHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar funcionario
// @Tags         staff
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID del funcionario"
// @Param        body  body  dto.StaffRequest  true  "Datos del funcionario"
// @Success      200   {object}  dto.StaffResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/staff/{id} [put]
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	var in dto.StaffRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar funcionarios
// @Tags         staff
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Busca en nombre, email o teléfono"
// @Param        limit   query  int     false  "Límite (default 20, máx 100)"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  dto.StaffListResponse
// @Router       /api/staff [get]
func (h *StaffHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.List(c.Context(), c.Query("q"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar funcionario
// @Tags         staff
// @Security     Bearer
// @Param        id   path  string  true  "ID del funcionario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/staff/{id} [delete]
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportPDF godoc
// @Summary      Exportar funcionarios en PDF
// @Tags         staff
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/staff/export/pdf [get]
func (h *StaffHandler) ExportPDF(c *fiber.Ctx) error {
	body, name, err := h.export.StaffPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return fileResponse(c, "application/pdf", name, body)
}
