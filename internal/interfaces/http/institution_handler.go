package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/application/report"
	"github.com/jhoicas/almoxarifado-api/internal/application/usecase"
)

// InstitutionHandler maneja las peticiones HTTP de instituciones (protegido).
type InstitutionHandler struct {
	uc     *usecase.InstitutionUseCase
	export *report.ExportUseCase
}

// NewInstitutionHandler construye el handler.
func NewInstitutionHandler(uc *usecase.InstitutionUseCase, export *report.ExportUseCase) *InstitutionHandler {
	return &InstitutionHandler{uc: uc, export: export}
}

// Create godoc
// @Summary      Crear institución
// @Tags         institutions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InstitutionRequest  true  "Datos de la institución"
// @Success      201   {object}  dto.InstitutionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/institutions [post]
func (h *InstitutionHandler) Create(c *fiber.Ctx) error {
	var in dto.InstitutionRequest
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
// @Summary      Obtener institución por ID
// @Tags         institutions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la institución"
// @Success      200  {object}  dto.InstitutionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/institutions/{id} [get]
func (h *InstitutionHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar institución
// @Tags         institutions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la institución"
// @Param        body  body  dto.InstitutionRequest  true  "Datos de la institución"
// @Success      200   {object}  dto.InstitutionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/institutions/{id} [put]
func (h *InstitutionHandler) Update(c *fiber.Ctx) error {
	var in dto.InstitutionRequest
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
// @Summary      Listar instituciones
// @Tags         institutions
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Busca en nombre o CNPJ"
// @Param        limit   query  int     false  "Límite (default 20, máx 100)"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  dto.InstitutionListResponse
// @Router       /api/institutions [get]
func (h *InstitutionHandler) List(c *fiber.Ctx) error {
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
// @Summary      Eliminar institución
// @Description  Elimina también sus funcionarios y productos.
// @Tags         institutions
// @Security     Bearer
// @Param        id   path  string  true  "ID de la institución"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/institutions/{id} [delete]
func (h *InstitutionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportPDF godoc
// @Summary      Exportar instituciones en PDF
// @Tags         institutions
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/institutions/export/pdf [get]
func (h *InstitutionHandler) ExportPDF(c *fiber.Ctx) error {
	body, name, err := h.export.InstitutionsPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return fileResponse(c, "application/pdf", name, body)
}
