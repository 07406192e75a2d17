package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almoxarifado-api/internal/application/auth"
	"github.com/jhoicas/almoxarifado-api/internal/application/inventory"
	"github.com/jhoicas/almoxarifado-api/internal/application/report"
	"github.com/jhoicas/almoxarifado-api/internal/application/usecase"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InstitutionUC *usecase.InstitutionUseCase
	StaffUC       *usecase.StaffUseCase
	CategoryUC    *usecase.CategoryUseCase
	ProductUC     *usecase.ProductUseCase
	UserUC        *usecase.UserUseCase
	ApplyMovement *inventory.ApplyMovementUseCase
	MovementQuery *inventory.MovementQueryUseCase
	DashboardUC   *report.DashboardUseCase
	ReportUC      *report.ReportUseCase
	ExportUC      *report.ExportUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público; register admite el primer usuario sin token
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup.Post("/register", OptionalAuthMiddleware(deps.JWTSecret), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Institutions: lectura para todos, escritura solo admin
	institutions := protected.Group("/institutions")
	institutionHandler := NewInstitutionHandler(deps.InstitutionUC, deps.ExportUC)
	institutions.Get("/", institutionHandler.List)
	institutions.Get("/export/pdf", institutionHandler.ExportPDF)
	institutions.Get("/:id", institutionHandler.GetByID)
	institutions.Post("/", adminOnly, institutionHandler.Create)
	institutions.Put("/:id", adminOnly, institutionHandler.Update)
	institutions.Delete("/:id", adminOnly, institutionHandler.Delete)

	// Staff
	staff := protected.Group("/staff")
	staffHandler := NewStaffHandler(deps.StaffUC, deps.ExportUC)
	staff.Get("/", staffHandler.List)
	staff.Get("/export/pdf", staffHandler.ExportPDF)
	staff.Get("/:id", staffHandler.GetByID)
	staff.Post("/", adminOnly, staffHandler.Create)
	staff.Put("/:id", adminOnly, staffHandler.Update)
	staff.Delete("/:id", adminOnly, staffHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Movements: el rol de ajuste se valida en el caso de uso
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.ApplyMovement, deps.MovementQuery)
	movements.Post("/", movementHandler.Apply)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.DashboardUC, deps.ReportUC, deps.ExportUC)
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/stock/pdf", reportHandler.StockPDF)
	reports.Get("/stock/xml", reportHandler.StockXML)
	reports.Get("/movements", reportHandler.Movements)
	reports.Get("/low-stock", reportHandler.LowStock)
}
