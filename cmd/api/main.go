package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/almoxarifado-api/docs"
	"github.com/jhoicas/almoxarifado-api/internal/application/auth"
	"github.com/jhoicas/almoxarifado-api/internal/application/inventory"
	"github.com/jhoicas/almoxarifado-api/internal/application/report"
	"github.com/jhoicas/almoxarifado-api/internal/application/usecase"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/persistence"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/almoxarifado-api/internal/interfaces/http"
	"github.com/jhoicas/almoxarifado-api/pkg/config"
	"github.com/jhoicas/almoxarifado-api/pkg/logger"
)

// @title        Almoxarifado API
// @version      1.0
// @description  Control de stock: instituciones, funcionarios, categorías, productos y movimientos.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	repos, err := persistence.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("base de datos")
	}
	defer repos.Close()

	institutionUC := usecase.NewInstitutionUseCase(repos.Institutions)
	staffUC := usecase.NewStaffUseCase(repos.Staff, repos.Institutions)
	categoryUC := usecase.NewCategoryUseCase(repos.Categories)
	productUC := usecase.NewProductUseCase(repos.Products, repos.Institutions, repos.Categories)
	userUC := usecase.NewUserUseCase(repos.Users)

	applyMovementUC := inventory.NewApplyMovementUseCase(repos.TxRunner, repos.Staff, log)
	movementQueryUC := inventory.NewMovementQueryUseCase(repos.Movements)

	dashboardUC := report.NewDashboardUseCase(repos.Reports, repos.Movements)
	reportUC := report.NewReportUseCase(repos.Products, repos.Movements, repos.Reports)

	// PDF y XML de exportación
	pdfGenerator := pdf.NewMarotoPDFGenerator(cfg.App.Name)
	exportUC := report.NewExportUseCase(repos.Institutions, repos.Staff, reportUC, pdfGenerator, xmlexport.NewExporter())

	authUC := auth.NewAuthUseCase(repos.Users, repos.Staff, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almoxarifado API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db": repos.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InstitutionUC: institutionUC,
		StaffUC:       staffUC,
		CategoryUC:    categoryUC,
		ProductUC:     productUC,
		UserUC:        userUC,
		ApplyMovement: applyMovementUC,
		MovementQuery: movementQueryUC,
		DashboardUC:   dashboardUC,
		ReportUC:      reportUC,
		ExportUC:      exportUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
