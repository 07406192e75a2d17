// seed carga datos de ejemplo (instituciones, funcionarios, categorías, productos y movimientos)
// usando los mismos casos de uso que la API. Es idempotente: busca por CNPJ, email, nombre y código
// antes de crear, y solo registra movimientos para productos creados en esta ejecución.
//
// Uso: go run ./cmd/seed
// Usuario y contraseña del admin: SEED_ADMIN_USERNAME / SEED_ADMIN_PASSWORD (ver pkg/config).
package main

import (
	"context"

	"github.com/jhoicas/almoxarifado-api/internal/application/auth"
	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/application/inventory"
	"github.com/jhoicas/almoxarifado-api/internal/application/usecase"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
	"github.com/jhoicas/almoxarifado-api/internal/domain/validation"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/persistence"
	"github.com/jhoicas/almoxarifado-api/pkg/config"
	"github.com/jhoicas/almoxarifado-api/pkg/logger"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	code     string
	name     string
	category string
	minimum  int64
	price    string
	initial  int64
	withdraw int64
}

var institutions = []dto.InstitutionRequest{
	{
		Name: "Escola Municipal Central", CEP: "01001-000", Street: "Praça da Sé", Number: "100",
		District: "Sé", City: "São Paulo", State: "SP", Phone: "(11) 3333-4444", CNPJ: "11.222.333/0001-81",
	},
	{
		Name: "Hospital Regional Norte", CEP: "30130-010", Street: "Av. Afonso Pena", Number: "1500",
		District: "Centro", City: "Belo Horizonte", State: "MG", Phone: "(31) 3222-1111", CNPJ: "44.555.666/0001-81",
	},
}

var categories = []dto.CategoryRequest{
	{Name: "Material de escritório", Description: "Papel, canetas, grampos"},
	{Name: "Limpeza", Description: "Produtos de higiene e limpeza"},
	{Name: "Informática", Description: "Periféricos e suprimentos"},
}

var products = []seedProduct{
	{code: "PAP-A4", name: "Papel A4 (resma)", category: "Material de escritório", minimum: 10, price: "27.90", initial: 45, withdraw: 5},
	{code: "CAN-AZ", name: "Caneta esferográfica azul", category: "Material de escritório", minimum: 50, price: "1.20", initial: 200, withdraw: 30},
	{code: "DET-500", name: "Detergente 500ml", category: "Limpeza", minimum: 20, price: "2.75", initial: 24, withdraw: 6},
	{code: "TON-85A", name: "Toner 85A", category: "Informática", minimum: 2, price: "189.00", initial: 3, withdraw: 1},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

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
	applyUC := inventory.NewApplyMovementUseCase(repos.TxRunner, repos.Staff, log)
	authUC := auth.NewAuthUseCase(repos.Users, repos.Staff, auth.JWTConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})

	// 1. Instituciones
	institutionIDs := make([]string, 0, len(institutions))
	for _, in := range institutions {
		existing, err := repos.Institutions.GetByCNPJ(ctx, validation.FormatCNPJ(in.CNPJ))
		if err != nil {
			log.Fatal().Err(err).Str("cnpj", in.CNPJ).Msg("buscar institución")
		}
		if existing != nil {
			institutionIDs = append(institutionIDs, existing.ID)
			continue
		}
		created, err := institutionUC.Create(ctx, in)
		if err != nil {
			log.Fatal().Err(err).Str("cnpj", in.CNPJ).Msg("crear institución")
		}
		log.Info().Str("id", created.ID).Str("name", created.Name).Msg("institución creada")
		institutionIDs = append(institutionIDs, created.ID)
	}
	mainInstitution := institutionIDs[0]

	// 2. Funcionario responsable
	staffReq := dto.StaffRequest{
		Name:          "Maria Almoxarife",
		BirthDate:     "1985-04-12",
		Email:         "maria.almoxarife@example.com",
		Phone:         "(11) 98888-7777",
		InstitutionID: mainInstitution,
	}
	staffID := ""
	if existing, err := repos.Staff.GetByEmail(ctx, staffReq.Email); err != nil {
		log.Fatal().Err(err).Msg("buscar funcionario")
	} else if existing != nil {
		staffID = existing.ID
	} else {
		created, err := staffUC.Create(ctx, staffReq)
		if err != nil {
			log.Fatal().Err(err).Msg("crear funcionario")
		}
		staffID = created.ID
		log.Info().Str("id", created.ID).Str("email", created.Email).Msg("funcionario creado")
	}

	// 3. Admin vinculado al funcionario (solo si la base no tiene usuarios)
	adminID := ""
	if existing, err := repos.Users.GetByUsername(ctx, cfg.Seed.AdminUsername); err != nil {
		log.Fatal().Err(err).Msg("buscar admin")
	} else if existing != nil {
		adminID = existing.ID
	} else {
		created, err := authUC.RegisterUser(ctx, entity.RoleAdmin, dto.RegisterRequest{
			Username: cfg.Seed.AdminUsername,
			Password: cfg.Seed.AdminPassword,
			Name:     "Administrador",
			Role:     entity.RoleAdmin,
			StaffID:  staffID,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("crear admin")
		}
		adminID = created.ID
		log.Info().Str("id", created.ID).Msg("usuario admin creado")
	}
	actor := inventory.Actor{UserID: adminID, StaffID: staffID, Role: entity.RoleAdmin}

	// 4. Categorías
	categoryIDs := make(map[string]string, len(categories))
	for _, in := range categories {
		existing, err := repos.Categories.GetByName(ctx, in.Name)
		if err != nil {
			log.Fatal().Err(err).Str("name", in.Name).Msg("buscar categoría")
		}
		if existing != nil {
			categoryIDs[in.Name] = existing.ID
			continue
		}
		created, err := categoryUC.Create(ctx, in)
		if err != nil {
			log.Fatal().Err(err).Str("name", in.Name).Msg("crear categoría")
		}
		categoryIDs[in.Name] = created.ID
	}

	// 5. Productos y movimientos iniciales
	var createdProducts, movements int
	for _, sp := range products {
		existing, err := repos.Products.GetByInstitutionAndCode(ctx, mainInstitution, sp.code)
		if err != nil {
			log.Fatal().Err(err).Str("code", sp.code).Msg("buscar producto")
		}
		if existing != nil {
			continue
		}
		created, err := productUC.Create(ctx, dto.CreateProductRequest{
			InstitutionID:   mainInstitution,
			CategoryID:      categoryIDs[sp.category],
			Code:            sp.code,
			Name:            sp.name,
			MinimumQuantity: sp.minimum,
			UnitPrice:       decimal.RequireFromString(sp.price),
		})
		if err != nil {
			log.Fatal().Err(err).Str("code", sp.code).Msg("crear producto")
		}
		createdProducts++

		if _, err := applyUC.Receive(ctx, actor, created.ID, sp.initial, "Carga inicial", "seed"); err != nil {
			log.Fatal().Err(err).Str("code", sp.code).Msg("entrada inicial")
		}
		movements++
		if sp.withdraw > 0 {
			if _, err := applyUC.Withdraw(ctx, actor, created.ID, sp.withdraw, "Consumo interno", ""); err != nil {
				log.Fatal().Err(err).Str("code", sp.code).Msg("salida de ejemplo")
			}
			movements++
		}
	}

	log.Info().
		Int("institutions", len(institutionIDs)).
		Int("products_created", createdProducts).
		Int("movements", movements).
		Msg("seed completado")
}
