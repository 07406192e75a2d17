package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/domain"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
	"github.com/jhoicas/almoxarifado-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. CurrentQuantity se maneja vía movimientos.
type ProductUseCase struct {
	repo            repository.ProductRepository
	institutionRepo repository.InstitutionRepository
	categoryRepo    repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	institutionRepo repository.InstitutionRepository,
	categoryRepo repository.CategoryRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, institutionRepo: institutionRepo, categoryRepo: categoryRepo}
}

// Create crea un producto con stock 0. El código es único por institución; una categoría
// inexistente se ignora y el producto queda sin categoría.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.InstitutionID = strings.TrimSpace(in.InstitutionID)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	v := domain.NewValidationError()
	if in.Code == "" {
		v.Add("code", "el código es obligatorio")
	}
	if in.Name == "" {
		v.Add("name", "el nombre es obligatorio")
	}
	if in.MinimumQuantity < 0 {
		v.Add("minimum_quantity", "no puede ser negativa")
	}
	if in.UnitPrice.IsNegative() {
		v.Add("unit_price", "no puede ser negativo")
	}
	if in.InstitutionID == "" {
		v.Add("institution_id", "la institución es obligatoria")
	} else {
		inst, err := uc.institutionRepo.GetByID(ctx, in.InstitutionID)
		if err != nil {
			return nil, err
		}
		if inst == nil {
			v.Add("institution_id", "institución no encontrada")
		}
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByInstitutionAndCode(ctx, in.InstitutionID, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	categoryID, err := uc.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:              uuid.New().String(),
		InstitutionID:   in.InstitutionID,
		CategoryID:      categoryID,
		Code:            in.Code,
		Name:            in.Name,
		Description:     in.Description,
		MinimumQuantity: in.MinimumQuantity,
		CurrentQuantity: 0,
		UnitPrice:       in.UnitPrice.Round(2),
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto activo por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, nil
	}
	return ToProductResponse(product), nil
}

// Update actualiza campos descriptivos. No permite modificar la cantidad actual.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, nil
	}
	v := domain.NewValidationError()
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			v.Add("name", "el nombre es obligatorio")
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.MinimumQuantity != nil {
		if *in.MinimumQuantity < 0 {
			v.Add("minimum_quantity", "no puede ser negativa")
		}
		product.MinimumQuantity = *in.MinimumQuantity
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			v.Add("unit_price", "no puede ser negativo")
		}
		product.UnitPrice = in.UnitPrice.Round(2)
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		categoryID, err := uc.resolveCategory(ctx, strings.TrimSpace(*in.CategoryID))
		if err != nil {
			return nil, err
		}
		product.CategoryID = categoryID
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List lista productos activos con búsqueda, filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.Normalize()
	filter := repository.ProductFilter{
		Query:         strings.TrimSpace(in.Query),
		InstitutionID: strings.TrimSpace(in.InstitutionID),
		CategoryID:    strings.TrimSpace(in.CategoryID),
		LowStockOnly:  in.LowStockOnly,
	}
	list, total, err := uc.repo.List(ctx, filter, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: ToProductResponses(list),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete desactiva el producto (soft delete); su historial de movimientos se conserva.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil || !product.Active {
		return domain.ErrNotFound
	}
	product.Active = false
	product.UpdatedAt = time.Now().UTC()
	return uc.repo.Update(ctx, product)
}

func (uc *ProductUseCase) resolveCategory(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	cat, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if cat == nil {
		return "", nil
	}
	return cat.ID, nil
}

// ToProductResponse mapea un producto con sus campos derivados (valor en stock, stock bajo).
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		InstitutionID:   p.InstitutionID,
		CategoryID:      p.CategoryID,
		Code:            p.Code,
		Name:            p.Name,
		Description:     p.Description,
		MinimumQuantity: p.MinimumQuantity,
		CurrentQuantity: p.CurrentQuantity,
		UnitPrice:       p.UnitPrice,
		StockValue:      p.StockValue().Round(2),
		LowStock:        p.IsLowStock(),
		Active:          p.Active,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToProductResponses mapea una lista; nunca devuelve nil.
func ToProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *ToProductResponse(p))
	}
	return out
}

