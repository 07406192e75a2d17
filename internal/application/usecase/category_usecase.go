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

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría con nombre único.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" {
		v := domain.NewValidationError()
		v.Add("name", "el nombre es obligatorio")
		return nil, v
	}
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	cat := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Active:      in.Active == nil || *in.Active,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	cat, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, nil
	}
	return toCategoryResponse(cat), nil
}

// Update actualiza nombre, descripción y estado. Devuelve nil, nil si no existe.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		v := domain.NewValidationError()
		v.Add("name", "el nombre es obligatorio")
		return nil, v
	}
	cat, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, nil
	}
	if in.Name != cat.Name {
		other, err := uc.repo.GetByName(ctx, in.Name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != cat.ID {
			return nil, domain.ErrDuplicate
		}
	}
	cat.Name = in.Name
	cat.Description = strings.TrimSpace(in.Description)
	if in.Active != nil {
		cat.Active = *in.Active
	}
	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// List lista categorías ordenadas por nombre (solo activas salvo includeInactive).
func (uc *CategoryUseCase) List(ctx context.Context, includeInactive bool) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Delete elimina la categoría; sus productos quedan sin categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	cat, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}
