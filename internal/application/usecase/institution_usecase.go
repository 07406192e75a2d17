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
	"github.com/jhoicas/almoxarifado-api/internal/domain/validation"
)

// InstitutionUseCase casos de uso CRUD para instituciones.
type InstitutionUseCase struct {
	repo repository.InstitutionRepository
}

// NewInstitutionUseCase construye el caso de uso.
func NewInstitutionUseCase(repo repository.InstitutionRepository) *InstitutionUseCase {
	return &InstitutionUseCase{repo: repo}
}

// Create crea una institución. El CNPJ se normaliza con máscara y debe ser único.
func (uc *InstitutionUseCase) Create(ctx context.Context, in dto.InstitutionRequest) (*dto.InstitutionResponse, error) {
	in = trimInstitution(in)
	if err := validateInstitution(in); err != nil {
		return nil, err
	}
	cnpj := validation.FormatCNPJ(in.CNPJ)
	existing, err := uc.repo.GetByCNPJ(ctx, cnpj)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	inst := &entity.Institution{
		ID:        uuid.New().String(),
		CNPJ:      cnpj,
		Active:    in.Active == nil || *in.Active,
		CreatedAt: time.Now().UTC(),
	}
	applyInstitution(inst, in)
	if err := uc.repo.Create(ctx, inst); err != nil {
		return nil, err
	}
	return toInstitutionResponse(inst), nil
}

// GetByID obtiene una institución por ID.
func (uc *InstitutionUseCase) GetByID(ctx context.Context, id string) (*dto.InstitutionResponse, error) {
	inst, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, nil
	}
	return toInstitutionResponse(inst), nil
}

// Update reemplaza los datos de la institución. Devuelve nil, nil si no existe.
func (uc *InstitutionUseCase) Update(ctx context.Context, id string, in dto.InstitutionRequest) (*dto.InstitutionResponse, error) {
	in = trimInstitution(in)
	if err := validateInstitution(in); err != nil {
		return nil, err
	}
	inst, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, nil
	}
	cnpj := validation.FormatCNPJ(in.CNPJ)
	if cnpj != inst.CNPJ {
		other, err := uc.repo.GetByCNPJ(ctx, cnpj)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != inst.ID {
			return nil, domain.ErrDuplicate
		}
	}
	inst.CNPJ = cnpj
	applyInstitution(inst, in)
	if in.Active != nil {
		inst.Active = *in.Active
	}
	if err := uc.repo.Update(ctx, inst); err != nil {
		return nil, err
	}
	return toInstitutionResponse(inst), nil
}

// List lista instituciones ordenadas por nombre; q busca en nombre y CNPJ.
func (uc *InstitutionUseCase) List(ctx context.Context, query string, page dto.PageRequest) (*dto.InstitutionListResponse, error) {
	page.Normalize()
	list, total, err := uc.repo.List(ctx, strings.TrimSpace(query), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InstitutionResponse, 0, len(list))
	for _, inst := range list {
		items = append(items, *toInstitutionResponse(inst))
	}
	return &dto.InstitutionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina la institución con sus funcionarios y productos.
func (uc *InstitutionUseCase) Delete(ctx context.Context, id string) error {
	inst, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inst == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func trimInstitution(in dto.InstitutionRequest) dto.InstitutionRequest {
	in.Name = strings.TrimSpace(in.Name)
	in.CEP = strings.TrimSpace(in.CEP)
	in.Street = strings.TrimSpace(in.Street)
	in.Number = strings.TrimSpace(in.Number)
	in.District = strings.TrimSpace(in.District)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.ToUpper(strings.TrimSpace(in.State))
	in.Phone = strings.TrimSpace(in.Phone)
	in.CNPJ = strings.TrimSpace(in.CNPJ)
	return in
}

func validateInstitution(in dto.InstitutionRequest) error {
	v := domain.NewValidationError()
	if in.Name == "" {
		v.Add("name", "el nombre es obligatorio")
	}
	if in.CNPJ == "" {
		v.Add("cnpj", "el CNPJ es obligatorio")
	} else if err := validation.ValidateCNPJ(in.CNPJ); err != nil {
		v.Add("cnpj", err.Error())
	}
	if in.CEP != "" {
		if err := validation.ValidateCEP(in.CEP); err != nil {
			v.Add("cep", err.Error())
		}
	}
	if in.State != "" {
		if err := validation.ValidateState(in.State); err != nil {
			v.Add("state", err.Error())
		}
	}
	return v.OrNil()
}

func applyInstitution(inst *entity.Institution, in dto.InstitutionRequest) {
	inst.Name = in.Name
	inst.CEP = in.CEP
	inst.Street = in.Street
	inst.Number = in.Number
	inst.District = in.District
	inst.City = in.City
	inst.State = in.State
	inst.Phone = in.Phone
}

func toInstitutionResponse(i *entity.Institution) *dto.InstitutionResponse {
	if i == nil {
		return nil
	}
	return &dto.InstitutionResponse{
		ID:        i.ID,
		Name:      i.Name,
		CEP:       i.CEP,
		Street:    i.Street,
		Number:    i.Number,
		District:  i.District,
		City:      i.City,
		State:     i.State,
		Phone:     i.Phone,
		CNPJ:      i.CNPJ,
		Active:    i.Active,
		CreatedAt: i.CreatedAt,
	}
}
