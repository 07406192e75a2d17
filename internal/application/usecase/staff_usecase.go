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

// StaffUseCase casos de uso CRUD para funcionarios.
type StaffUseCase struct {
	repo            repository.StaffRepository
	institutionRepo repository.InstitutionRepository
}

// NewStaffUseCase construye el caso de uso.
func NewStaffUseCase(repo repository.StaffRepository, institutionRepo repository.InstitutionRepository) *StaffUseCase {
	return &StaffUseCase{repo: repo, institutionRepo: institutionRepo}
}

// Create crea un funcionario. La institución debe existir y el email ser único.
func (uc *StaffUseCase) Create(ctx context.Context, in dto.StaffRequest) (*dto.StaffResponse, error) {
	in = trimStaff(in)
	birth, err := uc.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	staff := &entity.StaffMember{
		ID:            uuid.New().String(),
		Name:          in.Name,
		BirthDate:     birth,
		Email:         in.Email,
		Phone:         in.Phone,
		InstitutionID: in.InstitutionID,
		Active:        in.Active == nil || *in.Active,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return toStaffResponse(staff), nil
}

// GetByID obtiene un funcionario por ID.
func (uc *StaffUseCase) GetByID(ctx context.Context, id string) (*dto.StaffResponse, error) {
	staff, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, nil
	}
	return toStaffResponse(staff), nil
}

// Update reemplaza los datos del funcionario. Devuelve nil, nil si no existe.
func (uc *StaffUseCase) Update(ctx context.Context, id string, in dto.StaffRequest) (*dto.StaffResponse, error) {
	in = trimStaff(in)
	birth, err := uc.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	staff, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, nil
	}
	if !strings.EqualFold(in.Email, staff.Email) {
		other, err := uc.repo.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != staff.ID {
			return nil, domain.ErrDuplicate
		}
	}
	staff.Name = in.Name
	staff.BirthDate = birth
	staff.Email = in.Email
	staff.Phone = in.Phone
	staff.InstitutionID = in.InstitutionID
	if in.Active != nil {
		staff.Active = *in.Active
	}
	if err := uc.repo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return toStaffResponse(staff), nil
}

// List lista funcionarios ordenados por nombre; q busca en nombre, email y teléfono.
func (uc *StaffUseCase) List(ctx context.Context, query string, page dto.PageRequest) (*dto.StaffListResponse, error) {
	page.Normalize()
	list, total, err := uc.repo.List(ctx, strings.TrimSpace(query), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StaffResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStaffResponse(s))
	}
	return &dto.StaffListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina un funcionario. Sus movimientos quedan sin funcionario asociado.
func (uc *StaffUseCase) Delete(ctx context.Context, id string) error {
	staff, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if staff == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *StaffUseCase) validate(ctx context.Context, in dto.StaffRequest) (time.Time, error) {
	v := domain.NewValidationError()
	if in.Name == "" {
		v.Add("name", "el nombre es obligatorio")
	}
	var birth time.Time
	if in.BirthDate == "" {
		v.Add("birth_date", "la fecha de nacimiento es obligatoria")
	} else {
		t, err := time.Parse(time.DateOnly, in.BirthDate)
		if err != nil {
			v.Add("birth_date", "formato esperado YYYY-MM-DD")
		} else if t.After(time.Now()) {
			v.Add("birth_date", "no puede ser futura")
		}
		birth = t
	}
	if in.Email == "" {
		v.Add("email", "el email es obligatorio")
	} else if err := validation.ValidateEmail(in.Email); err != nil {
		v.Add("email", err.Error())
	}
	if in.InstitutionID == "" {
		v.Add("institution_id", "la institución es obligatoria")
	} else {
		inst, err := uc.institutionRepo.GetByID(ctx, in.InstitutionID)
		if err != nil {
			return birth, err
		}
		if inst == nil {
			v.Add("institution_id", "institución no encontrada")
		}
	}
	return birth, v.OrNil()
}

func trimStaff(in dto.StaffRequest) dto.StaffRequest {
	in.Name = strings.TrimSpace(in.Name)
	in.BirthDate = strings.TrimSpace(in.BirthDate)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.InstitutionID = strings.TrimSpace(in.InstitutionID)
	return in
}

func toStaffResponse(s *entity.StaffMember) *dto.StaffResponse {
	if s == nil {
		return nil
	}
	return &dto.StaffResponse{
		ID:            s.ID,
		Name:          s.Name,
		BirthDate:     s.BirthDate.Format(time.DateOnly),
		Email:         s.Email,
		Phone:         s.Phone,
		InstitutionID: s.InstitutionID,
		Active:        s.Active,
		CreatedAt:     s.CreatedAt,
	}
}
