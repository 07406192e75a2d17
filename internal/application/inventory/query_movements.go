package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/domain"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
	"github.com/jhoicas/almoxarifado-api/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el historial de movimientos.
type MovementQueryUseCase struct {
	repo repository.MovementRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(repo repository.MovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{repo: repo}
}

// GetByID devuelve el detalle de un movimiento; nil, nil si no existe.
func (uc *MovementQueryUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	out := ToMovementResponse(m)
	return &out, nil
}

// List lista movimientos con filtros y paginación, del más reciente al más antiguo.
func (uc *MovementQueryUseCase) List(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	filter, err := MovementFilterFrom(in.Query, in.Kind, in.ProductID, in.From, in.To)
	if err != nil {
		return nil, err
	}
	in.Normalize()
	list, total, err := uc.repo.List(ctx, filter, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Items: ToMovementResponses(list),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// MovementFilterFrom arma el filtro de repositorio desde parámetros de query.
// from/to aceptan RFC3339 o YYYY-MM-DD; en este último caso to incluye el día completo.
func MovementFilterFrom(query, kind, productID, from, to string) (repository.MovementFilter, error) {
	f := repository.MovementFilter{
		Query:     strings.TrimSpace(query),
		Kind:      strings.TrimSpace(kind),
		ProductID: strings.TrimSpace(productID),
	}
	v := domain.NewValidationError()
	if f.Kind != "" && !entity.ValidMovementKind(f.Kind) {
		v.Add("kind", "tipo inválido (receipt, withdrawal, adjustment)")
	}
	if from != "" {
		if t, _, err := parseTime(from); err != nil {
			v.Add("from", "fecha inválida")
		} else {
			f.From = &t
		}
	}
	if to != "" {
		t, dateOnly, err := parseTime(to)
		if err != nil {
			v.Add("to", "fecha inválida")
		} else {
			if dateOnly {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			f.To = &t
		}
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		v.Add("to", "debe ser posterior a from")
	}
	return f, v.OrNil()
}

func parseTime(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UTC(), true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t.UTC(), false, err
}

// ToMovementResponse mapea un movimiento con sus datos de producto y funcionario.
func ToMovementResponse(m *entity.MovementView) dto.MovementResponse {
	return dto.MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		ProductCode:      m.ProductCode,
		ProductName:      m.ProductName,
		Kind:             m.Kind,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Reason:           m.Reason,
		Notes:            m.Notes,
		StaffID:          m.StaffID,
		StaffName:        m.StaffName,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
	}
}

// ToMovementResponses mapea una lista; nunca devuelve nil.
func ToMovementResponses(list []*entity.MovementView) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out
}
