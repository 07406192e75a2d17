package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almoxarifado-api/internal/domain"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
	"github.com/jhoicas/almoxarifado-api/internal/domain/repository"
	"github.com/jhoicas/almoxarifado-api/pkg/textnorm"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementViewSelect = `
	SELECT m.id, m.product_id, m.kind, m.quantity, m.previous_quantity, m.new_quantity, m.reason, m.notes,
	       m.staff_id, m.created_by, m.created_at, p.code, p.name, COALESCE(s.name, '')
	FROM movements m
	JOIN products p ON p.id = m.product_id
	LEFT JOIN staff_members s ON s.id = m.staff_id`

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx). Solo inserta y consulta.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, product_id, kind, quantity, previous_quantity, new_quantity, reason, notes,
		                       reason_key, staff_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Kind, m.Quantity, m.PreviousQuantity, m.NewQuantity, m.Reason, m.Notes,
		textnorm.Fold(m.Reason), nullable(m.StaffID), m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento con datos de producto y funcionario.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.MovementView, error) {
	m, err := scanMovementView(r.q.QueryRow(ctx, movementViewSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List lista movimientos del más reciente al más antiguo.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.MovementView, int, error) {
	w := movementWhere(f)
	var total int
	countSQL := `SELECT COUNT(*) FROM movements m JOIN products p ON p.id = m.product_id` + w.sql()
	if err := r.q.QueryRow(ctx, countSQL, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}
	sql := fmt.Sprintf(`%s%s ORDER BY m.created_at DESC, m.id DESC LIMIT $%d OFFSET $%d`,
		movementViewSelect, w.sql(), w.next(), w.next()+1)
	rows, err := r.q.Query(ctx, sql, append(w.args, limitArg(limit), offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.MovementView, 0)
	for rows.Next() {
		m, err := scanMovementView(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// movementWhere arma el WHERE de movimientos (alias m) unidos a productos (alias p).
func movementWhere(f repository.MovementFilter) whereBuilder {
	var w whereBuilder
	if f.Query != "" {
		w.add(`(p.search_key LIKE $%[1]d ESCAPE '\' OR m.reason_key LIKE $%[1]d ESCAPE '\')`, textnorm.LikePattern(f.Query))
	}
	if f.Kind != "" {
		w.add(`m.kind = $%[1]d`, f.Kind)
	}
	if f.ProductID != "" {
		w.add(`m.product_id = $%[1]d`, f.ProductID)
	}
	if f.From != nil {
		w.add(`m.created_at >= $%[1]d`, *f.From)
	}
	if f.To != nil {
		w.add(`m.created_at <= $%[1]d`, *f.To)
	}
	return w
}

func scanMovementView(row pgx.Row) (*entity.MovementView, error) {
	var m entity.MovementView
	var staffID *string
	err := row.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.PreviousQuantity, &m.NewQuantity,
		&m.Reason, &m.Notes, &staffID, &m.CreatedBy, &m.CreatedAt, &m.ProductCode, &m.ProductName, &m.StaffName)
	if err != nil {
		return nil, err
	}
	m.StaffID = deref(staffID)
	return &m, nil
}
