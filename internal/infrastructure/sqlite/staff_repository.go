package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/almoxarifado-api/internal/domain"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
	"github.com/jhoicas/almoxarifado-api/internal/domain/repository"
	"github.com/jhoicas/almoxarifado-api/pkg/textnorm"
)

var _ repository.StaffRepository = (*StaffRepo)(nil)

const staffColumns = `id, name, birth_date, email, phone, institution_id, active, created_at`

// StaffRepo implementación del puerto StaffRepository sobre SQLite.
type StaffRepo struct {
	q Querier
}

// NewStaffRepository construye el adaptador. Pasar *sql.DB o *sql.Tx.
func NewStaffRepository(q Querier) *StaffRepo {
	return &StaffRepo{q: q}
}

// Create persiste un nuevo funcionario.
func (r *StaffRepo) Create(ctx context.Context, s *entity.StaffMember) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO staff_members (id, name, birth_date, email, phone, institution_id, active, search_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.BirthDate.Format(time.DateOnly), s.Email, s.Phone, s.InstitutionID, s.Active,
		textnorm.Key(s.Name, s.Email, s.Phone), toMillis(s.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert staff: %w", err)
	}
	return nil
}

// GetByID obtiene un funcionario por ID.
func (r *StaffRepo) GetByID(ctx context.Context, id string) (*entity.StaffMember, error) {
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff_members WHERE id = ?`, id)
}

// GetByEmail obtiene un funcionario por email.
func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (*entity.StaffMember, error) {
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff_members WHERE email = ?`, email)
}

func (r *StaffRepo) getOne(ctx context.Context, query, arg string) (*entity.StaffMember, error) {
	s, err := scanStaff(r.q.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return s, nil
}

// Update actualiza los datos del funcionario.
func (r *StaffRepo) Update(ctx context.Context, s *entity.StaffMember) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE staff_members SET name = ?, birth_date = ?, email = ?, phone = ?, institution_id = ?,
		       active = ?, search_key = ?
		WHERE id = ?`,
		s.Name, s.BirthDate.Format(time.DateOnly), s.Email, s.Phone, s.InstitutionID, s.Active,
		textnorm.Key(s.Name, s.Email, s.Phone), s.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update staff: %w", err)
	}
	return requireAffected(res)
}

// List lista funcionarios por nombre con búsqueda en nombre, email y teléfono.
func (r *StaffRepo) List(ctx context.Context, query string, limit, offset int) ([]*entity.StaffMember, int, error) {
	var w whereBuilder
	if query != "" {
		w.add(`search_key LIKE ? ESCAPE '\'`, textnorm.LikePattern(query))
	}
	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff_members`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count staff: %w", err)
	}
	lim, limArgs := limitClause(limit, offset)
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+staffColumns+` FROM staff_members`+w.sql()+` ORDER BY name, id`+lim,
		append(w.args, limArgs...)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StaffMember, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan staff: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// Delete elimina el funcionario; movements.staff_id y users.staff_id quedan en NULL.
func (r *StaffRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM staff_members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	return requireAffected(res)
}

func scanStaff(row scanner) (*entity.StaffMember, error) {
	var s entity.StaffMember
	var birth string
	var createdAt int64
	if err := row.Scan(&s.ID, &s.Name, &birth, &s.Email, &s.Phone, &s.InstitutionID, &s.Active, &createdAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.DateOnly, birth)
	if err != nil {
		return nil, fmt.Errorf("birth_date %q: %w", birth, err)
	}
	s.BirthDate = t
	s.CreatedAt = fromMillis(createdAt)
	return &s, nil
}
