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

var _ repository.StaffRepository = (*StaffRepo)(nil)

const staffColumns = `id, name, birth_date, email, phone, institution_id, active, created_at`

// StaffRepo implementación del puerto StaffRepository sobre PostgreSQL.
type StaffRepo struct {
	q Querier
}

// NewStaffRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStaffRepository(q Querier) *StaffRepo {
	return &StaffRepo{q: q}
}

// Create persiste un nuevo funcionario.
func (r *StaffRepo) Create(ctx context.Context, s *entity.StaffMember) error {
	query := `
		INSERT INTO staff_members (id, name, birth_date, email, phone, institution_id, active, search_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.BirthDate, s.Email, s.Phone, s.InstitutionID, s.Active, staffKey(s), s.CreatedAt,
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
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff_members WHERE id = $1`, id)
}

// GetByEmail obtiene un funcionario por email.
func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (*entity.StaffMember, error) {
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff_members WHERE email = $1`, email)
}

func (r *StaffRepo) getOne(ctx context.Context, query, arg string) (*entity.StaffMember, error) {
	s, err := scanStaff(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return s, nil
}

// Update actualiza los datos del funcionario.
func (r *StaffRepo) Update(ctx context.Context, s *entity.StaffMember) error {
	query := `
		UPDATE staff_members SET name = $2, birth_date = $3, email = $4, phone = $5, institution_id = $6,
		       active = $7, search_key = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.BirthDate, s.Email, s.Phone, s.InstitutionID, s.Active, staffKey(s),
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
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista funcionarios por nombre con búsqueda en nombre, email y teléfono.
func (r *StaffRepo) List(ctx context.Context, query string, limit, offset int) ([]*entity.StaffMember, int, error) {
	var w whereBuilder
	if query != "" {
		w.add(`search_key LIKE $%[1]d ESCAPE '\'`, textnorm.LikePattern(query))
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM staff_members`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count staff: %w", err)
	}
	sql := fmt.Sprintf(`SELECT %s FROM staff_members%s ORDER BY name, id LIMIT $%d OFFSET $%d`,
		staffColumns, w.sql(), w.next(), w.next()+1)
	rows, err := r.q.Query(ctx, sql, append(w.args, limitArg(limit), offset)...)
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
	cmd, err := r.q.Exec(ctx, `DELETE FROM staff_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanStaff(row pgx.Row) (*entity.StaffMember, error) {
	var s entity.StaffMember
	if err := row.Scan(&s.ID, &s.Name, &s.BirthDate, &s.Email, &s.Phone, &s.InstitutionID, &s.Active, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func staffKey(s *entity.StaffMember) string {
	return textnorm.Key(s.Name, s.Email, s.Phone)
}
