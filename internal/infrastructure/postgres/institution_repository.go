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

var _ repository.InstitutionRepository = (*InstitutionRepo)(nil)

const institutionColumns = `id, name, cep, street, number, district, city, state, phone, cnpj, active, created_at`

// InstitutionRepo implementación del puerto InstitutionRepository sobre PostgreSQL.
type InstitutionRepo struct {
	q Querier
}

// NewInstitutionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInstitutionRepository(q Querier) *InstitutionRepo {
	return &InstitutionRepo{q: q}
}

// Create persiste una nueva institución.
func (r *InstitutionRepo) Create(ctx context.Context, inst *entity.Institution) error {
	query := `
		INSERT INTO institutions (id, name, cep, street, number, district, city, state, phone, cnpj, active, search_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		inst.ID, inst.Name, inst.CEP, inst.Street, inst.Number, inst.District, inst.City, inst.State,
		inst.Phone, inst.CNPJ, inst.Active, institutionKey(inst), inst.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert institution: %w", err)
	}
	return nil
}

// GetByID obtiene una institución por ID.
func (r *InstitutionRepo) GetByID(ctx context.Context, id string) (*entity.Institution, error) {
	return r.getOne(ctx, `SELECT `+institutionColumns+` FROM institutions WHERE id = $1`, id)
}

// GetByCNPJ obtiene una institución por CNPJ.
func (r *InstitutionRepo) GetByCNPJ(ctx context.Context, cnpj string) (*entity.Institution, error) {
	return r.getOne(ctx, `SELECT `+institutionColumns+` FROM institutions WHERE cnpj = $1`, cnpj)
}

func (r *InstitutionRepo) getOne(ctx context.Context, query string, arg string) (*entity.Institution, error) {
	inst, err := scanInstitution(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get institution: %w", err)
	}
	return inst, nil
}

// Update actualiza los datos de la institución.
func (r *InstitutionRepo) Update(ctx context.Context, inst *entity.Institution) error {
	query := `
		UPDATE institutions SET name = $2, cep = $3, street = $4, number = $5, district = $6, city = $7,
		       state = $8, phone = $9, cnpj = $10, active = $11, search_key = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		inst.ID, inst.Name, inst.CEP, inst.Street, inst.Number, inst.District, inst.City, inst.State,
		inst.Phone, inst.CNPJ, inst.Active, institutionKey(inst),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update institution: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista instituciones por nombre con búsqueda opcional en nombre y CNPJ.
func (r *InstitutionRepo) List(ctx context.Context, query string, limit, offset int) ([]*entity.Institution, int, error) {
	var w whereBuilder
	if query != "" {
		w.add(`search_key LIKE $%[1]d ESCAPE '\'`, textnorm.LikePattern(query))
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM institutions`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count institutions: %w", err)
	}
	sql := fmt.Sprintf(`SELECT %s FROM institutions%s ORDER BY name, id LIMIT $%d OFFSET $%d`,
		institutionColumns, w.sql(), w.next(), w.next()+1)
	rows, err := r.q.Query(ctx, sql, append(w.args, limitArg(limit), offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list institutions: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Institution, 0)
	for rows.Next() {
		inst, err := scanInstitution(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan institution: %w", err)
		}
		list = append(list, inst)
	}
	return list, total, rows.Err()
}

// Delete elimina la institución; funcionarios y productos caen por ON DELETE CASCADE.
func (r *InstitutionRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM institutions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete institution: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInstitution(row pgx.Row) (*entity.Institution, error) {
	var i entity.Institution
	err := row.Scan(&i.ID, &i.Name, &i.CEP, &i.Street, &i.Number, &i.District, &i.City, &i.State,
		&i.Phone, &i.CNPJ, &i.Active, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func institutionKey(i *entity.Institution) string {
	return textnorm.Key(i.Name, i.CNPJ)
}
