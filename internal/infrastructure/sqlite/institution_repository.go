package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/almoxarifado-api/internal/domain"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
	"github.com/jhoicas/almoxarifado-api/internal/domain/repository"
	"github.com/jhoicas/almoxarifado-api/pkg/textnorm"
)

var _ repository.InstitutionRepository = (*InstitutionRepo)(nil)

const institutionColumns = `id, name, cep, street, number, district, city, state, phone, cnpj, active, created_at`

// InstitutionRepo implementación del puerto InstitutionRepository sobre SQLite.
type InstitutionRepo struct {
	q Querier
}

// NewInstitutionRepository construye el adaptador. Pasar *sql.DB o *sql.Tx.
func NewInstitutionRepository(q Querier) *InstitutionRepo {
	return &InstitutionRepo{q: q}
}

// Create persiste una nueva institución.
func (r *InstitutionRepo) Create(ctx context.Context, inst *entity.Institution) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO institutions (id, name, cep, street, number, district, city, state, phone, cnpj, active, search_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inst.ID, inst.Name, inst.CEP, inst.Street, inst.Number, inst.District, inst.City, inst.State,
		inst.Phone, inst.CNPJ, inst.Active, textnorm.Key(inst.Name, inst.CNPJ), toMillis(inst.CreatedAt),
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
	return r.getOne(ctx, `SELECT `+institutionColumns+` FROM institutions WHERE id = ?`, id)
}

// GetByCNPJ obtiene una institución por CNPJ.
func (r *InstitutionRepo) GetByCNPJ(ctx context.Context, cnpj string) (*entity.Institution, error) {
	return r.getOne(ctx, `SELECT `+institutionColumns+` FROM institutions WHERE cnpj = ?`, cnpj)
}

func (r *InstitutionRepo) getOne(ctx context.Context, query, arg string) (*entity.Institution, error) {
	inst, err := scanInstitution(r.q.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get institution: %w", err)
	}
	return inst, nil
}

// Update actualiza los datos de la institución.
func (r *InstitutionRepo) Update(ctx context.Context, inst *entity.Institution) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE institutions SET name = ?, cep = ?, street = ?, number = ?, district = ?, city = ?,
		       state = ?, phone = ?, cnpj = ?, active = ?, search_key = ?
		WHERE id = ?`,
		inst.Name, inst.CEP, inst.Street, inst.Number, inst.District, inst.City, inst.State,
		inst.Phone, inst.CNPJ, inst.Active, textnorm.Key(inst.Name, inst.CNPJ), inst.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update institution: %w", err)
	}
	return requireAffected(res)
}

// List lista instituciones por nombre con búsqueda opcional en nombre y CNPJ.
func (r *InstitutionRepo) List(ctx context.Context, query string, limit, offset int) ([]*entity.Institution, int, error) {
	var w whereBuilder
	if query != "" {
		w.add(`search_key LIKE ? ESCAPE '\'`, textnorm.LikePattern(query))
	}
	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM institutions`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count institutions: %w", err)
	}
	lim, limArgs := limitClause(limit, offset)
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+institutionColumns+` FROM institutions`+w.sql()+` ORDER BY name, id`+lim,
		append(w.args, limArgs...)...)
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
	res, err := r.q.ExecContext(ctx, `DELETE FROM institutions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete institution: %w", err)
	}
	return requireAffected(res)
}

func scanInstitution(row scanner) (*entity.Institution, error) {
	var i entity.Institution
	var createdAt int64
	err := row.Scan(&i.ID, &i.Name, &i.CEP, &i.Street, &i.Number, &i.District, &i.City, &i.State,
		&i.Phone, &i.CNPJ, &i.Active, &createdAt)
	if err != nil {
		return nil, err
	}
	i.CreatedAt = fromMillis(createdAt)
	return &i, nil
}

// requireAffected devuelve domain.ErrNotFound si la sentencia no tocó ninguna fila.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
