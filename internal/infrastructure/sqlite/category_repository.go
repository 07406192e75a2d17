package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/almoxarifado-api/internal/domain"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
	"github.com/jhoicas/almoxarifado-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre SQLite.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar *sql.DB o *sql.Tx.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO categories (id, name, description, active, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, c.Active, toMillis(c.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT id, name, description, active, created_at FROM categories WHERE id = ?`, id)
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT id, name, description, active, created_at FROM categories WHERE name = ?`, name)
}

func (r *CategoryRepo) getOne(ctx context.Context, query, arg string) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE categories SET name = ?, description = ?, active = ? WHERE id = ?`,
		c.Name, c.Description, c.Active, c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return requireAffected(res)
}

func (r *CategoryRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Category, error) {
	query := `SELECT id, name, description, active, created_at FROM categories`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	rows, err := r.q.QueryContext(ctx, query+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete elimina la categoría; products.category_id queda en NULL.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireAffected(res)
}

func scanCategory(row scanner) (*entity.Category, error) {
	var c entity.Category
	var createdAt int64
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Active, &createdAt); err != nil {
		return nil, err
	}
	c.CreatedAt = fromMillis(createdAt)
	return &c, nil
}
