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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, institution_id, category_id, code, name, description, minimum_quantity,
	current_quantity, unit_price, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre SQLite (usable con *sql.DB o *sql.Tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. unit_price se guarda como texto decimal.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO products (id, institution_id, category_id, code, name, description, minimum_quantity,
		                      current_quantity, unit_price, active, search_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.InstitutionID, nullable(p.CategoryID), p.Code, p.Name, p.Description, p.MinimumQuantity,
		p.CurrentQuantity, p.UnitPrice.StringFixed(2), p.Active, textnorm.Key(p.Name, p.Code),
		toMillis(p.CreatedAt), toMillis(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
}

func (r *ProductRepo) GetByInstitutionAndCode(ctx context.Context, institutionID, code string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE institution_id = ? AND code = ?`, institutionID, code)
}

// GetForUpdate lee el producto dentro de la tx. SQLite no tiene FOR UPDATE: el lock de escritura
// ya lo tomó BEGIN IMMEDIATE al abrir la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza datos descriptivos y el estado. No modifica current_quantity.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE products SET category_id = ?, name = ?, description = ?, minimum_quantity = ?,
		       unit_price = ?, active = ?, search_key = ?, updated_at = ?
		WHERE id = ?`,
		nullable(p.CategoryID), p.Name, p.Description, p.MinimumQuantity, p.UnitPrice.StringFixed(2),
		p.Active, textnorm.Key(p.Name, p.Code), toMillis(p.UpdatedAt), p.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update product: %w", err)
	}
	return requireAffected(res)
}

// UpdateQuantity actualiza solo la cantidad actual (usado por el motor de movimientos).
func (r *ProductRepo) UpdateQuantity(ctx context.Context, productID string, quantity int64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE products SET current_quantity = ?, updated_at = ? WHERE id = ?`,
		quantity, toMillis(time.Now()), productID,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return requireAffected(res)
}

// List lista productos por nombre aplicando el filtro.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	var w whereBuilder
	if !f.IncludeInactive {
		w.add(`active = 1`)
	}
	if f.Query != "" {
		w.add(`search_key LIKE ? ESCAPE '\'`, textnorm.LikePattern(f.Query))
	}
	if f.InstitutionID != "" {
		w.add(`institution_id = ?`, f.InstitutionID)
	}
	if f.CategoryID != "" {
		w.add(`category_id = ?`, f.CategoryID)
	}
	if f.LowStockOnly {
		w.add(`current_quantity <= minimum_quantity`)
	}
	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	lim, limArgs := limitClause(limit, offset)
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products`+w.sql()+` ORDER BY name, id`+lim,
		append(w.args, limArgs...)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

func scanProduct(row scanner) (*entity.Product, error) {
	var p entity.Product
	var categoryID sql.NullString
	var createdAt, updatedAt int64
	err := row.Scan(&p.ID, &p.InstitutionID, &categoryID, &p.Code, &p.Name, &p.Description,
		&p.MinimumQuantity, &p.CurrentQuantity, &p.UnitPrice, &p.Active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	p.CategoryID = categoryID.String
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return &p, nil
}
