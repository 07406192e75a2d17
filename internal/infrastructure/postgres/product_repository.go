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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, institution_id, category_id, code, name, description, minimum_quantity,
	current_quantity, unit_price, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, institution_id, category_id, code, name, description, minimum_quantity,
		                      current_quantity, unit_price, active, search_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.InstitutionID, nullable(p.CategoryID), p.Code, p.Name, p.Description, p.MinimumQuantity,
		p.CurrentQuantity, p.UnitPrice, p.Active, productKey(p), p.CreatedAt, p.UpdatedAt,
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

// GetByID obtiene un producto por ID (activo o no).
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByInstitutionAndCode obtiene un producto por institución y código.
func (r *ProductRepo) GetByInstitutionAndCode(ctx context.Context, institutionID, code string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE institution_id = $1 AND code = $2`, institutionID, code)
}

// GetForUpdate obtiene el producto bloqueando la fila (SELECT ... FOR UPDATE) hasta el fin de la tx.
// Solo tiene efecto si r fue construido con una tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza datos descriptivos y el estado. No modifica current_quantity.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET category_id = $2, name = $3, description = $4, minimum_quantity = $5,
		       unit_price = $6, active = $7, search_key = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, nullable(p.CategoryID), p.Name, p.Description, p.MinimumQuantity,
		p.UnitPrice, p.Active, productKey(p), p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity actualiza solo la cantidad actual (usado por el motor de movimientos).
func (r *ProductRepo) UpdateQuantity(ctx context.Context, productID string, quantity int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET current_quantity = $2, updated_at = now() WHERE id = $1`,
		productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos por nombre aplicando el filtro.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	var w whereBuilder
	if !f.IncludeInactive {
		w.raw(`active`)
	}
	if f.Query != "" {
		w.add(`search_key LIKE $%[1]d ESCAPE '\'`, textnorm.LikePattern(f.Query))
	}
	if f.InstitutionID != "" {
		w.add(`institution_id = $%[1]d`, f.InstitutionID)
	}
	if f.CategoryID != "" {
		w.add(`category_id = $%[1]d`, f.CategoryID)
	}
	if f.LowStockOnly {
		w.raw(`current_quantity <= minimum_quantity`)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	sql := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY name, id LIMIT $%d OFFSET $%d`,
		productColumns, w.sql(), w.next(), w.next()+1)
	rows, err := r.q.Query(ctx, sql, append(w.args, limitArg(limit), offset)...)
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

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID *string
	err := row.Scan(&p.ID, &p.InstitutionID, &categoryID, &p.Code, &p.Name, &p.Description,
		&p.MinimumQuantity, &p.CurrentQuantity, &p.UnitPrice, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.CategoryID = deref(categoryID)
	return &p, nil
}

func productKey(p *entity.Product) string {
	return textnorm.Key(p.Name, p.Code)
}
