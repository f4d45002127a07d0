package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/smartsales-api/internal/domain"
	"github.com/jhoicas/smartsales-api/internal/domain/entity"
	"github.com/jhoicas/smartsales-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, name_key, last_sales, stock, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. La unicidad la garantiza el índice sobre name_key.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	product.NameKey = entity.NormalizeKey(product.Name)
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.NameKey, product.LastSales, product.Stock,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return persistenceErr("insert product", err)
	}
	return nil
}

// GetByName obtiene un producto por nombre sin distinguir mayúsculas.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE name_key = $1`, name)
}

// GetByNameForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE). Requiere tx.
func (r *ProductRepo) GetByNameForUpdate(ctx context.Context, name string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE name_key = $1 FOR UPDATE`, name)
}

func (r *ProductRepo) get(ctx context.Context, query, name string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, entity.NormalizeKey(name)).Scan(
		&p.ID, &p.Name, &p.NameKey, &p.LastSales, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistenceErr("get product", err)
	}
	return &p, nil
}

// Update actualiza contadores del producto. ErrNotFound si no existe la fila.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET last_sales = $2, stock = $3, updated_at = $4 WHERE id = $1`,
		product.ID, product.LastSales, product.Stock, product.UpdatedAt,
	)
	if err != nil {
		return persistenceErr("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todos los productos en orden de alta.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, name_key`)
	if err != nil {
		return nil, persistenceErr("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.NameKey, &p.LastSales, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, persistenceErr("scan product", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("list products", err)
	}
	return list, nil
}

// DeleteByName elimina un producto por nombre sin distinguir mayúsculas.
func (r *ProductRepo) DeleteByName(ctx context.Context, name string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE name_key = $1`, entity.NormalizeKey(name))
	if err != nil {
		return false, persistenceErr("delete product", err)
	}
	return cmd.RowsAffected() > 0, nil
}
