package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/smartsales-api/internal/domain"
	"github.com/jhoicas/smartsales-api/internal/domain/entity"
	"github.com/jhoicas/smartsales-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, name_key, last_sales, stock, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre SQLite (usable con db o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserta el producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	p.NameKey = entity.NormalizeKey(p.Name)
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.NameKey, p.LastSales, p.Stock, formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return persistenceErr("insert product", err)
	}
	return nil
}

// GetByName busca sin distinguir mayúsculas.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE name_key = ?`, entity.NormalizeKey(name))
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, persistenceErr("get product", err)
	}
	return p, nil
}

// GetByNameForUpdate: con una sola conexión la transacción ya es exclusiva.
func (r *ProductRepo) GetByNameForUpdate(ctx context.Context, name string) (*entity.Product, error) {
	return r.GetByName(ctx, name)
}

// Update actualiza los contadores.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE products SET last_sales = ?, stock = ?, updated_at = ? WHERE id = ?`,
		p.LastSales, p.Stock, formatTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return persistenceErr("update product", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los productos en orden de alta.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, name_key`)
	if err != nil {
		return nil, persistenceErr("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, persistenceErr("scan product", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("list products", err)
	}
	return list, nil
}

// DeleteByName borra sin distinguir mayúsculas.
func (r *ProductRepo) DeleteByName(ctx context.Context, name string) (bool, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE name_key = ?`, entity.NormalizeKey(name))
	if err != nil {
		return false, persistenceErr("delete product", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*entity.Product, error) {
	var (
		p                entity.Product
		created, updated string
	)
	if err := s.Scan(&p.ID, &p.Name, &p.NameKey, &p.LastSales, &p.Stock, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &p, nil
}
