package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/smartsales-api/internal/domain"
	"github.com/jhoicas/smartsales-api/internal/domain/entity"
	"github.com/jhoicas/smartsales-api/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

const salesColumns = `id, label, label_key, value, position, created_at`

// SalesRepo implementación de SalesRepository sobre SQLite.
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador.
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

// Append inserta al final de la serie.
func (r *SalesRepo) Append(ctx context.Context, p *entity.SalesPeriod) error {
	p.LabelKey = entity.NormalizeKey(p.Label)
	var next int
	if err := r.q.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM sales_periods`).Scan(&next); err != nil {
		return persistenceErr("next position", err)
	}
	p.Position = next
	if err := r.insert(ctx, p); err != nil {
		return err
	}
	return nil
}

func (r *SalesRepo) insert(ctx context.Context, p *entity.SalesPeriod) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO sales_periods (`+salesColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Label, p.LabelKey, p.Value.String(), p.Position, formatTime(p.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return persistenceErr("insert sales period", err)
	}
	return nil
}

// List devuelve la serie en orden cronológico.
func (r *SalesRepo) List(ctx context.Context) ([]*entity.SalesPeriod, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+salesColumns+` FROM sales_periods ORDER BY position`)
	if err != nil {
		return nil, persistenceErr("list sales periods", err)
	}
	defer rows.Close()
	var list []*entity.SalesPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, persistenceErr("scan sales period", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("list sales periods", err)
	}
	return list, nil
}

// GetByLabel busca sin distinguir mayúsculas.
func (r *SalesRepo) GetByLabel(ctx context.Context, label string) (*entity.SalesPeriod, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+salesColumns+` FROM sales_periods WHERE label_key = ?`, entity.NormalizeKey(label))
	p, err := scanPeriod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, persistenceErr("get sales period", err)
	}
	return p, nil
}

// ReplaceAll borra la serie y la vuelve a insertar. Debe llamarse dentro de TxRunner.Run.
func (r *SalesRepo) ReplaceAll(ctx context.Context, periods []*entity.SalesPeriod) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM sales_periods`); err != nil {
		return persistenceErr("clear sales periods", err)
	}
	for i, p := range periods {
		p.LabelKey = entity.NormalizeKey(p.Label)
		p.Position = i
		if err := r.insert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// DeleteByLabel elimina un período.
func (r *SalesRepo) DeleteByLabel(ctx context.Context, label string) (bool, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM sales_periods WHERE label_key = ?`, entity.NormalizeKey(label))
	if err != nil {
		return false, persistenceErr("delete sales period", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func scanPeriod(s scanner) (*entity.SalesPeriod, error) {
	var (
		p       entity.SalesPeriod
		created string
	)
	if err := s.Scan(&p.ID, &p.Label, &p.LabelKey, &p.Value, &p.Position, &created); err != nil {
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = t
	return &p, nil
}
