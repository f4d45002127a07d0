package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/smartsales-api/internal/domain"
	"github.com/jhoicas/smartsales-api/internal/domain/entity"
	"github.com/jhoicas/smartsales-api/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// salesLockKey clave del advisory lock que serializa escrituras sobre la serie.
const salesLockKey = 7_310_001

const salesColumns = `id, label, label_key, value, position, created_at`

// SalesRepo implementación de SalesRepository sobre PostgreSQL (usable con pool o tx).
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador de la serie de ventas.
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

func (r *SalesRepo) lockSeries(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, salesLockKey); err != nil {
		return persistenceErr("lock sales series", err)
	}
	return nil
}

// Append inserta el período al final de la serie (position = max + 1).
func (r *SalesRepo) Append(ctx context.Context, period *entity.SalesPeriod) error {
	if err := r.lockSeries(ctx); err != nil {
		return err
	}
	period.LabelKey = entity.NormalizeKey(period.Label)
	err := r.q.QueryRow(ctx, `
		INSERT INTO sales_periods (id, label, label_key, value, position, created_at)
		SELECT $1, $2, $3, $4, COALESCE(MAX(position) + 1, 0), $5 FROM sales_periods
		RETURNING position`,
		period.ID, period.Label, period.LabelKey, period.Value, period.CreatedAt,
	).Scan(&period.Position)
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
	rows, err := r.q.Query(ctx, `SELECT `+salesColumns+` FROM sales_periods ORDER BY position`)
	if err != nil {
		return nil, persistenceErr("list sales periods", err)
	}
	defer rows.Close()
	var list []*entity.SalesPeriod
	for rows.Next() {
		var p entity.SalesPeriod
		if err := rows.Scan(&p.ID, &p.Label, &p.LabelKey, &p.Value, &p.Position, &p.CreatedAt); err != nil {
			return nil, persistenceErr("scan sales period", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("list sales periods", err)
	}
	return list, nil
}

// GetByLabel obtiene un período por etiqueta sin distinguir mayúsculas.
func (r *SalesRepo) GetByLabel(ctx context.Context, label string) (*entity.SalesPeriod, error) {
	var p entity.SalesPeriod
	err := r.q.QueryRow(ctx,
		`SELECT `+salesColumns+` FROM sales_periods WHERE label_key = $1`,
		entity.NormalizeKey(label),
	).Scan(&p.ID, &p.Label, &p.LabelKey, &p.Value, &p.Position, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistenceErr("get sales period", err)
	}
	return &p, nil
}

// ReplaceAll borra la serie y la vuelve a insertar. Debe llamarse dentro de TxRunner.Run.
func (r *SalesRepo) ReplaceAll(ctx context.Context, periods []*entity.SalesPeriod) error {
	if err := r.lockSeries(ctx); err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM sales_periods`); err != nil {
		return persistenceErr("clear sales periods", err)
	}
	batch := &pgx.Batch{}
	for i, p := range periods {
		p.LabelKey = entity.NormalizeKey(p.Label)
		p.Position = i
		batch.Queue(`
			INSERT INTO sales_periods (`+salesColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			p.ID, p.Label, p.LabelKey, p.Value, p.Position, p.CreatedAt,
		)
	}
	if batch.Len() == 0 {
		return nil
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range periods {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return persistenceErr("insert sales period", err)
		}
	}
	return nil
}

// DeleteByLabel elimina un período por etiqueta.
func (r *SalesRepo) DeleteByLabel(ctx context.Context, label string) (bool, error) {
	if err := r.lockSeries(ctx); err != nil {
		return false, err
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales_periods WHERE label_key = $1`, entity.NormalizeKey(label))
	if err != nil {
		return false, persistenceErr("delete sales period", err)
	}
	return cmd.RowsAffected() > 0, nil
}
