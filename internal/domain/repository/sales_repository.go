package repository

import (
	"context"

	"github.com/jhoicas/smartsales-api/internal/domain/entity"
)

// SalesRepository define el puerto de persistencia para la serie de ventas por período.
// List devuelve la serie ordenada por Position.
type SalesRepository interface {
	Append(ctx context.Context, period *entity.SalesPeriod) error
	List(ctx context.Context) ([]*entity.SalesPeriod, error)
	GetByLabel(ctx context.Context, label string) (*entity.SalesPeriod, error)
	// ReplaceAll sustituye la serie completa; las posiciones se toman del slice.
	ReplaceAll(ctx context.Context, periods []*entity.SalesPeriod) error
	DeleteByLabel(ctx context.Context, label string) (bool, error)
}
