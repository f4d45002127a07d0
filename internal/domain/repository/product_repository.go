package repository

import (
	"context"

	"github.com/jhoicas/smartsales-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las búsquedas por nombre no distinguen mayúsculas (comparan entity.NormalizeKey).
// GetByName devuelve (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	// GetByNameForUpdate bloquea el registro hasta el fin de la transacción (SELECT FOR UPDATE).
	GetByNameForUpdate(ctx context.Context, name string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
	// DeleteByName devuelve false si no había nada que borrar.
	DeleteByName(ctx context.Context, name string) (bool, error)
}
