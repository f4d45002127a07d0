package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/smartsales-api/internal/application/dto"
	"github.com/jhoicas/smartsales-api/internal/domain"
	"github.com/jhoicas/smartsales-api/internal/domain/entity"
	"github.com/jhoicas/smartsales-api/internal/domain/inventory"
	"github.com/jhoicas/smartsales-api/internal/domain/repository"
)

// StockUseCase ajustes de stock y mantenimiento de la tabla de productos.
// Toda escritura pasa por TxRunner: el producto se lee con bloqueo y se escribe en la misma
// transacción, así dos reposiciones concurrentes nunca pierden una actualización.
type StockUseCase struct {
	txRunner    repository.TxRunner
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner repository.TxRunner, productRepo repository.ProductRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, productRepo: productRepo, now: time.Now}
}

// Restock suma quantity al stock. Si el producto no existe lo crea con last_sales = 0.
func (uc *StockUseCase) Restock(ctx context.Context, in dto.StockAdjustRequest) (*dto.ProductResponse, error) {
	name, err := validateName(in.Name)
	if err != nil {
		return nil, err
	}
	qty, err := dto.ParseInt64("quantity", in.Quantity)
	if err != nil {
		return nil, err
	}
	if err := inventory.ValidateQuantity(qty); err != nil {
		return nil, err
	}

	var out *entity.Product
	err = uc.runRetryingInsert(ctx, func(products repository.ProductRepository, _ repository.SalesRepository) error {
		now := uc.now()
		p, err := products.GetByNameForUpdate(ctx, name)
		if err != nil {
			return err
		}
		if p == nil {
			p = &entity.Product{
				ID:        uuid.New().String(),
				Name:      name,
				Stock:     qty,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := products.Create(ctx, p); err != nil {
				return err
			}
			out = p
			return nil
		}
		newStock, err := inventory.Restock(p.Stock, qty)
		if err != nil {
			return err
		}
		p.Stock = newStock
		p.UpdatedAt = now
		if err := products.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(out), nil
}

// Sell descuenta quantity. ErrNotFound si el producto no existe; ErrInsufficientStock si
// quantity supera el stock (el stock no cambia).
func (uc *StockUseCase) Sell(ctx context.Context, in dto.StockAdjustRequest) (*dto.ProductResponse, error) {
	name, err := validateName(in.Name)
	if err != nil {
		return nil, err
	}
	qty, err := dto.ParseInt64("quantity", in.Quantity)
	if err != nil {
		return nil, err
	}
	if err := inventory.ValidateQuantity(qty); err != nil {
		return nil, err
	}

	var out *entity.Product
	err = uc.txRunner.Run(ctx, func(products repository.ProductRepository, _ repository.SalesRepository) error {
		p, err := products.GetByNameForUpdate(ctx, name)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		newStock, err := inventory.Sell(p.Stock, qty)
		if err != nil {
			return err
		}
		p.Stock = newStock
		p.UpdatedAt = uc.now()
		if err := products.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(out), nil
}

// Upsert crea el producto o sobrescribe last_sales y stock. created indica si era nuevo.
func (uc *StockUseCase) Upsert(ctx context.Context, in dto.UpsertProductRequest) (_ *dto.ProductResponse, created bool, _ error) {
	name, err := validateName(in.Name)
	if err != nil {
		return nil, false, err
	}
	lastSales, err := parseCounter("last_sales", in.LastSales)
	if err != nil {
		return nil, false, err
	}
	stock, err := parseCounter("stock", in.Stock)
	if err != nil {
		return nil, false, err
	}

	var out *entity.Product
	err = uc.runRetryingInsert(ctx, func(products repository.ProductRepository, _ repository.SalesRepository) error {
		now := uc.now()
		p, err := products.GetByNameForUpdate(ctx, name)
		if err != nil {
			return err
		}
		if p == nil {
			p = &entity.Product{ID: uuid.New().String(), Name: name, CreatedAt: now}
			created = true
		} else {
			created = false
		}
		p.LastSales = lastSales
		p.Stock = stock
		p.UpdatedAt = now
		if created {
			err = products.Create(ctx, p)
		} else {
			err = products.Update(ctx, p)
		}
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return toProductResponse(out), created, nil
}

// Delete borra el producto (sin distinguir mayúsculas). ErrNotFound si no existe.
func (uc *StockUseCase) Delete(ctx context.Context, name string) error {
	name, err := validateName(name)
	if err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(products repository.ProductRepository, _ repository.SalesRepository) error {
		ok, err := products.DeleteByName(ctx, name)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return nil
	})
}

// List devuelve la tabla de productos.
func (uc *StockUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// runRetryingInsert repite una vez la transacción si otro escritor creó el mismo producto
// entre la lectura y el INSERT (solo posible en PostgreSQL, donde no hay fila que bloquear).
func (uc *StockUseCase) runRetryingInsert(ctx context.Context, fn func(repository.ProductRepository, repository.SalesRepository) error) error {
	err := uc.txRunner.Run(ctx, fn)
	if errors.Is(err, domain.ErrDuplicate) {
		err = uc.txRunner.Run(ctx, fn)
	}
	return err
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.NewValidationError("name", "es obligatorio")
	}
	return name, nil
}

func parseCounter(field string, raw []byte) (int64, error) {
	n, err := dto.ParseInt64(field, raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, domain.NewValidationError(field, "no puede ser negativo")
	}
	return n, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		LastSales: p.LastSales,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
