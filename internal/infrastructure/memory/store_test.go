package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartsales-api/internal/domain"
	"github.com/jhoicas/smartsales-api/internal/domain/entity"
	"github.com/jhoicas/smartsales-api/internal/domain/repository"
	"github.com/jhoicas/smartsales-api/internal/infrastructure/memory"
)

func newProduct(name string, stock int64) *entity.Product {
	now := time.Now()
	return &entity.Product{ID: name, Name: name, Stock: stock, CreatedAt: now, UpdatedAt: now}
}

func TestProductRepo_NombreSinDistinguirMayusculas(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Products()

	require.NoError(t, repo.Create(ctx, newProduct("Widget", 3)))
	err := repo.Create(ctx, newProduct("WIDGET", 1))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	p, err := repo.GetByName(ctx, "  widget ")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, int64(3), p.Stock)

	missing, err := repo.GetByName(ctx, "gadget")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepo_UpdateYDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Products()
	p := newProduct("Widget", 3)
	require.NoError(t, repo.Create(ctx, p))

	p.Stock = 10
	require.NoError(t, repo.Update(ctx, p))
	got, _ := repo.GetByName(ctx, "widget")
	assert.Equal(t, int64(10), got.Stock)

	assert.ErrorIs(t, repo.Update(ctx, newProduct("Gadget", 1)), domain.ErrNotFound)

	ok, err := repo.DeleteByName(ctx, "WIDGET")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.DeleteByName(ctx, "widget")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSalesRepo_AppendOrdenYDuplicados(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Sales()

	for i, label := range []string{"Jan", "Feb", "Mar"} {
		p := &entity.SalesPeriod{ID: label, Label: label, Value: decimal.NewFromInt(int64(100 * (i + 1)))}
		require.NoError(t, repo.Append(ctx, p))
		assert.Equal(t, i, p.Position)
	}
	err := repo.Append(ctx, &entity.SalesPeriod{Label: "feb", Value: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	ok, err := repo.DeleteByLabel(ctx, "FEB")
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Jan", list[0].Label)
	assert.Equal(t, "Mar", list[1].Label)
	assert.Equal(t, 1, list[1].Position)
}

func TestStore_RunRestauraEstadoSiFalla(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(ctx, newProduct("Widget", 5)))

	boom := errors.New("boom")
	err := store.Run(ctx, func(products repository.ProductRepository, sales repository.SalesRepository) error {
		p, _ := products.GetByNameForUpdate(ctx, "widget")
		p.Stock = 0
		if err := products.Update(ctx, p); err != nil {
			return err
		}
		if err := sales.Append(ctx, &entity.SalesPeriod{Label: "Jan", Value: decimal.NewFromInt(1)}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, _ := store.Products().GetByName(ctx, "widget")
	assert.Equal(t, int64(5), p.Stock)
	list, _ := store.Sales().List(ctx)
	assert.Empty(t, list)
}

func TestStore_RunSerializaEscritores(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(ctx, newProduct("Widget", 0)))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Run(ctx, func(products repository.ProductRepository, _ repository.SalesRepository) error {
				p, err := products.GetByNameForUpdate(ctx, "Widget")
				if err != nil {
					return err
				}
				p.Stock++
				return products.Update(ctx, p)
			})
		}()
	}
	wg.Wait()

	p, _ := store.Products().GetByName(ctx, "Widget")
	assert.Equal(t, int64(50), p.Stock)
}
