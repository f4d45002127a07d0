package legacy_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartsales-api/internal/application/inventory"
	"github.com/jhoicas/smartsales-api/internal/application/legacy"
	"github.com/jhoicas/smartsales-api/internal/application/usecase"
	"github.com/jhoicas/smartsales-api/internal/domain"
	"github.com/jhoicas/smartsales-api/internal/infrastructure/memory"
	"github.com/jhoicas/smartsales-api/pkg/logger"
)

func newImporter() (*legacy.Importer, *memory.Store) {
	store := memory.NewStore()
	im := legacy.NewImporter(
		usecase.NewSalesUseCase(store, store.Sales()),
		inventory.NewStockUseCase(store, store.Products()),
		logger.Nop(),
	)
	return im, store
}

func TestImportSales_ConservaOrden(t *testing.T) {
	im, store := newImporter()
	ctx := context.Background()

	res, err := im.ImportSales(ctx, strings.NewReader(`[{"month":"Jan","sales":100},{"month":"Feb","sales":150.5}]`))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	periods, err := store.Sales().List(ctx)
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, "Jan", periods[0].Label)
	assert.Equal(t, "150.5", periods[1].Value.String())
}

func TestImportSales_OmiteEtiquetasExistentes(t *testing.T) {
	im, _ := newImporter()
	ctx := context.Background()
	_, err := im.ImportSales(ctx, strings.NewReader(`[{"month":"Jan","sales":100}]`))
	require.NoError(t, err)

	res, err := im.ImportSales(ctx, strings.NewReader(`[{"month":"Jan","sales":100},{"month":"Feb","sales":90}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Skipped)
}

func TestImportSales_EntradaInvalidaNombraIndice(t *testing.T) {
	im, store := newImporter()
	ctx := context.Background()

	res, err := im.ImportSales(ctx, strings.NewReader(`[{"month":"Jan","sales":100},{"month":"Feb","sales":"mucho"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sales_data[1]")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, 1, res.Imported)

	periods, _ := store.Sales().List(ctx)
	assert.Len(t, periods, 1)
}

func TestImportSales_CampoDesconocido(t *testing.T) {
	im, _ := newImporter()
	_, err := im.ImportSales(context.Background(), strings.NewReader(`[{"month":"Jan","sales":1,"extra":true}]`))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestImportProducts_UpsertYLatin1(t *testing.T) {
	im, store := newImporter()
	ctx := context.Background()

	// "Café" en ISO-8859-1 (é = 0xE9).
	raw := append([]byte(`[{"product":"Caf`), 0xE9)
	raw = append(raw, []byte(`","last_sales":12,"stock":3},{"product":"Widget","last_sales":120,"stock":50}]`)...)

	res, err := im.ImportProducts(ctx, bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	p, err := store.Products().GetByName(ctx, "café")
	require.NoError(t, err)
	assert.Equal(t, "Café", p.Name)
	assert.Equal(t, int64(3), p.Stock)
}

func TestImportProducts_StockNegativo(t *testing.T) {
	im, _ := newImporter()
	_, err := im.ImportProducts(context.Background(), strings.NewReader(`[{"product":"Widget","last_sales":1,"stock":-4}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product_data[0]")
}

func TestImport_ArchivoNoEsArreglo(t *testing.T) {
	im, _ := newImporter()
	_, err := im.ImportProducts(context.Background(), strings.NewReader(`{"product":"Widget"}`))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
