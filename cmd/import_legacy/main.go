// import_legacy carga los archivos planos de la versión anterior del tablero en el
// almacenamiento configurado (STORE_DRIVER).
//
// Uso: go run ./cmd/import_legacy [sales_data.json] [product_data.json]
// Por defecto busca ambos archivos en el directorio actual; un archivo ausente se omite.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jhoicas/smartsales-api/internal/application/inventory"
	"github.com/jhoicas/smartsales-api/internal/application/legacy"
	"github.com/jhoicas/smartsales-api/internal/application/usecase"
	"github.com/jhoicas/smartsales-api/internal/infrastructure/storage"
	"github.com/jhoicas/smartsales-api/pkg/config"
	"github.com/jhoicas/smartsales-api/pkg/logger"
)

func main() {
	salesPath, productsPath := "sales_data.json", "product_data.json"
	if len(os.Args) > 1 {
		salesPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		productsPath = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx := context.Background()
	stores, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer stores.Close()

	im := legacy.NewImporter(
		usecase.NewSalesUseCase(stores.TxRunner, stores.Sales),
		inventory.NewStockUseCase(stores.TxRunner, stores.Products),
		log,
	)

	if err := importFile(salesPath, func(f *os.File) (legacy.Result, error) { return im.ImportSales(ctx, f) }, log); err != nil {
		stores.Close()
		log.Fatal().Err(err).Str("file", salesPath).Msg("importar ventas")
	}
	if err := importFile(productsPath, func(f *os.File) (legacy.Result, error) { return im.ImportProducts(ctx, f) }, log); err != nil {
		stores.Close()
		log.Fatal().Err(err).Str("file", productsPath).Msg("importar productos")
	}
}

func importFile(path string, run func(*os.File) (legacy.Result, error), log *logger.Logger) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("file", path).Msg("archivo no encontrado, se omite")
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := run(f)
	log.Info().Str("file", path).Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("importación")
	return err
}
