// Package legacy importa los archivos planos de la versión anterior del tablero
// (sales_data.json y product_data.json) a través de los casos de uso normales.
package legacy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/smartsales-api/internal/application/dto"
	"github.com/jhoicas/smartsales-api/internal/application/inventory"
	"github.com/jhoicas/smartsales-api/internal/application/usecase"
	"github.com/jhoicas/smartsales-api/internal/domain"
	"github.com/jhoicas/smartsales-api/pkg/logger"
)

// salesEntry fila de sales_data.json.
type salesEntry struct {
	Month string          `json:"month"`
	Sales json.RawMessage `json:"sales"`
}

// productEntry fila de product_data.json.
type productEntry struct {
	Product   string          `json:"product"`
	LastSales json.RawMessage `json:"last_sales"`
	Stock     json.RawMessage `json:"stock"`
}

// Result resumen de una importación.
type Result struct {
	Imported int
	Skipped  int // periodos cuya etiqueta ya existía
}

// Importer escribe los datos heredados con las mismas validaciones que la API.
type Importer struct {
	sales *usecase.SalesUseCase
	stock *inventory.StockUseCase
	log   *logger.Logger
}

// NewImporter construye el importador.
func NewImporter(sales *usecase.SalesUseCase, stock *inventory.StockUseCase, log *logger.Logger) *Importer {
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{sales: sales, stock: stock, log: log}
}

// ImportSales agrega cada {month, sales} al final de la serie en el orden del archivo.
// Una entrada inválida detiene la importación; las ya escritas se conservan.
func (im *Importer) ImportSales(ctx context.Context, r io.Reader) (Result, error) {
	var entries []salesEntry
	if err := decodeArray(r, &entries); err != nil {
		return Result{}, fmt.Errorf("sales_data: %w", err)
	}
	var res Result
	for i, e := range entries {
		_, err := im.sales.Append(ctx, dto.SalesPeriodRequest{Label: e.Month, Value: e.Sales})
		if errors.Is(err, domain.ErrDuplicate) {
			im.log.Warn().Int("index", i).Str("month", e.Month).Msg("periodo ya existente, se omite")
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("sales_data[%d]: %w", i, err)
		}
		res.Imported++
	}
	return res, nil
}

// ImportProducts hace upsert de cada {product, last_sales, stock}.
func (im *Importer) ImportProducts(ctx context.Context, r io.Reader) (Result, error) {
	var entries []productEntry
	if err := decodeArray(r, &entries); err != nil {
		return Result{}, fmt.Errorf("product_data: %w", err)
	}
	var res Result
	for i, e := range entries {
		_, _, err := im.stock.Upsert(ctx, dto.UpsertProductRequest{Name: e.Product, LastSales: e.LastSales, Stock: e.Stock})
		if err != nil {
			return res, fmt.Errorf("product_data[%d]: %w", i, err)
		}
		res.Imported++
	}
	return res, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeArray lee un arreglo JSON estricto. Los archivos viejos guardados en Windows
// pueden venir en ISO-8859-1; si no es UTF-8 válido se transcodifica.
func decodeArray(r io.Reader, out any) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		raw, _, err = transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
		if err != nil {
			return fmt.Errorf("transcodificar ISO-8859-1: %w", err)
		}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: datos extra después del arreglo", domain.ErrInvalidInput)
	}
	return nil
}
