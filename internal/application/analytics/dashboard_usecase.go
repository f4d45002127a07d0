// Package analytics arma las vistas de lectura del tablero: serie con pronóstico,
// media móvil y proyección por producto.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartsales-api/internal/application/dto"
	"github.com/jhoicas/smartsales-api/internal/domain/entity"
	"github.com/jhoicas/smartsales-api/internal/domain/forecast"
	"github.com/jhoicas/smartsales-api/internal/domain/repository"
)

// Snapshot serie y productos leídos en paralelo, con el pronóstico calculado.
// Las dos lecturas no comparten transacción: una escritura concurrente puede verse en una sola.
// La comparten el tablero, el asistente de chat y el reporte PDF.
type Snapshot struct {
	Periods       []*entity.SalesPeriod
	Products      []*entity.Product
	Forecast      forecast.Result
	MovingAverage int64
	Window        int
}

// Values serie de valores en orden cronológico.
func (s *Snapshot) Values() []decimal.Decimal {
	values := make([]decimal.Decimal, len(s.Periods))
	for i, p := range s.Periods {
		values[i] = p.Value
	}
	return values
}

// DashboardUseCase genera el tablero y la tabla de proyección por producto.
type DashboardUseCase struct {
	salesRepo   repository.SalesRepository
	productRepo repository.ProductRepository
	window      int
}

// NewDashboardUseCase construye el caso de uso. window es la ventana de la media móvil.
func NewDashboardUseCase(salesRepo repository.SalesRepository, productRepo repository.ProductRepository, window int) *DashboardUseCase {
	if window <= 0 {
		window = forecast.DefaultWindow
	}
	return &DashboardUseCase{salesRepo: salesRepo, productRepo: productRepo, window: window}
}

// Snapshot lee serie y productos en paralelo y calcula el pronóstico.
func (uc *DashboardUseCase) Snapshot(ctx context.Context) (*Snapshot, error) {
	type salesResult struct {
		periods []*entity.SalesPeriod
		err     error
	}
	type productsResult struct {
		products []*entity.Product
		err      error
	}

	salesCh := make(chan salesResult, 1)
	productsCh := make(chan productsResult, 1)

	go func() {
		periods, err := uc.salesRepo.List(ctx)
		salesCh <- salesResult{periods, err}
	}()
	go func() {
		products, err := uc.productRepo.List(ctx)
		productsCh <- productsResult{products, err}
	}()

	sales := <-salesCh
	products := <-productsCh

	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: serie de ventas: %w", sales.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}

	snap := &Snapshot{Periods: sales.periods, Products: products.products, Window: uc.window}
	values := snap.Values()
	snap.Forecast = forecast.Forecast(values)
	snap.MovingAverage = forecast.MovingAverage(values, uc.window)
	return snap, nil
}

// GetDashboard construye la respuesta de GET /api/dashboard.
// Con la serie vacía el pronóstico es el de "faltan datos", nunca un error.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	snap, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(snap.Periods))
	for i, p := range snap.Periods {
		labels[i] = p.Label
	}
	return &dto.DashboardResponse{
		Labels:                  labels,
		Values:                  snap.Values(),
		Forecast:                dto.NewForecastDTO(snap.Forecast),
		MovingAveragePrediction: snap.MovingAverage,
		MovingAverageWindow:     snap.Window,
		PeriodCount:             len(snap.Periods),
	}, nil
}

// GetProductOutlook proyecta cada producto (last_sales × 1.2) y sugiere reposición.
func (uc *DashboardUseCase) GetProductOutlook(ctx context.Context) (*dto.ProductOutlookResponse, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("outlook: productos: %w", err)
	}
	return BuildOutlook(products), nil
}

// BuildOutlook calcula la tabla de proyección a partir de una lista ya leída.
func BuildOutlook(products []*entity.Product) *dto.ProductOutlookResponse {
	items := make([]dto.ProductOutlookDTO, 0, len(products))
	restock := 0
	for _, p := range products {
		o := forecast.ProductOutlook(p.LastSales, p.Stock)
		if o.RestockNeeded {
			restock++
		}
		items = append(items, dto.ProductOutlookDTO{
			Product:          p.Name,
			LastSales:        p.LastSales,
			Forecast:         o.Forecast,
			Trend:            string(o.Trend),
			Stock:            p.Stock,
			RestockNeeded:    o.RestockNeeded,
			SuggestedRestock: o.SuggestedRestock,
		})
	}
	return &dto.ProductOutlookResponse{Items: items, RestockCount: restock}
}
