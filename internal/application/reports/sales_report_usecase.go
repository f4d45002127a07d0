// Package reports genera el reporte PDF de ventas del tablero.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/smartsales-api/internal/application/analytics"
	"github.com/jhoicas/smartsales-api/internal/application/dto"
	"github.com/jhoicas/smartsales-api/internal/application/usecase"
)

// SalesReportData contenido ya calculado del reporte; el generador solo lo maqueta.
type SalesReportData struct {
	Title         string
	GeneratedAt   time.Time
	Series        []dto.SalesPeriodDTO
	Forecast      dto.ForecastDTO
	MovingAverage int64
	Window        int
	Outlook       *dto.ProductOutlookResponse
}

// SalesReportGenerator puerto de salida que convierte los datos en un PDF.
type SalesReportGenerator interface {
	Generate(ctx context.Context, data SalesReportData) ([]byte, error)
}

// SalesReportUseCase arma el reporte a partir de la misma lectura que usa el tablero.
type SalesReportUseCase struct {
	data      usecase.SnapshotReader
	generator SalesReportGenerator
	title     string
	now       func() time.Time
}

// NewSalesReportUseCase construye el caso de uso. title suele ser APP_NAME.
func NewSalesReportUseCase(data usecase.SnapshotReader, generator SalesReportGenerator, title string) *SalesReportUseCase {
	return &SalesReportUseCase{data: data, generator: generator, title: title, now: time.Now}
}

// SalesReport devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *SalesReportUseCase) SalesReport(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	snap, err := uc.data.Snapshot(ctx)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	report := BuildReportData(uc.title, now, snap)

	pdfBytes, err = uc.generator.Generate(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("ventas-%s.pdf", now.Format("2006-01-02")), nil
}

// BuildReportData traduce la lectura del tablero al contenido del reporte.
func BuildReportData(title string, at time.Time, snap *analytics.Snapshot) SalesReportData {
	series := make([]dto.SalesPeriodDTO, len(snap.Periods))
	for i, p := range snap.Periods {
		series[i] = dto.SalesPeriodDTO{Label: p.Label, Value: p.Value}
	}
	return SalesReportData{
		Title:         title,
		GeneratedAt:   at,
		Series:        series,
		Forecast:      dto.NewForecastDTO(snap.Forecast),
		MovingAverage: snap.MovingAverage,
		Window:        snap.Window,
		Outlook:       analytics.BuildOutlook(snap.Products),
	}
}
