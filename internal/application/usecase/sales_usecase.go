package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartsales-api/internal/application/dto"
	"github.com/jhoicas/smartsales-api/internal/domain"
	"github.com/jhoicas/smartsales-api/internal/domain/entity"
	"github.com/jhoicas/smartsales-api/internal/domain/forecast"
	"github.com/jhoicas/smartsales-api/internal/domain/repository"
)

// SalesUseCase mantiene la serie de ventas por período.
type SalesUseCase struct {
	txRunner  repository.TxRunner
	salesRepo repository.SalesRepository
	now       func() time.Time
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(txRunner repository.TxRunner, salesRepo repository.SalesRepository) *SalesUseCase {
	return &SalesUseCase{txRunner: txRunner, salesRepo: salesRepo, now: time.Now}
}

// List devuelve la serie ordenada con su proyección.
func (uc *SalesUseCase) List(ctx context.Context) (*dto.SalesSeriesResponse, error) {
	periods, err := uc.salesRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return seriesResponse(periods), nil
}

// Append agrega un período al final. ErrDuplicate si la etiqueta ya existe.
func (uc *SalesUseCase) Append(ctx context.Context, in dto.SalesPeriodRequest) (*dto.SalesPeriodDTO, error) {
	period, err := uc.newPeriod("", in)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.Run(ctx, func(_ repository.ProductRepository, sales repository.SalesRepository) error {
		existing, err := sales.GetByLabel(ctx, period.Label)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		return sales.Append(ctx, period)
	})
	if err != nil {
		return nil, err
	}
	return &dto.SalesPeriodDTO{Label: period.Label, Value: period.Value}, nil
}

// Replace sustituye la serie completa de forma atómica. Se valida todo antes de escribir:
// una etiqueta vacía, un valor no numérico o negativo, o etiquetas repetidas rechazan la petición.
func (uc *SalesUseCase) Replace(ctx context.Context, in dto.ReplaceSalesRequest) (*dto.SalesSeriesResponse, error) {
	if in.Series == nil {
		return nil, domain.NewValidationError("series", "es obligatorio")
	}
	periods := make([]*entity.SalesPeriod, 0, len(in.Series))
	seen := make(map[string]int, len(in.Series))
	for i, item := range in.Series {
		prefix := fmt.Sprintf("series[%d].", i)
		p, err := uc.newPeriod(prefix, item)
		if err != nil {
			return nil, err
		}
		key := entity.NormalizeKey(p.Label)
		if j, dup := seen[key]; dup {
			return nil, domain.NewValidationError(prefix+"label", fmt.Sprintf("repite la etiqueta de series[%d]", j))
		}
		seen[key] = i
		periods = append(periods, p)
	}

	err := uc.txRunner.Run(ctx, func(_ repository.ProductRepository, sales repository.SalesRepository) error {
		return sales.ReplaceAll(ctx, periods)
	})
	if err != nil {
		return nil, err
	}
	return seriesResponse(periods), nil
}

// Delete quita un período. ErrNotFound si la etiqueta no existe.
func (uc *SalesUseCase) Delete(ctx context.Context, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.NewValidationError("label", "es obligatorio")
	}
	return uc.txRunner.Run(ctx, func(_ repository.ProductRepository, sales repository.SalesRepository) error {
		ok, err := sales.DeleteByLabel(ctx, label)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (uc *SalesUseCase) newPeriod(fieldPrefix string, in dto.SalesPeriodRequest) (*entity.SalesPeriod, error) {
	label := strings.TrimSpace(in.Label)
	if label == "" {
		return nil, domain.NewValidationError(fieldPrefix+"label", "es obligatorio")
	}
	value, err := dto.ParseAmount(fieldPrefix+"value", in.Value)
	if err != nil {
		return nil, err
	}
	if value.IsNegative() {
		return nil, domain.NewValidationError(fieldPrefix+"value", "no puede ser negativo")
	}
	return &entity.SalesPeriod{
		ID:        uuid.New().String(),
		Label:     label,
		Value:     value,
		CreatedAt: uc.now(),
	}, nil
}

// SeriesValues extrae los valores en orden para el motor de pronóstico.
func SeriesValues(periods []*entity.SalesPeriod) []decimal.Decimal {
	values := make([]decimal.Decimal, len(periods))
	for i, p := range periods {
		values[i] = p.Value
	}
	return values
}

func seriesResponse(periods []*entity.SalesPeriod) *dto.SalesSeriesResponse {
	series := make([]dto.SalesPeriodDTO, len(periods))
	for i, p := range periods {
		series[i] = dto.SalesPeriodDTO{Label: p.Label, Value: p.Value}
	}
	return &dto.SalesSeriesResponse{
		Series:   series,
		Forecast: dto.NewForecastDTO(forecast.Forecast(SeriesValues(periods))),
	}
}
