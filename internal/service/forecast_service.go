package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/forecast"
	"github.com/retailpulse/backend/internal/repository"
)

const defaultHistoryDays = 30

// ForecastService projects demand from recorded sales and persists the
// result as forecast rows.
type ForecastService struct {
	sales     repository.SaleRepository
	forecasts repository.ForecastRepository
}

func NewForecastService(sales repository.SaleRepository, forecasts repository.ForecastRepository) *ForecastService {
	return &ForecastService{sales: sales, forecasts: forecasts}
}

// ProjectDemand fits a trend to the trailing sales window and saves
// horizon days of predictions for the store/product pair.
func (s *ForecastService) ProjectDemand(ctx context.Context, storeID, productID int64, horizon int) ([]domain.Forecast, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -defaultHistoryDays)

	daily, err := s.sales.DailyQuantities(ctx, storeID, productID, from, to)
	if err != nil {
		return nil, err
	}

	history := make([]forecast.Point, 0, len(daily))
	for day, qty := range daily {
		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, fmt.Errorf("bad aggregation key %q: %w", day, err)
		}
		history = append(history, forecast.Point{Date: date, Quantity: qty})
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].Date.Before(history[j].Date)
	})

	projections, err := forecast.Project(history, horizon)
	if err != nil {
		return nil, err
	}

	forecasts := make([]domain.Forecast, 0, len(projections))
	for _, p := range projections {
		forecasts = append(forecasts, domain.Forecast{
			StoreID:           storeID,
			ProductID:         productID,
			Date:              p.Date,
			PredictedQuantity: p.Quantity,
		})
	}

	if err := s.forecasts.SaveForecasts(ctx, forecasts); err != nil {
		return nil, err
	}

	return forecasts, nil
}

func (s *ForecastService) ListForecasts(ctx context.Context, storeID, productID int64) ([]domain.Forecast, error) {
	return s.forecasts.ListForecasts(ctx, storeID, productID)
}
