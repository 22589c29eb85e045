package service

import (
	"context"
	"fmt"

	"github.com/retailpulse/backend/internal/cache"
	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/repository"
	"github.com/retailpulse/backend/internal/risk"
	"github.com/rs/zerolog/log"
)

// RiskService produces the chain-wide stock risk report for dashboards.
type RiskService struct {
	stores repository.StoreRepository
	cache  cache.RiskReportCache
}

func NewRiskService(stores repository.StoreRepository, cacheImpl cache.RiskReportCache) *RiskService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopRiskReportCache()
	}
	return &RiskService{stores: stores, cache: cacheImpl}
}

func (s *RiskService) Report(ctx context.Context) ([]domain.StoreRiskReport, error) {
	if report, ok, err := s.cache.GetReport(ctx); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("risk: cache get failed")
	}

	stores, err := s.stores.ListStoresWithInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory snapshot: %w", err)
	}

	report := risk.Report(stores)

	if err := s.cache.SetReport(ctx, report); err != nil {
		log.Warn().Err(err).Msg("risk: cache set failed")
	}

	return report, nil
}

// ClassifyStore labels one store on demand, bypassing the report cache.
func (s *RiskService) ClassifyStore(ctx context.Context, storeID int64) (domain.RiskStatus, error) {
	store, err := s.stores.GetStore(ctx, storeID)
	if err != nil {
		return "", err
	}
	return risk.Classify(*store), nil
}

// InvalidateReport drops the cached report, e.g. after bulk inventory
// mutations.
func (s *RiskService) InvalidateReport(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("risk: cache invalidate failed")
	}
}
