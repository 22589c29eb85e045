package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/retailpulse/backend/internal/config"
	"github.com/retailpulse/backend/internal/domain"
)

const (
	riskReportKey       = "risk:report"
	riskReportScanBatch = 100
	riskReportKeyPrefix = "risk:"
)

// RiskReportCache caches the chain-wide risk report between dashboard
// refreshes. The report is snapshot-derived, so a short TTL is enough.
type RiskReportCache interface {
	GetReport(ctx context.Context) ([]domain.StoreRiskReport, bool, error)
	SetReport(ctx context.Context, report []domain.StoreRiskReport) error
	Invalidate(ctx context.Context) error
}

type redisRiskReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopRiskReportCache struct{}

func NewRiskReportCache(cfg config.CacheConfig) (RiskReportCache, error) {
	if !cfg.Enabled {
		return &noopRiskReportCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisRiskReportCache{client: client, ttl: ttl}, nil
}

func NewNoopRiskReportCache() RiskReportCache {
	return &noopRiskReportCache{}
}

func (c *redisRiskReportCache) GetReport(ctx context.Context) ([]domain.StoreRiskReport, bool, error) {
	payload, err := c.client.Get(ctx, riskReportKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report []domain.StoreRiskReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode risk report cache: %w", err)
	}

	return report, true, nil
}

func (c *redisRiskReportCache) SetReport(ctx context.Context, report []domain.StoreRiskReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode risk report cache: %w", err)
	}

	if err := c.client.Set(ctx, riskReportKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisRiskReportCache) Invalidate(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, riskReportKeyPrefix, riskReportScanBatch)
}

func (n *noopRiskReportCache) GetReport(ctx context.Context) ([]domain.StoreRiskReport, bool, error) {
	return nil, false, nil
}

func (n *noopRiskReportCache) SetReport(ctx context.Context, report []domain.StoreRiskReport) error {
	return nil
}

func (n *noopRiskReportCache) Invalidate(ctx context.Context) error {
	return nil
}
