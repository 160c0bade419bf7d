package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/config"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
)

const (
	restockPlanKeyPrefix      = "replenish:plan"
	dashboardSummaryKeyPrefix = "replenish:summary"
	cacheScanBatchSize        = 100
)

// PlanKey identifies one restock-plan computation. Identical parameters hit
// the same cache entry regardless of argument order or casing.
type PlanKey struct {
	SKU          *string
	Marketplace  string
	LeadTimeDays int
	ServiceLevel float64
	CurrentStock *float64
}

// ReplenishCache caches the expensive composed results. The noop
// implementation serves deployments without Redis.
type ReplenishCache interface {
	GetPlan(ctx context.Context, key PlanKey) (*domain.RestockPlan, bool, error)
	SetPlan(ctx context.Context, key PlanKey, plan *domain.RestockPlan) error
	GetSummary(ctx context.Context, marketplace string) (*domain.DashboardSummary, bool, error)
	SetSummary(ctx context.Context, marketplace string, summary *domain.DashboardSummary) error
	InvalidateAll(ctx context.Context) error
}

type redisReplenishCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReplenishCache struct{}

func NewReplenishCache(cfg config.CacheConfig) (ReplenishCache, error) {
	if !cfg.Enabled {
		return &noopReplenishCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReplenishCache{client: client, ttl: ttl}, nil
}

func NewNoopReplenishCache() ReplenishCache {
	return &noopReplenishCache{}
}

func (c *redisReplenishCache) GetPlan(ctx context.Context, key PlanKey) (*domain.RestockPlan, bool, error) {
	payload, err := c.client.Get(ctx, buildPlanKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var plan domain.RestockPlan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return nil, false, fmt.Errorf("decode restock plan cache: %w", err)
	}
	return &plan, true, nil
}

func (c *redisReplenishCache) SetPlan(ctx context.Context, key PlanKey, plan *domain.RestockPlan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode restock plan cache: %w", err)
	}

	if err := c.client.Set(ctx, buildPlanKey(key), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReplenishCache) GetSummary(ctx context.Context, marketplace string) (*domain.DashboardSummary, bool, error) {
	payload, err := c.client.Get(ctx, buildSummaryKey(marketplace)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary domain.DashboardSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode dashboard summary cache: %w", err)
	}
	return &summary, true, nil
}

func (c *redisReplenishCache) SetSummary(ctx context.Context, marketplace string, summary *domain.DashboardSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode dashboard summary cache: %w", err)
	}

	if err := c.client.Set(ctx, buildSummaryKey(marketplace), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReplenishCache) InvalidateAll(ctx context.Context) error {
	if err := deleteKeysWithPrefix(ctx, c.client, restockPlanKeyPrefix, cacheScanBatchSize); err != nil {
		return err
	}
	return deleteKeysWithPrefix(ctx, c.client, dashboardSummaryKeyPrefix, cacheScanBatchSize)
}

func (n *noopReplenishCache) GetPlan(ctx context.Context, key PlanKey) (*domain.RestockPlan, bool, error) {
	return nil, false, nil
}

func (n *noopReplenishCache) SetPlan(ctx context.Context, key PlanKey, plan *domain.RestockPlan) error {
	return nil
}

func (n *noopReplenishCache) GetSummary(ctx context.Context, marketplace string) (*domain.DashboardSummary, bool, error) {
	return nil, false, nil
}

func (n *noopReplenishCache) SetSummary(ctx context.Context, marketplace string, summary *domain.DashboardSummary) error {
	return nil
}

func (n *noopReplenishCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildPlanKey(key PlanKey) string {
	return fmt.Sprintf("%s:%s", restockPlanKeyPrefix, planKeyHash(key))
}

func buildSummaryKey(marketplace string) string {
	return fmt.Sprintf("%s:%s", dashboardSummaryKeyPrefix, strings.ToUpper(strings.TrimSpace(marketplace)))
}

func planKeyHash(key PlanKey) string {
	parts := []string{
		"marketplace=" + strings.ToUpper(strings.TrimSpace(key.Marketplace)),
		fmt.Sprintf("lead_time_days=%d", key.LeadTimeDays),
		fmt.Sprintf("service_level=%.2f", key.ServiceLevel),
	}

	if key.SKU != nil {
		parts = append(parts, "sku="+strings.TrimSpace(*key.SKU))
	}
	if key.CurrentStock != nil {
		parts = append(parts, fmt.Sprintf("current_stock=%.0f", *key.CurrentStock))
	}

	sort.Strings(parts)
	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
