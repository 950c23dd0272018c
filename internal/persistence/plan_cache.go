package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plandesk/admin-api/internal/domain"
)

const (
	planCacheKey = "plans:list"
	planCacheTTL = 5 * time.Minute
)

// PlanCache keeps the full plan list in Redis so the admin dashboard's
// frequent plan reads skip the database. Mutations invalidate it.
type PlanCache struct {
	redis *Redis
}

// NewPlanCache builds the cache over a Redis wrapper.
func NewPlanCache(r *Redis) *PlanCache {
	return &PlanCache{redis: r}
}

// Get returns the cached plan list, or ok=false on miss or cache failure.
func (c *PlanCache) Get(ctx context.Context) ([]domain.Plan, bool) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return nil, false
	}
	raw, err := c.redis.Client.Get(ctx, planCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var plans []domain.Plan
	if err := json.Unmarshal(raw, &plans); err != nil {
		return nil, false
	}
	return plans, true
}

// Set stores the plan list. Failures are ignored; the cache is best effort.
func (c *PlanCache) Set(ctx context.Context, plans []domain.Plan) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	raw, err := json.Marshal(plans)
	if err != nil {
		return
	}
	_ = c.redis.Client.Set(ctx, planCacheKey, raw, planCacheTTL).Err()
}

// Invalidate drops the cached list.
func (c *PlanCache) Invalidate(ctx context.Context) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	if err := c.redis.Client.Del(ctx, planCacheKey).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return
	}
}
