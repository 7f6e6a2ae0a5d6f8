package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 10 * time.Minute

// Client is the subset of *redis.Client the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// WeekendRepository caches weekend configs in Redis in front of another
// calendar.WeekendRepository. Redis failures fall through to the wrapped
// repository.
type WeekendRepository struct {
	calendar.WeekendRepository
	client Client
	ttl    time.Duration
}

func NewWeekendRepository(next calendar.WeekendRepository, client Client, ttl time.Duration) *WeekendRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &WeekendRepository{
		WeekendRepository: next,
		client:            client,
		ttl:               ttl,
	}
}

func weekendKey(companyID string) string {
	return fmt.Sprintf("calendar:weekend:%s", companyID)
}

// GetByCompanyID implements calendar.WeekendRepository.
func (c *WeekendRepository) GetByCompanyID(ctx context.Context, companyID string) (calendar.WeekendConfig, error) {
	key := weekendKey(companyID)

	raw, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var names []string
		if err := json.Unmarshal([]byte(raw), &names); err == nil {
			return calendar.ParseWeekendConfig(companyID, names), nil
		}
		slog.WarnContext(ctx, "Discarding malformed weekend cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		slog.WarnContext(ctx, "Weekend cache read failed", "key", key, "error", err)
	}

	cfg, err := c.WeekendRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return calendar.WeekendConfig{}, err
	}

	payload, err := json.Marshal(cfg.Names())
	if err != nil {
		return cfg, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "Weekend cache write failed", "key", key, "error", err)
	}

	return cfg, nil
}

// Invalidate drops the cached config of a company.
func (c *WeekendRepository) Invalidate(ctx context.Context, companyID string) error {
	return c.client.Del(ctx, weekendKey(companyID)).Err()
}
