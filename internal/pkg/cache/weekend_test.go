package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	values  map[string]string
	getErr  error
	setErr  error
	setTTLs map[string]time.Duration
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: map[string]string{}, setTTLs: map[string]time.Duration{}}
}

func (f *fakeClient) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.values[key] = string(value.([]byte))
	f.setTTLs[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type countingWeekendRepository struct {
	calls int
	cfg   calendar.WeekendConfig
	err   error
}

func (r *countingWeekendRepository) GetByCompanyID(ctx context.Context, companyID string) (calendar.WeekendConfig, error) {
	r.calls++
	if r.err != nil {
		return calendar.WeekendConfig{}, r.err
	}
	cfg := r.cfg
	cfg.CompanyID = companyID
	return cfg, nil
}

func (r *countingWeekendRepository) ListCompanyIDs(ctx context.Context) ([]string, error) {
	return []string{"c1"}, nil
}

func TestWeekendRepository_CachesAfterFirstRead(t *testing.T) {
	ctx := context.Background()
	next := &countingWeekendRepository{cfg: calendar.WeekendConfig{Days: []time.Weekday{time.Friday, time.Saturday}}}
	client := newFakeClient()
	repo := NewWeekendRepository(next, client, 0)

	first, err := repo.GetByCompanyID(ctx, "c1")
	require.NoError(t, err)
	second, err := repo.GetByCompanyID(ctx, "c1")
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, `["Friday","Saturday"]`, client.values["calendar:weekend:c1"])
	assert.Equal(t, DefaultTTL, client.setTTLs["calendar:weekend:c1"])
}

func TestWeekendRepository_RedisDownFallsThrough(t *testing.T) {
	ctx := context.Background()
	next := &countingWeekendRepository{cfg: calendar.FixedWeekend}
	client := newFakeClient()
	client.getErr = errors.New("connection refused")
	client.setErr = errors.New("connection refused")
	repo := NewWeekendRepository(next, client, time.Minute)

	cfg, err := repo.GetByCompanyID(ctx, "c1")

	require.NoError(t, err)
	assert.Equal(t, calendar.FixedWeekend.Days, cfg.Days)
	assert.Equal(t, 1, next.calls)
}

func TestWeekendRepository_RepositoryErrorIsReturned(t *testing.T) {
	next := &countingWeekendRepository{err: errors.New("db down")}
	repo := NewWeekendRepository(next, newFakeClient(), time.Minute)

	_, err := repo.GetByCompanyID(context.Background(), "c1")

	assert.EqualError(t, err, "db down")
}

func TestWeekendRepository_Invalidate(t *testing.T) {
	ctx := context.Background()
	next := &countingWeekendRepository{cfg: calendar.FixedWeekend}
	client := newFakeClient()
	repo := NewWeekendRepository(next, client, time.Minute)

	_, err := repo.GetByCompanyID(ctx, "c1")
	require.NoError(t, err)
	require.NoError(t, repo.Invalidate(ctx, "c1"))
	_, err = repo.GetByCompanyID(ctx, "c1")
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
}

func TestWeekendRepository_ListCompanyIDsPassesThrough(t *testing.T) {
	repo := NewWeekendRepository(&countingWeekendRepository{}, newFakeClient(), time.Minute)

	ids, err := repo.ListCompanyIDs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, ids)
}
