package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iurnickita/autosalon/internal/cache/config"
	"github.com/iurnickita/autosalon/internal/model"
)

type countingSource struct {
	calls int
}

func (s *countingSource) StatsAutoSalon(ctx context.Context) ([]model.AutoSalonStats, error) {
	s.calls++
	return []model.AutoSalonStats{{
		Name:             "Center",
		Balance:          decimal.RequireFromString("100.50"),
		MaxSupplierPrice: decimal.NewNullDecimal(decimal.RequireFromString("50")),
	}}, nil
}

func (s *countingSource) StatsSupplier(ctx context.Context) ([]model.SupplierStats, error) {
	s.calls++
	return []model.SupplierStats{{Name: "BMW AG"}}, nil
}

func (s *countingSource) StatsCustomer(ctx context.Context) (model.CustomerStats, error) {
	s.calls++
	return model.CustomerStats{CustomerCount: 2}, nil
}

func TestCacheDisabled(t *testing.T) {
	source := &countingSource{}
	stats := NewCachedStats(source, nil, time.Minute, zap.NewNop())
	ctx := context.Background()

	_, err := stats.StatsAutoSalon(ctx)
	require.NoError(t, err)
	_, err = stats.StatsAutoSalon(ctx)
	require.NoError(t, err)
	stats.Invalidate(ctx)

	require.Equal(t, 2, source.calls)
}

// Только при заданном REDIS_ADDR
func TestCacheRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR is not set")
	}
	rdb, err := ConnectRedis(config.Config{RedisAddr: addr})
	require.NoError(t, err)
	defer rdb.Close()

	source := &countingSource{}
	stats := NewCachedStats(source, rdb, time.Minute, zap.NewNop())
	ctx := context.Background()
	stats.Invalidate(ctx)

	first, err := stats.StatsAutoSalon(ctx)
	require.NoError(t, err)
	second, err := stats.StatsAutoSalon(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, source.calls)
	require.Equal(t, first[0].Name, second[0].Name)
	require.True(t, first[0].Balance.Equal(second[0].Balance))

	stats.Invalidate(ctx)
	_, err = stats.StatsAutoSalon(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, source.calls)
}
