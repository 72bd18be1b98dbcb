package settings

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type fakeSource struct {
	calls    int
	settings *domain.MerchantSettings
	err      error
}

func (f *fakeSource) GetSettings(_ context.Context, _ int64) (*domain.MerchantSettings, error) {
	f.calls++
	return f.settings, f.err
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

type fakeTx struct{ dbmetrics.DBExecutor }

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return sql.ErrTxDone }

func newCache(t *testing.T, source Source) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(source, client, time.Minute, nopLogger{}), mr
}

func sampleSettings() *domain.MerchantSettings {
	return &domain.MerchantSettings{
		MerchantID: 3,
		BusinessHours: map[time.Weekday]domain.DayHours{
			time.Monday: {IsOpen: true, Open: types.MustParseTimeOfDay("09:00"), Close: types.MustParseTimeOfDay("18:00")},
		},
		HasBusinessHours:             true,
		MinimumBookingNoticeMinutes:  30,
		ShowOnlyRosteredStaffDefault: true,
	}
}

func TestCache_ReadThrough(t *testing.T) {
	source := &fakeSource{settings: sampleSettings()}
	cache, mr := newCache(t, source)
	ctx := context.Background()

	first, err := cache.GetSettings(ctx, 3)
	require.NoError(t, err)
	second, err := cache.GetSettings(ctx, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("availability:merchant_settings:3"))

	mr.FastForward(2 * time.Minute)
	_, err = cache.GetSettings(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

func TestCache_BypassedInsideTransaction(t *testing.T) {
	source := &fakeSource{settings: sampleSettings()}
	cache, mr := newCache(t, source)
	ctx := dbmetrics.WithTx(context.Background(), fakeTx{})

	_, err := cache.GetSettings(ctx, 3)
	require.NoError(t, err)
	_, err = cache.GetSettings(ctx, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, source.calls)
	assert.False(t, mr.Exists("availability:merchant_settings:3"))
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	notFound := errors.New("not found")
	source := &fakeSource{err: notFound}
	cache, mr := newCache(t, source)

	_, err := cache.GetSettings(context.Background(), 3)
	assert.ErrorIs(t, err, notFound)
	assert.False(t, mr.Exists("availability:merchant_settings:3"))
}

func TestCache_RedisDownFallsBackToSource(t *testing.T) {
	source := &fakeSource{settings: sampleSettings()}
	cache, mr := newCache(t, source)
	mr.Close()

	settings, err := cache.GetSettings(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 30, settings.MinimumBookingNoticeMinutes)
}

func TestCache_Disabled(t *testing.T) {
	source := &fakeSource{settings: sampleSettings()}
	cache := NewCache(source, nil, time.Minute, nopLogger{})

	_, err := cache.GetSettings(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)
}
