package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-resource-booking/internal/engine"
	"github.com/iliyamo/event-resource-booking/internal/model"
	"github.com/iliyamo/event-resource-booking/internal/service"
)

// memReader serves canned month reads.
type memReader struct {
	reservations []model.Reservation
}

func (r *memReader) ListForMonth(_ context.Context, _ []string, _ int, _ time.Month) ([]model.Reservation, error) {
	return r.reservations, nil
}

// blockReaderFunc adapts a function to the BlockReader interface.
type blockReaderFunc func(ctx context.Context, resourceIDs []string, poolID string, year int, month time.Month) ([]model.Block, error)

func (f blockReaderFunc) ListForMonth(ctx context.Context, resourceIDs []string, poolID string, year int, month time.Month) ([]model.Block, error) {
	return f(ctx, resourceIDs, poolID, year, month)
}

func TestMonthAvailability(t *testing.T) {
	catalog := &memCatalog{profiles: map[string]model.ResourceProfile{
		"dj-aria": {Class: model.ClassExclusive, PoolSize: 1, Units: []string{"dj-aria"}},
	}}
	reader := &memReader{
		reservations: []model.Reservation{{
			ID: 1, ResourceID: "dj-aria", EventDate: "2026-03-10",
			StartMin: 8 * 60, EndMin: 12 * 60, Status: model.StatusConfirmed,
		}},
	}
	id := "dj-aria"
	blocks := blockReaderFunc(func(context.Context, []string, string, int, time.Month) ([]model.Block, error) {
		return []model.Block{{ID: 1, ResourceID: &id, BlockDate: "2026-03-20", Reason: "vacation"}}, nil
	})
	svc := service.NewAvailabilityService(catalog, reader, blocks, engine.DefaultRules())

	out, err := svc.MonthAvailability(context.Background(), "dj-aria", 2026, time.March)
	require.NoError(t, err)
	require.Len(t, out, 31)
	assert.Equal(t, 1, out["2026-03-10"].Used)
	assert.True(t, out["2026-03-10"].Available)
	assert.True(t, out["2026-03-20"].Blocked)

	// Idempotent: a second read with no writes in between is identical.
	again, err := svc.MonthAvailability(context.Background(), "dj-aria", 2026, time.March)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestMonthAvailabilityUnknownResource(t *testing.T) {
	catalog := &memCatalog{profiles: map[string]model.ResourceProfile{}}
	reader := &memReader{}
	blocks := blockReaderFunc(func(context.Context, []string, string, int, time.Month) ([]model.Block, error) {
		return nil, nil
	})
	svc := service.NewAvailabilityService(catalog, reader, blocks, engine.DefaultRules())

	_, err := svc.MonthAvailability(context.Background(), "dj-nobody", 2026, time.March)
	assert.ErrorIs(t, err, engine.ErrUnknownResource)
}
