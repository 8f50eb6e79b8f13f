package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-resource-booking/internal/engine"
	"github.com/iliyamo/event-resource-booking/internal/model"
)

func TestCompileMonthExclusive(t *testing.T) {
	reservations := []model.Reservation{
		confirmed(djID, "2026-03-10", "08:00", "12:00", t), // morning, evening open
		confirmed(djID, "2026-03-11", "12:00", "22:00", t), // full-day
		confirmed(djID, "2026-03-12", "08:00", "10:00", t),
		confirmed(djID, "2026-03-12", "15:00", "20:00", t), // both slots taken
		confirmed(djID, "2026-03-13", "16:00", "21:00", t), // evening region, morning open
	}
	cancelled := confirmed(djID, "2026-03-14", "12:00", "22:00", t)
	cancelled.Status = model.StatusCancelled
	reservations = append(reservations, cancelled)

	id := djID
	blocks := []model.Block{{ResourceID: &id, BlockDate: "2026-03-20", Reason: "vacation"}}

	out := engine.CompileMonth(djProfile(), 2026, time.March, reservations, blocks, engine.DefaultRules())
	require.Len(t, out, 31)

	empty := out["2026-03-02"]
	assert.Equal(t, 2, empty.Capacity)
	assert.Equal(t, 0, empty.Used)
	assert.Equal(t, 2, empty.Remaining)
	assert.True(t, empty.Available)

	morning := out["2026-03-10"]
	assert.Equal(t, 1, morning.Used)
	assert.Equal(t, 1, morning.Remaining)
	assert.True(t, morning.Available)
	require.Len(t, morning.Occupied, 1)
	assert.Equal(t, model.TimeWindow{Start: "08:00", End: "12:00"}, morning.Occupied[0])

	fullDay := out["2026-03-11"]
	assert.Equal(t, 1, fullDay.Used)
	assert.Equal(t, 0, fullDay.Remaining)
	assert.False(t, fullDay.Available)

	both := out["2026-03-12"]
	assert.Equal(t, 2, both.Used)
	assert.False(t, both.Available)
	require.Len(t, both.Occupied, 2)
	assert.Equal(t, "08:00", both.Occupied[0].Start) // sorted by start

	evening := out["2026-03-13"]
	assert.Equal(t, 1, evening.Used)
	assert.Equal(t, 1, evening.Remaining)
	assert.True(t, evening.Available)

	// Cancelled rows never count.
	assert.Equal(t, 0, out["2026-03-14"].Used)
	assert.True(t, out["2026-03-14"].Available)

	blocked := out["2026-03-20"]
	assert.True(t, blocked.Blocked)
	assert.False(t, blocked.Available)
	assert.Equal(t, 0, blocked.Remaining)
}

func TestCompileMonthPool(t *testing.T) {
	reservations := []model.Reservation{
		confirmed(booth1, "2026-06-01", "18:00", "23:00", t),
		confirmed(booth1, "2026-06-02", "10:00", "14:00", t),
		confirmed(booth2, "2026-06-02", "18:00", "23:00", t),
	}
	pool := poolID
	u2 := booth2
	blocks := []model.Block{
		{PoolID: &pool, BlockDate: "2026-06-10", Reason: "event"},
		{ResourceID: &u2, BlockDate: "2026-06-03", Reason: "repair"},
	}

	out := engine.CompileMonth(boothProfile(), 2026, time.June, reservations, blocks, engine.DefaultRules())
	require.Len(t, out, 30)

	one := out["2026-06-01"]
	assert.Equal(t, 2, one.Capacity)
	assert.Equal(t, 1, one.Used)
	assert.Equal(t, 1, one.Remaining)
	assert.True(t, one.Available)
	assert.Empty(t, one.Occupied) // time windows are an exclusive-class detail

	full := out["2026-06-02"]
	assert.Equal(t, 2, full.Used)
	assert.Equal(t, 0, full.Remaining)
	assert.False(t, full.Available)

	// A unit-level block shrinks the assignable set without closing the day.
	unitBlocked := out["2026-06-03"]
	assert.False(t, unitBlocked.Blocked)
	assert.Equal(t, 1, unitBlocked.Remaining)
	assert.True(t, unitBlocked.Available)

	poolBlocked := out["2026-06-10"]
	assert.True(t, poolBlocked.Blocked)
	assert.False(t, poolBlocked.Available)
}

func TestCompileMonthIdempotent(t *testing.T) {
	reservations := []model.Reservation{
		confirmed(djID, "2026-03-10", "08:00", "12:00", t),
		confirmed(djID, "2026-03-11", "12:00", "22:00", t),
	}
	id := djID
	blocks := []model.Block{{ResourceID: &id, BlockDate: "2026-03-20", Reason: "vacation"}}

	first := engine.CompileMonth(djProfile(), 2026, time.March, reservations, blocks, engine.DefaultRules())
	second := engine.CompileMonth(djProfile(), 2026, time.March, reservations, blocks, engine.DefaultRules())
	assert.Equal(t, first, second)
}

func TestCompileMonthFebruaryLeap(t *testing.T) {
	out := engine.CompileMonth(djProfile(), 2028, time.February, nil, nil, engine.DefaultRules())
	assert.Len(t, out, 29)
	out = engine.CompileMonth(djProfile(), 2026, time.February, nil, nil, engine.DefaultRules())
	assert.Len(t, out, 28)
}
