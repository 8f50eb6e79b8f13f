package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-resource-booking/internal/engine"
	"github.com/iliyamo/event-resource-booking/internal/model"
	"github.com/iliyamo/event-resource-booking/internal/repository"
	"github.com/iliyamo/event-resource-booking/internal/service"
)

// memCatalog is a static in-memory catalog.
type memCatalog struct {
	profiles map[string]model.ResourceProfile
}

func (c *memCatalog) Classify(_ context.Context, id string) (model.ResourceProfile, error) {
	p, ok := c.profiles[id]
	if !ok {
		return model.ResourceProfile{}, repository.ErrResourceNotFound
	}
	return p, nil
}

// memStore is an in-memory Store whose mutex plays the role of the
// database advisory lock: commits for any scope serialize, reads see
// the latest committed state, and a failed callback leaves nothing
// behind.
type memStore struct {
	mu           sync.Mutex
	reservations []model.Reservation
	blocks       []model.Block
	nextID       uint64
	lockCalls    int
	failLocks    int // fail this many leading calls with ErrLockTimeout
}

func (s *memStore) WithDayLock(ctx context.Context, _ string, fn func(ctx context.Context, tx repository.StateTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockCalls++
	if s.failLocks > 0 {
		s.failLocks--
		return repository.ErrLockTimeout
	}
	mark := len(s.reservations)
	if err := fn(ctx, &memTx{store: s}); err != nil {
		s.reservations = s.reservations[:mark] // rollback
		return err
	}
	return nil
}

type memTx struct {
	store *memStore
}

func (t *memTx) DayState(_ context.Context, resourceIDs []string, poolID, date string) (repository.DayState, error) {
	ids := make(map[string]bool, len(resourceIDs))
	for _, id := range resourceIDs {
		ids[id] = true
	}
	var st repository.DayState
	for _, r := range t.store.reservations {
		if ids[r.ResourceID] && r.EventDate == date && r.Status == model.StatusConfirmed {
			st.Reservations = append(st.Reservations, r)
		}
	}
	for _, b := range t.store.blocks {
		if b.BlockDate == date && (b.CoversPool(poolID) || (b.ResourceID != nil && ids[*b.ResourceID])) {
			st.Blocks = append(st.Blocks, b)
		}
	}
	return st, nil
}

func (t *memTx) InsertReservation(_ context.Context, res *model.Reservation) error {
	t.store.nextID++
	res.ID = t.store.nextID
	t.store.reservations = append(t.store.reservations, *res)
	return nil
}

func newFixture(failLocks int) (*service.BookingService, *memStore) {
	catalog := &memCatalog{profiles: map[string]model.ResourceProfile{
		"dj-aria": {Class: model.ClassExclusive, PoolSize: 1, Units: []string{"dj-aria"}},
		"booth-1": {Class: model.ClassPool, PoolID: "photobooth", PoolSize: 2, Units: []string{"booth-1", "booth-2"}},
		"booth-2": {Class: model.ClassPool, PoolID: "photobooth", PoolSize: 2, Units: []string{"booth-1", "booth-2"}},
	}}
	store := &memStore{failLocks: failLocks}
	return service.NewBookingService(catalog, store, engine.DefaultRules()), store
}

func request(resourceID, date string, start, end engine.MinuteOfDay) service.BookingRequest {
	return service.BookingRequest{ResourceID: resourceID, UserID: "user-1", Date: date, Start: start, End: end}
}

func TestCommitBookingAcceptsAndPersists(t *testing.T) {
	svc, store := newFixture(0)

	res, placement, err := svc.CommitBooking(context.Background(), request("dj-aria", "2026-03-10", 8*60, 12*60))
	require.NoError(t, err)
	assert.Equal(t, engine.SlotMorning, placement.Slot)
	assert.Equal(t, "dj-aria", res.ResourceID)
	assert.Equal(t, model.StatusConfirmed, res.Status)
	assert.Equal(t, string(engine.SlotMorning), res.SlotLabel)
	assert.Len(t, store.reservations, 1)
}

func TestCommitBookingRace(t *testing.T) {
	// Two concurrent attempts for the same resource, date and window
	// must produce exactly one acceptance and one rejection.
	svc, store := newFixture(0)
	req := request("dj-aria", "2026-03-10", 8*60, 12*60)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, results[i] = svc.CommitBooking(context.Background(), req)
		}(i)
	}
	wg.Wait()

	accepted, rejected := 0, 0
	for _, err := range results {
		if err == nil {
			accepted++
		} else if engine.IsRejection(err) {
			rejected++
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, rejected)
	assert.Len(t, store.reservations, 1)
}

func TestCommitBookingPoolAssignment(t *testing.T) {
	svc, store := newFixture(0)
	date := "2026-06-01"

	_, first, err := svc.CommitBooking(context.Background(), request("booth-1", date, 18*60, 23*60))
	require.NoError(t, err)
	assert.Equal(t, "booth-1", first.UnitID)

	// Same pool, same date: lands on the other unit even though the
	// request named booth-1.
	_, second, err := svc.CommitBooking(context.Background(), request("booth-1", date, 18*60, 23*60))
	require.NoError(t, err)
	assert.Equal(t, "booth-2", second.UnitID)

	_, _, err = svc.CommitBooking(context.Background(), request("booth-2", date, 10*60, 14*60))
	assert.ErrorIs(t, err, engine.ErrResourceFullyBooked)
	assert.Len(t, store.reservations, 2)
}

func TestCommitBookingRetriesLockTimeout(t *testing.T) {
	// Two lock timeouts then success: bounded retry absorbs transient
	// contention.
	svc, store := newFixture(2)

	_, placement, err := svc.CommitBooking(context.Background(), request("dj-aria", "2026-03-10", 8*60, 12*60))
	require.NoError(t, err)
	assert.Equal(t, engine.SlotMorning, placement.Slot)
	assert.Equal(t, 3, store.lockCalls)
}

func TestCommitBookingExhaustsRetries(t *testing.T) {
	svc, store := newFixture(10)

	_, _, err := svc.CommitBooking(context.Background(), request("dj-aria", "2026-03-10", 8*60, 12*60))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrLockTimeout)
	assert.False(t, engine.IsRejection(err))
	assert.Equal(t, 3, store.lockCalls)
	assert.Empty(t, store.reservations)
}

func TestCommitBookingRejectionNotRetried(t *testing.T) {
	svc, store := newFixture(0)
	store.reservations = append(store.reservations, model.Reservation{
		ID: 1, ResourceID: "dj-aria", EventDate: "2026-03-10",
		StartMin: 12 * 60, EndMin: 22 * 60, Status: model.StatusConfirmed,
	})

	_, _, err := svc.CommitBooking(context.Background(), request("dj-aria", "2026-03-10", 8*60, 10*60))
	assert.ErrorIs(t, err, engine.ErrResourceFullyBooked)
	assert.Equal(t, 1, store.lockCalls)
	assert.Len(t, store.reservations, 1)
}

func TestCommitBookingUnknownResource(t *testing.T) {
	svc, store := newFixture(0)

	_, _, err := svc.CommitBooking(context.Background(), request("dj-nobody", "2026-03-10", 8*60, 10*60))
	assert.ErrorIs(t, err, engine.ErrUnknownResource)
	assert.Zero(t, store.lockCalls)
}

func TestCommitBookingBlockPrecedence(t *testing.T) {
	svc, store := newFixture(0)
	id := "dj-aria"
	store.blocks = append(store.blocks, model.Block{ID: 1, ResourceID: &id, BlockDate: "2026-03-10", Reason: "vacation"})

	_, _, err := svc.CommitBooking(context.Background(), request("dj-aria", "2026-03-10", 8*60, 10*60))
	assert.ErrorIs(t, err, engine.ErrDateBlocked)
	assert.Empty(t, store.reservations)
}
