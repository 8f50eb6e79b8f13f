package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-resource-booking/internal/engine"
	"github.com/iliyamo/event-resource-booking/internal/model"
	"github.com/iliyamo/event-resource-booking/internal/queue"
	"github.com/iliyamo/event-resource-booking/internal/repository"
	"github.com/iliyamo/event-resource-booking/internal/service"
)

// fakeCatalog serves static profiles the way the seeded resource table
// would.
type fakeCatalog struct {
	profiles map[string]model.ResourceProfile
}

func (f *fakeCatalog) Classify(_ context.Context, id string) (model.ResourceProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return model.ResourceProfile{}, repository.ErrResourceNotFound
	}
	return p, nil
}

// fakeStore keeps reservations in memory; its mutex stands in for the
// per-day advisory lock.
type fakeStore struct {
	mu           sync.Mutex
	reservations []model.Reservation
	blocks       []model.Block
	nextID       uint64
}

func (f *fakeStore) WithDayLock(ctx context.Context, _ string, fn func(ctx context.Context, tx repository.StateTx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	mark := len(f.reservations)
	if err := fn(ctx, &fakeTx{store: f}); err != nil {
		f.reservations = f.reservations[:mark]
		return err
	}
	return nil
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) DayState(_ context.Context, resourceIDs []string, poolID, date string) (repository.DayState, error) {
	ids := make(map[string]bool, len(resourceIDs))
	for _, id := range resourceIDs {
		ids[id] = true
	}
	var state repository.DayState
	for _, r := range t.store.reservations {
		if r.EventDate == date && ids[r.ResourceID] {
			state.Reservations = append(state.Reservations, r)
		}
	}
	for _, b := range t.store.blocks {
		if b.BlockDate != date {
			continue
		}
		if (b.ResourceID != nil && ids[*b.ResourceID]) || (b.PoolID != nil && poolID != "" && *b.PoolID == poolID) {
			state.Blocks = append(state.Blocks, b)
		}
	}
	return state, nil
}

func (t *fakeTx) InsertReservation(_ context.Context, res *model.Reservation) error {
	t.store.nextID++
	res.ID = t.store.nextID
	res.CreatedAt = time.Now().UTC()
	res.UpdatedAt = res.CreatedAt
	t.store.reservations = append(t.store.reservations, *res)
	return nil
}

func newTestBookingHandler(store *fakeStore) (*BookingHandler, chan queue.BookingConfirmedEvent) {
	catalog := &fakeCatalog{profiles: map[string]model.ResourceProfile{
		"dj-aria": {Class: model.ClassExclusive, PoolSize: 1, Units: []string{"dj-aria"}},
	}}
	svc := service.NewBookingService(catalog, store, engine.DefaultRules())
	h := NewBookingHandler(svc)
	published := make(chan queue.BookingConfirmedEvent, 4)
	h.publish = func(_ context.Context, ev queue.BookingConfirmedEvent) error {
		published <- ev
		return nil
	}
	return h, published
}

func postBooking(body string, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCreateBookingAccepted(t *testing.T) {
	h, published := newTestBookingHandler(&fakeStore{})

	c, rec := postBooking(`{"resource_id":"dj-aria","date":"2026-03-10","start":"09:00","end":"12:00"}`, "user-1")
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "dj-aria", body["resource_id"])
	assert.Equal(t, "morning", body["slot_label"])
	assert.Equal(t, "09:00", body["start"])
	assert.Equal(t, "12:00", body["end"])
	assert.EqualValues(t, 1, body["reservation_id"])

	select {
	case ev := <-published:
		assert.EqualValues(t, 1, ev.ReservationID)
		assert.Equal(t, "user-1", ev.UserID)
		assert.Equal(t, "2026-03-10", ev.EventDate)
	case <-time.After(time.Second):
		t.Fatal("confirmation event was not published")
	}
}

func TestCreateBookingGapRejected(t *testing.T) {
	h, _ := newTestBookingHandler(&fakeStore{})

	c, rec := postBooking(`{"resource_id":"dj-aria","date":"2026-03-10","start":"09:00","end":"12:00"}`, "user-1")
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Second booking starting before the turnaround gap has elapsed.
	c, rec = postBooking(`{"resource_id":"dj-aria","date":"2026-03-10","start":"14:30","end":"20:00"}`, "user-2")
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "insufficient_gap", decodeBody(t, rec)["reason"])
}

func TestCreateBookingBlockedDate(t *testing.T) {
	resID := "dj-aria"
	store := &fakeStore{blocks: []model.Block{{ID: 1, ResourceID: &resID, BlockDate: "2026-03-10"}}}
	h, _ := newTestBookingHandler(store)

	c, rec := postBooking(`{"resource_id":"dj-aria","date":"2026-03-10","start":"09:00","end":"12:00"}`, "user-1")
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "date_blocked", decodeBody(t, rec)["reason"])
}

func TestCreateBookingUnknownResource(t *testing.T) {
	h, _ := newTestBookingHandler(&fakeStore{})

	c, rec := postBooking(`{"resource_id":"ghost","date":"2026-03-10","start":"09:00","end":"12:00"}`, "user-1")
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateBookingValidation(t *testing.T) {
	h, _ := newTestBookingHandler(&fakeStore{})

	cases := map[string]string{
		"missing resource": `{"date":"2026-03-10","start":"09:00","end":"12:00"}`,
		"bad date":         `{"resource_id":"dj-aria","date":"10-03-2026","start":"09:00","end":"12:00"}`,
		"bad start":        `{"resource_id":"dj-aria","date":"2026-03-10","start":"9am","end":"12:00"}`,
		"inverted window":  `{"resource_id":"dj-aria","date":"2026-03-10","start":"12:00","end":"09:00"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, rec := postBooking(body, "user-1")
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateBookingRequiresUser(t *testing.T) {
	h, _ := newTestBookingHandler(&fakeStore{})

	c, rec := postBooking(`{"resource_id":"dj-aria","date":"2026-03-10","start":"09:00","end":"12:00"}`, "")
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
