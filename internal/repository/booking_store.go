package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/event-resource-booking/internal/model"
)

// DayState is the freshly read scheduling state for one scope (a
// resource or a whole pool) on one date.  It is the only input the
// evaluator sees inside the commit transaction.
type DayState struct {
	Reservations []model.Reservation
	Blocks       []model.Block
}

// StateTx exposes the reads and the single write available inside the
// commit lock.  Implementations run everything on one transaction so
// the evaluated state and the insert cannot diverge.
type StateTx interface {
	DayState(ctx context.Context, resourceIDs []string, poolID, date string) (DayState, error)
	InsertReservation(ctx context.Context, res *model.Reservation) error
}

// BookingStore serializes booking commits per (scope, date) using a
// MySQL advisory lock.  The service may run as multiple stateless
// instances, so the mutual exclusion must live in the database, not in
// process memory.  GET_LOCK is session-scoped; the store pins one
// connection for the lock and runs the transaction on that same
// connection so the lock spans the whole read-evaluate-insert unit.
type BookingStore struct {
	db           *sql.DB
	reservations *ReservationRepo
	blocks       *BlockRepo
	lockWait     time.Duration
}

// NewBookingStore constructs a BookingStore.  All dependencies must be
// non-nil.
func NewBookingStore(db *sql.DB, reservations *ReservationRepo, blocks *BlockRepo) *BookingStore {
	if db == nil || reservations == nil || blocks == nil {
		panic("nil dependency passed to NewBookingStore")
	}
	return &BookingStore{
		db:           db,
		reservations: reservations,
		blocks:       blocks,
		lockWait:     3 * time.Second,
	}
}

// WithDayLock acquires the advisory lock named by key, opens a
// transaction on the same connection, and runs fn with transactional
// state access.  The transaction commits only when fn returns nil;
// any error rolls back with no partial writes.  A lock wait past the
// configured timeout returns ErrLockTimeout, which callers may retry.
func (s *BookingStore) WithDayLock(ctx context.Context, key string, fn func(ctx context.Context, tx StateTx) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	var got sql.NullInt64
	if err := conn.QueryRowContext(ctx, `SELECT GET_LOCK(?, ?)`, key, int(s.lockWait.Seconds())).Scan(&got); err != nil {
		return fmt.Errorf("acquire lock %q: %w", key, err)
	}
	// GET_LOCK returns 1 on success, 0 on timeout, NULL on error.
	if !got.Valid || got.Int64 != 1 {
		return ErrLockTimeout
	}
	defer func() {
		// Release on a background context so a cancelled request still
		// frees the lock before the connection returns to the pool.
		rctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_, _ = conn.ExecContext(rctx, `DO RELEASE_LOCK(?)`, key)
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(ctx, &txState{tx: tx, store: s}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}

// txState adapts one open transaction to the StateTx interface.
type txState struct {
	tx    *sql.Tx
	store *BookingStore
}

func (t *txState) DayState(ctx context.Context, resourceIDs []string, poolID, date string) (DayState, error) {
	reservations, err := t.store.reservations.ListForDateTx(ctx, t.tx, resourceIDs, date)
	if err != nil {
		return DayState{}, err
	}
	blocks, err := t.store.blocks.ListForDateTx(ctx, t.tx, resourceIDs, poolID, date)
	if err != nil {
		return DayState{}, err
	}
	return DayState{Reservations: reservations, Blocks: blocks}, nil
}

func (t *txState) InsertReservation(ctx context.Context, res *model.Reservation) error {
	return t.store.reservations.InsertTx(ctx, t.tx, res)
}
