package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/event-resource-booking/internal/engine"
	"github.com/iliyamo/event-resource-booking/internal/model"
)

// ReservationRepo provides read and insert operations for
// reservations.  Reservations bind one resource to one event date and
// time window.  Rows are never updated in place; cancellation flips
// the status and frees the slot on the next read.  All inserts happen
// through InsertTx inside the booking store's locked transaction, so
// this repository deliberately exposes no unlocked write.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// ListForMonth returns all confirmed reservations for the given
// resources within one calendar month.  This is the single batch read
// the month compiler folds over.  The result is ordered by date and
// start so downstream output is deterministic.
func (r *ReservationRepo) ListForMonth(ctx context.Context, resourceIDs []string, year int, month time.Month) ([]model.Reservation, error) {
	if len(resourceIDs) == 0 {
		return []model.Reservation{}, nil
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	query := `SELECT id, resource_id, user_id, event_date, start_min, end_min, status, slot_label, created_at, updated_at
	          FROM reservations
	          WHERE resource_id IN (` + placeholders(len(resourceIDs)) + `)
	            AND event_date BETWEEN ? AND ?
	            AND status = ?
	          ORDER BY event_date, start_min`
	args := make([]interface{}, 0, len(resourceIDs)+3)
	for _, id := range resourceIDs {
		args = append(args, id)
	}
	args = append(args, first.Format(engine.DateFormat), last.Format(engine.DateFormat), model.StatusConfirmed)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// ListForDateTx returns the confirmed reservations for the given
// resources on one date, read inside an existing transaction.  This is
// the fresh state the evaluator re-checks before any insert.
func (r *ReservationRepo) ListForDateTx(ctx context.Context, tx *sql.Tx, resourceIDs []string, date string) ([]model.Reservation, error) {
	if len(resourceIDs) == 0 {
		return []model.Reservation{}, nil
	}
	query := `SELECT id, resource_id, user_id, event_date, start_min, end_min, status, slot_label, created_at, updated_at
	          FROM reservations
	          WHERE resource_id IN (` + placeholders(len(resourceIDs)) + `)
	            AND event_date = ?
	            AND status = ?
	          ORDER BY start_min`
	args := make([]interface{}, 0, len(resourceIDs)+2)
	for _, id := range resourceIDs {
		args = append(args, id)
	}
	args = append(args, date, model.StatusConfirmed)
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// InsertTx inserts a new reservation within the scope of an existing
// transaction.  It populates the generated ID on the provided record
// and queries the row back so timestamps reflect database defaults.
// The caller must commit or rollback the transaction.
func (r *ReservationRepo) InsertTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (resource_id, user_id, event_date, start_min, end_min, status, slot_label)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	var label interface{}
	if res.SlotLabel != "" {
		label = res.SlotLabel
	}
	result, err := tx.ExecContext(ctx, q, res.ResourceID, res.UserID, res.EventDate, res.StartMin, res.EndMin, res.Status, label)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	const sel = `SELECT id, resource_id, user_id, event_date, start_min, end_min, status, slot_label, created_at, updated_at
	             FROM reservations WHERE id = ?`
	row := tx.QueryRowContext(ctx, sel, res.ID)
	return scanReservation(row, res)
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(s scanner, res *model.Reservation) error {
	var eventDate time.Time
	var label sql.NullString
	if err := s.Scan(
		&res.ID, &res.ResourceID, &res.UserID, &eventDate, &res.StartMin, &res.EndMin,
		&res.Status, &label, &res.CreatedAt, &res.UpdatedAt,
	); err != nil {
		return err
	}
	// DATE columns come back as midnight time.Time values; keep the
	// date-only string form everywhere above the repository.
	res.EventDate = eventDate.Format(engine.DateFormat)
	if label.Valid {
		res.SlotLabel = label.String
	} else {
		res.SlotLabel = ""
	}
	return nil
}

func scanReservations(rows *sql.Rows) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// placeholders builds a "?, ?, ?" list for IN clauses.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
