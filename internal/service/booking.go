// Package service orchestrates the availability engine against the
// storage layer.  BookingService.CommitBooking is the only legal path
// for creating a reservation: every commit re-reads the day's state
// and re-runs the evaluator inside the storage lock, so an earlier
// availability read can never be trusted as a decision.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/event-resource-booking/internal/engine"
	"github.com/iliyamo/event-resource-booking/internal/model"
	"github.com/iliyamo/event-resource-booking/internal/repository"
)

const (
	// maxCommitAttempts bounds retries of infrastructure failures.
	// Re-validation inside the lock makes retrying safe; domain
	// rejections are terminal and never retried.
	maxCommitAttempts = 3
	// commitTimeout aborts a stuck commit attempt so no request blocks
	// indefinitely.
	commitTimeout = 5 * time.Second
)

// Catalog resolves a resource ID into its scheduling profile.
// *repository.ResourceRepo satisfies it.
type Catalog interface {
	Classify(ctx context.Context, id string) (model.ResourceProfile, error)
}

// Store serializes and persists booking commits per (scope, date).
// *repository.BookingStore satisfies it.
type Store interface {
	WithDayLock(ctx context.Context, key string, fn func(ctx context.Context, tx repository.StateTx) error) error
}

// BookingService owns the commit transaction.
type BookingService struct {
	catalog Catalog
	store   Store
	rules   engine.Rules
}

// NewBookingService constructs a BookingService.  All dependencies
// must be non-nil.
func NewBookingService(catalog Catalog, store Store, rules engine.Rules) *BookingService {
	if catalog == nil || store == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{catalog: catalog, store: store, rules: rules}
}

// BookingRequest is a validated booking attempt.
type BookingRequest struct {
	ResourceID string
	UserID     string
	Date       string // YYYY-MM-DD
	Start      engine.MinuteOfDay
	End        engine.MinuteOfDay
}

// CommitBooking atomically accepts or rejects a booking attempt.  The
// catalog lookup happens outside the lock (class membership is
// static); everything else runs inside one locked transaction: fresh
// read of the day's reservations and blocks, evaluation, and the
// insert.  On acceptance the created reservation and its placement are
// returned.  Domain rejections come back unchanged; infrastructure
// failures are retried up to maxCommitAttempts and then wrapped so the
// handler can surface a generic retryable error.
func (s *BookingService) CommitBooking(ctx context.Context, req BookingRequest) (*model.Reservation, engine.Placement, error) {
	profile, err := s.catalog.Classify(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return nil, engine.Placement{}, engine.ErrUnknownResource
		}
		return nil, engine.Placement{}, fmt.Errorf("classify resource: %w", err)
	}

	key := lockKey(profile, req.ResourceID, req.Date)
	evalReq := engine.Request{ResourceID: req.ResourceID, Date: req.Date, Start: req.Start, End: req.End}

	var lastErr error
	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		var created *model.Reservation
		var placed engine.Placement
		cctx, cancel := context.WithTimeout(ctx, commitTimeout)
		err := s.store.WithDayLock(cctx, key, func(ctx context.Context, tx repository.StateTx) error {
			state, err := tx.DayState(ctx, profile.Units, profile.PoolID, req.Date)
			if err != nil {
				return err
			}
			placement, err := engine.Evaluate(profile, evalReq, state.Reservations, state.Blocks, s.rules)
			if err != nil {
				return err
			}
			res := &model.Reservation{
				ResourceID: placement.UnitID,
				UserID:     req.UserID,
				EventDate:  req.Date,
				StartMin:   int(req.Start),
				EndMin:     int(req.End),
				Status:     model.StatusConfirmed,
				SlotLabel:  string(placement.Slot),
			}
			if err := tx.InsertReservation(ctx, res); err != nil {
				return err
			}
			created = res
			placed = placement
			return nil
		})
		cancel()
		if err == nil {
			return created, placed, nil
		}
		if engine.IsRejection(err) {
			return nil, engine.Placement{}, err
		}
		lastErr = err
		log.Printf("booking: commit attempt %d/%d for %s failed: %v", attempt, maxCommitAttempts, key, err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, engine.Placement{}, fmt.Errorf("booking commit for %s: %w", key, lastErr)
}

// lockKey names the advisory lock for one scheduling scope and date.
// Pool members share their pool's key so racing requests for different
// units of the same pool still serialize.
func lockKey(profile model.ResourceProfile, resourceID, date string) string {
	scope := profile.PoolID
	if scope == "" {
		scope = resourceID
	}
	return "booking:" + scope + ":" + date
}
