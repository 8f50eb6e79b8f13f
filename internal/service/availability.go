package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/event-resource-booking/internal/engine"
	"github.com/iliyamo/event-resource-booking/internal/model"
	"github.com/iliyamo/event-resource-booking/internal/repository"
)

// ReservationReader is the month-scoped reservation read the compiler
// folds over.  *repository.ReservationRepo satisfies it.
type ReservationReader interface {
	ListForMonth(ctx context.Context, resourceIDs []string, year int, month time.Month) ([]model.Reservation, error)
}

// BlockReader is the month-scoped block read.  *repository.BlockRepo
// satisfies it.
type BlockReader interface {
	ListForMonth(ctx context.Context, resourceIDs []string, poolID string, year int, month time.Month) ([]model.Block, error)
}

// AvailabilityService serves month-wide availability summaries for
// calendar rendering.  Reads are not locked and may be momentarily
// stale; the authoritative check happens again at commit time.
type AvailabilityService struct {
	catalog      Catalog
	reservations ReservationReader
	blocks       BlockReader
	rules        engine.Rules
}

// NewAvailabilityService constructs an AvailabilityService.  All
// dependencies must be non-nil.
func NewAvailabilityService(catalog Catalog, reservations ReservationReader, blocks BlockReader, rules engine.Rules) *AvailabilityService {
	if catalog == nil || reservations == nil || blocks == nil {
		panic("nil dependency passed to NewAvailabilityService")
	}
	return &AvailabilityService{catalog: catalog, reservations: reservations, blocks: blocks, rules: rules}
}

// MonthAvailability returns a summary for every day of the month for
// the resource (or, for a pool member, its whole pool).  One batch
// read of reservations and blocks feeds a single in-memory fold; the
// evaluator is never invoked per day.
func (s *AvailabilityService) MonthAvailability(ctx context.Context, resourceID string, year int, month time.Month) (map[string]model.DaySummary, error) {
	profile, err := s.catalog.Classify(ctx, resourceID)
	if err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return nil, engine.ErrUnknownResource
		}
		return nil, fmt.Errorf("classify resource: %w", err)
	}
	reservations, err := s.reservations.ListForMonth(ctx, profile.Units, year, month)
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}
	blocks, err := s.blocks.ListForMonth(ctx, profile.Units, profile.PoolID, year, month)
	if err != nil {
		return nil, fmt.Errorf("load blocks: %w", err)
	}
	return engine.CompileMonth(profile, year, month, reservations, blocks, s.rules), nil
}
