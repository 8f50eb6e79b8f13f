package engine

import (
	"github.com/iliyamo/event-resource-booking/internal/model"
)

// Request is a proposed reservation as seen by the evaluator.  The
// window is assumed to be validated (start before end, both within one
// day) by the HTTP layer before evaluation.
type Request struct {
	ResourceID string
	Date       string // YYYY-MM-DD
	Start      MinuteOfDay
	End        MinuteOfDay
}

// Placement describes where an accepted reservation landed: the slot
// label for exclusive resources, or the assigned unit for pool
// requests.
type Placement struct {
	Slot   SlotLabel
	UnitID string
}

// Evaluate decides whether the proposed reservation may be added to
// the existing reservation set for one date.  It is a pure function:
// existing and blocks must be the state for the request's scope (the
// resource itself, or every unit of its pool) on the request's date.
// Cancelled reservations are ignored.  On rejection the returned error
// is one of the sentinel rejections in errors.go.
func Evaluate(profile model.ResourceProfile, req Request, existing []model.Reservation, blocks []model.Block, rules Rules) (Placement, error) {
	switch profile.Class {
	case model.ClassExclusive:
		return evaluateExclusive(profile, req, existing, blocks, rules)
	case model.ClassPool:
		return evaluatePool(profile, req, existing, blocks, rules)
	default:
		return Placement{}, ErrUnknownResource
	}
}

// evaluateExclusive applies the single-slot-exclusive rules: a manual
// block closes the day outright; an empty day accepts and classifies
// by start time; a day with one reservation accepts a second only when
// the pair splits into a morning and an evening slot with the
// turnaround gap between them; two reservations is the hard cap.
func evaluateExclusive(profile model.ResourceProfile, req Request, existing []model.Reservation, blocks []model.Block, rules Rules) (Placement, error) {
	for _, b := range blocks {
		if b.CoversResource(req.ResourceID, profile.PoolID) {
			return Placement{}, ErrDateBlocked
		}
	}
	confirmed := confirmedFor(existing, req.ResourceID)
	switch len(confirmed) {
	case 0:
		return Placement{Slot: ClassifyFirst(req.Start, rules), UnitID: req.ResourceID}, nil
	case 1:
		cur := confirmed[0]
		switch DayPosture(MinuteOfDay(cur.StartMin), rules) {
		case PostureEveningOpen:
			// Existing is the morning slot; the proposal must be a
			// legal evening.
			if pairLegal(MinuteOfDay(cur.EndMin), req.Start, rules) {
				return Placement{Slot: SlotEvening, UnitID: req.ResourceID}, nil
			}
			return Placement{}, ErrInsufficientGap
		case PostureMorningOpen:
			// Existing sits in the evening region; the proposal may
			// still claim the morning if the existing start clears the
			// gap after the proposed end.  Same rule, roles swapped.
			if req.Start < rules.FullDayStart && pairLegal(req.End, MinuteOfDay(cur.StartMin), rules) {
				return Placement{Slot: SlotMorning, UnitID: req.ResourceID}, nil
			}
			return Placement{}, ErrInsufficientGap
		default:
			return Placement{}, ErrResourceFullyBooked
		}
	default:
		// Hard cap of two reservations per day.
		return Placement{}, ErrResourceFullyBooked
	}
}

// evaluatePool applies the pool-member rules at the pool level: a
// block naming the whole pool closes the date; otherwise the request
// is assigned to the first unit, in (rank, id) order, that has neither
// a confirmed reservation nor a unit-level block on that date.  Pool
// units carry no time-of-day constraints.
func evaluatePool(profile model.ResourceProfile, req Request, existing []model.Reservation, blocks []model.Block, rules Rules) (Placement, error) {
	occupied := make(map[string]bool, len(profile.Units))
	for _, b := range blocks {
		if b.CoversPool(profile.PoolID) {
			return Placement{}, ErrDateBlocked
		}
		if b.ResourceID != nil {
			occupied[*b.ResourceID] = true
		}
	}
	for _, r := range existing {
		if r.Status == model.StatusConfirmed {
			occupied[r.ResourceID] = true
		}
	}
	for _, unit := range profile.Units {
		if !occupied[unit] {
			return Placement{UnitID: unit}, nil
		}
	}
	return Placement{}, ErrResourceFullyBooked
}

// confirmedFor filters the reservation set down to confirmed rows for
// one resource.
func confirmedFor(existing []model.Reservation, resourceID string) []model.Reservation {
	out := make([]model.Reservation, 0, len(existing))
	for _, r := range existing {
		if r.ResourceID == resourceID && r.Status == model.StatusConfirmed {
			out = append(out, r)
		}
	}
	return out
}
