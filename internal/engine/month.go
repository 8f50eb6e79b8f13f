package engine

import (
	"sort"
	"time"

	"github.com/iliyamo/event-resource-booking/internal/model"
)

// CompileMonth produces a DaySummary for every calendar day of one
// month in a single in-memory pass.  The caller supplies all
// reservations and blocks touching the scope (one exclusive resource,
// or every unit of a pool) for that month; the compiler never issues
// queries of its own.  Availability for exclusive resources is derived
// through the same posture helper the evaluator uses, because a day
// with one full-day reservation has used=1 yet zero remaining slots
// while a day with one morning reservation still has the evening open.
// Blocks are applied last and force the day closed.
func CompileMonth(profile model.ResourceProfile, year int, month time.Month, reservations []model.Reservation, blocks []model.Block, rules Rules) map[string]model.DaySummary {
	resByDate := make(map[string][]model.Reservation)
	for _, r := range reservations {
		if r.Status != model.StatusConfirmed {
			continue
		}
		resByDate[r.EventDate] = append(resByDate[r.EventDate], r)
	}
	blocksByDate := make(map[string][]model.Block)
	for _, b := range blocks {
		blocksByDate[b.BlockDate] = append(blocksByDate[b.BlockDate], b)
	}

	days := daysIn(year, month)
	out := make(map[string]model.DaySummary, days)
	for d := 1; d <= days; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format(DateFormat)
		res := resByDate[date]
		sort.Slice(res, func(i, j int) bool { return res[i].StartMin < res[j].StartMin })

		var s model.DaySummary
		s.Date = date
		switch profile.Class {
		case model.ClassPool:
			s.Capacity = profile.PoolSize
			s.Used, s.Remaining = poolCounts(profile, res, blocksByDate[date])
		default:
			s.Capacity = rules.DailyCap
			s.Used = len(res)
			s.Remaining = remainingExclusive(res, rules)
			for _, r := range res {
				s.Occupied = append(s.Occupied, model.TimeWindow{
					Start: MinuteOfDay(r.StartMin).String(),
					End:   MinuteOfDay(r.EndMin).String(),
				})
			}
		}
		s.Available = s.Remaining > 0

		for _, b := range blocksByDate[date] {
			if blockClosesScope(b, profile) {
				s.Blocked = true
				s.Available = false
				s.Remaining = 0
				break
			}
		}
		out[date] = s
	}
	return out
}

// remainingExclusive counts the slots an arbitrary new request could
// still claim on an exclusive resource's day.
func remainingExclusive(confirmed []model.Reservation, rules Rules) int {
	switch len(confirmed) {
	case 0:
		return rules.DailyCap
	case 1:
		if DayPosture(MinuteOfDay(confirmed[0].StartMin), rules) == PostureClosed {
			return 0
		}
		return 1
	default:
		return 0
	}
}

// poolCounts returns the used and assignable unit counts for one pool
// day.  Unit-level blocks shrink the assignable set without closing
// the whole date.
func poolCounts(profile model.ResourceProfile, confirmed []model.Reservation, blocks []model.Block) (used, remaining int) {
	occupied := make(map[string]bool, len(profile.Units))
	for _, r := range confirmed {
		occupied[r.ResourceID] = true
	}
	used = len(occupied)
	unavailable := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		if b.ResourceID != nil {
			unavailable[*b.ResourceID] = true
		}
	}
	for _, unit := range profile.Units {
		if !occupied[unit] && !unavailable[unit] {
			remaining++
		}
	}
	return used, remaining
}

// blockClosesScope reports whether the block forces the whole scope
// closed for the day: any block hit for an exclusive resource, but
// only a pool-wide block for a pool.
func blockClosesScope(b model.Block, profile model.ResourceProfile) bool {
	if profile.Class == model.ClassPool {
		return b.CoversPool(profile.PoolID)
	}
	if len(profile.Units) == 1 && b.CoversResource(profile.Units[0], profile.PoolID) {
		return true
	}
	return false
}

// daysIn returns the number of calendar days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
