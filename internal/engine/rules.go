// Package engine implements the availability and conflict resolution
// core: slot classification, conflict evaluation for a proposed
// reservation, and batch compilation of month-wide availability.  All
// functions are pure; persistence and locking live in the repository
// and service layers.
package engine

import (
	"fmt"
	"time"
)

// Wire formats shared across the API surface.
const (
	// ClockFormat is the wall-clock layout accepted for start/end times.
	ClockFormat = "15:04"
	// DateFormat is the layout for event dates.
	DateFormat = "2006-01-02"
)

// MinuteOfDay is a time of day expressed as minutes since local
// midnight.  Reservations never cross midnight, so plain integer
// comparison is always correct and no timezone arithmetic is involved.
type MinuteOfDay int

// String renders the minute as HH:MM wall-clock time.
func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// ParseClock parses an HH:MM wall-clock string into a MinuteOfDay.
func ParseClock(s string) (MinuteOfDay, error) {
	t, err := time.Parse(ClockFormat, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return MinuteOfDay(t.Hour()*60 + t.Minute()), nil
}

// Rules bundles the business constants that drive slot classification
// for exclusive resources.  They are fixed values, not derived ones,
// and are exposed here by name so callers and tests can refer to them
// explicitly.
type Rules struct {
	// FullDayStart is the cutoff for the first reservation of a day: a
	// first booking starting at or after it occupies the whole day,
	// while an earlier start is the morning candidate of a possible
	// two-slot day.
	FullDayStart MinuteOfDay
	// EveningFloor is the earliest permitted start of an evening slot.
	EveningFloor MinuteOfDay
	// TurnaroundGap is the minimum pause between the end of the earlier
	// slot and the start of the later one on a shared day.
	TurnaroundGap MinuteOfDay
	// DailyCap is the hard maximum of reservations per exclusive
	// resource per day.
	DailyCap int
}

// DefaultRules returns the production rule set: 11:00 full-day cutoff,
// 14:00 evening floor, 3 hour turnaround, two reservations per day.
func DefaultRules() Rules {
	return Rules{
		FullDayStart:  11 * 60,
		EveningFloor:  14 * 60,
		TurnaroundGap: 3 * 60,
		DailyCap:      2,
	}
}
