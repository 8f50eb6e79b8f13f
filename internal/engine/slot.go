package engine

// slot.go holds the shared slot classification logic.  Both the
// conflict evaluator and the month compiler derive a day's state
// through these helpers, so the two can never disagree about whether a
// day still has room.

// SlotLabel describes which part of a day an exclusive-resource
// reservation occupies.  Pool units carry no label.
type SlotLabel string

const (
	SlotMorning SlotLabel = "morning"
	SlotEvening SlotLabel = "evening"
	SlotFullDay SlotLabel = "full-day"
)

// ClassifyFirst labels a reservation accepted on an otherwise empty
// day: starting at or after the full-day cutoff occupies the whole
// day, anything earlier is the morning candidate of a possible
// two-slot day.
func ClassifyFirst(start MinuteOfDay, r Rules) SlotLabel {
	if start >= r.FullDayStart {
		return SlotFullDay
	}
	return SlotMorning
}

// Posture describes what a single confirmed reservation leaves open on
// its day.  The derivation is symmetric in which slot was entered
// first: a reservation sitting in the morning region leaves the
// evening open, one sitting in the evening region leaves the morning
// open, and one straddling the middle of the day closes it entirely.
type Posture int

const (
	// PostureClosed – the existing reservation occupies the whole day.
	PostureClosed Posture = iota
	// PostureEveningOpen – the existing reservation is a morning slot;
	// a sufficiently late second booking may still be accepted.
	PostureEveningOpen
	// PostureMorningOpen – the existing reservation sits at or past the
	// evening floor; a morning booking may still fit before it.
	PostureMorningOpen
)

// DayPosture derives the posture of a lone reservation from its start
// time.  Legality is always re-derived from times; the label stored at
// accept time is presentational only.
func DayPosture(start MinuteOfDay, r Rules) Posture {
	if start < r.FullDayStart {
		return PostureEveningOpen
	}
	if start >= r.EveningFloor {
		return PostureMorningOpen
	}
	return PostureClosed
}

// pairLegal reports whether an earlier and a later reservation may
// share one day: the later start must clear both the evening floor and
// the turnaround gap after the earlier end, whichever is stricter.
func pairLegal(earlierEnd, laterStart MinuteOfDay, r Rules) bool {
	if laterStart < r.EveningFloor {
		return false
	}
	return laterStart >= earlierEnd+r.TurnaroundGap
}
