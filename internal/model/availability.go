package model

// TimeWindow is an occupied span of one day, rendered as wall-clock
// strings ("15:04") for calendar UIs.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaySummary is the derived availability of one resource (or pool) on
// one calendar date.  It is computed by the month compiler and never
// persisted.
//
// Capacity is the maximum number of legal concurrent reservations under
// the resource's scheduling class.  Remaining is not simply
// Capacity-Used: for an exclusive resource a single full-day
// reservation leaves Used=1 but Remaining=0, while a valid morning
// reservation leaves one evening slot open.
type DaySummary struct {
	Date      string       `json:"date"`
	Capacity  int          `json:"capacity"`
	Used      int          `json:"used"`
	Remaining int          `json:"remaining"`
	Available bool         `json:"available"`
	Blocked   bool         `json:"blocked"`
	Occupied  []TimeWindow `json:"occupied,omitempty"`
}
