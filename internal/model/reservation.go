package model

import "time"

// Reservation statuses.  A reservation is never mutated in place once
// confirmed; a change is a cancel plus a new reservation.
const (
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// Reservation records a confirmed time commitment of one resource on
// one event date.  Times of day are stored as minutes since local
// midnight so that comparisons never involve timezone arithmetic; the
// event date is a plain YYYY-MM-DD string.
//
// Fields:
//  ID         – primary key identifier.
//  ResourceID – resource (or pool unit) the reservation occupies.
//  UserID     – customer who booked, as issued by the identity provider.
//  EventDate  – calendar date of the event (YYYY-MM-DD).
//  StartMin   – start of the window in minutes since midnight.
//  EndMin     – end of the window in minutes since midnight.
//  Status     – CONFIRMED or CANCELLED.
//  SlotLabel  – morning/evening/full-day for exclusive resources,
//               empty for pool units.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Reservation struct {
	ID         uint64    // reservations.id
	ResourceID string    // reservations.resource_id
	UserID     string    // reservations.user_id
	EventDate  string    // reservations.event_date
	StartMin   int       // reservations.start_min
	EndMin     int       // reservations.end_min
	Status     string    // reservations.status
	SlotLabel  string    // reservations.slot_label (empty when NULL)
	CreatedAt  time.Time // reservations.created_at
	UpdatedAt  time.Time // reservations.updated_at
}
