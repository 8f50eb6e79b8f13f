// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when the commit transaction
// accepts a reservation.  It carries the reservation unchanged so
// downstream collaborators (payment flow, notifications, analytics)
// can react without querying the primary database.
type BookingConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        string `json:"user_id"`
	ResourceID    string `json:"resource_id"`
	ResourceName  string `json:"resource_name,omitempty"`
	PoolID        string `json:"pool_id,omitempty"`
	EventDate     string `json:"event_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	SlotLabel     string `json:"slot_label,omitempty"`
	ConfirmedAt   string `json:"confirmed_at"`
}
