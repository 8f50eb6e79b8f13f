package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-resource-booking/internal/engine"
	"github.com/iliyamo/event-resource-booking/internal/queue"
	"github.com/iliyamo/event-resource-booking/internal/service"
)

// BookingHandler accepts booking attempts and reports the outcome of
// the commit transaction.
type BookingHandler struct {
	bookings *service.BookingService
	// publish sends the confirmation event after a successful commit.
	// Overridable in tests; defaults to the RabbitMQ publisher.
	publish func(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	if bookings == nil {
		panic("nil BookingService passed to NewBookingHandler")
	}
	return &BookingHandler{bookings: bookings, publish: queue.PublishBookingConfirmed}
}

// bookingRequest is the request body for POST /v1/bookings.
type bookingRequest struct {
	ResourceID string `json:"resource_id"`
	Date       string `json:"date"`  // YYYY-MM-DD
	Start      string `json:"start"` // HH:MM
	End        string `json:"end"`   // HH:MM
}

// Create handles POST /v1/bookings.  The request either commits
// atomically or is rejected with a machine-readable reason code; there
// is no tentative state.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ResourceID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "resource_id is required"})
	}
	if _, err := time.Parse(engine.DateFormat, req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	start, err := engine.ParseClock(req.Start)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be HH:MM"})
	}
	end, err := engine.ParseClock(req.End)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be HH:MM"})
	}
	if start >= end {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be before end"})
	}

	res, placement, err := h.bookings.CommitBooking(c.Request().Context(), service.BookingRequest{
		ResourceID: req.ResourceID,
		UserID:     userID,
		Date:       req.Date,
		Start:      start,
		End:        end,
	})
	if err != nil {
		return bookingError(c, err)
	}

	// Best effort: the reservation is already committed, so a broker
	// outage must not fail the request.
	ev := queue.BookingConfirmedEvent{
		ReservationID: res.ID,
		UserID:        res.UserID,
		ResourceID:    res.ResourceID,
		EventDate:     res.EventDate,
		StartTime:     engine.MinuteOfDay(res.StartMin).String(),
		EndTime:       engine.MinuteOfDay(res.EndMin).String(),
		SlotLabel:     res.SlotLabel,
		ConfirmedAt:   res.CreatedAt.UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.publish(ctx, ev); err != nil {
			log.Printf("booking: publish confirmation for reservation %d failed: %v", res.ID, err)
		}
	}()

	body := echo.Map{
		"reservation_id": res.ID,
		"resource_id":    res.ResourceID,
		"date":           res.EventDate,
		"start":          ev.StartTime,
		"end":            ev.EndTime,
		"status":         res.Status,
	}
	if placement.Slot != "" {
		body["slot_label"] = placement.Slot
	} else {
		body["assigned_unit"] = placement.UnitID
	}
	return c.JSON(http.StatusCreated, body)
}

// bookingError maps commit outcomes to responses.  Domain rejections
// carry a reason code clients can branch on; infrastructure failures
// surface as a generic retryable error with details kept server-side.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, engine.ErrUnknownResource):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "resource not found"})
	case errors.Is(err, engine.ErrDateBlocked):
		return c.JSON(http.StatusConflict, echo.Map{"error": "date is blocked for this resource", "reason": "date_blocked"})
	case errors.Is(err, engine.ErrResourceFullyBooked):
		return c.JSON(http.StatusConflict, echo.Map{"error": "resource is fully booked on this date", "reason": "resource_fully_booked"})
	case errors.Is(err, engine.ErrInsufficientGap):
		return c.JSON(http.StatusConflict, echo.Map{"error": "requested time does not leave the required gap", "reason": "insufficient_gap"})
	default:
		log.Printf("booking: commit failed: %v", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "could not complete booking, please retry"})
	}
}
