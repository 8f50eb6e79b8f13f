package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-resource-booking/internal/engine"
	"github.com/iliyamo/event-resource-booking/internal/service"
)

// AvailabilityHandler serves month-wide availability summaries.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(availability *service.AvailabilityService) *AvailabilityHandler {
	if availability == nil {
		panic("nil AvailabilityService passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{availability: availability}
}

// Month handles GET /v1/resources/:id/availability?year=&month=.
// Responses are read-only summaries for calendar rendering; a day shown
// as available is still re-checked at commit time.
func (h *AvailabilityHandler) Month(c echo.Context) error {
	resourceID := c.Param("id")
	if resourceID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "resource id is required"})
	}
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year < 2000 || year > 2200 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year must be a four-digit year"})
	}
	monthNum, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must be between 1 and 12"})
	}

	days, err := h.availability.MonthAvailability(c.Request().Context(), resourceID, year, time.Month(monthNum))
	if err != nil {
		if errors.Is(err, engine.ErrUnknownResource) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "resource not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load availability"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"resource_id": resourceID,
		"year":        year,
		"month":       monthNum,
		"days":        days,
	})
}
