package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-resource-booking/internal/handler"
	"github.com/iliyamo/event-resource-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers unauthenticated browse endpoints: the
// resource catalog and the month availability calendar.  Availability
// responses are cached; the optional cache middleware is applied only
// to that route so catalog changes show up immediately.
func RegisterPublic(e *echo.Echo, r *handler.ResourceHandler, a *handler.AvailabilityHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/resources", r.List)
	if cache != nil {
		e.GET("/v1/resources/:id/availability", a.Month, cache)
	} else {
		e.GET("/v1/resources/:id/availability", a.Month)
	}
}

// RegisterBooking registers the booking endpoint under /v1.  Any
// authenticated user may book; the commit transaction itself decides
// acceptance.  The rate limiter, when configured, runs after auth so
// its keys can include the user ID.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	mws := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER", "CUSTOMER"),
	}
	if limiter != nil {
		mws = append(mws, limiter)
	}
	g := e.Group("/v1", mws...)
	g.POST("/bookings", h.Create)
}

// RegisterAdmin registers OWNER-scoped block management under /v1/admin.
// All routes require a valid JWT and the OWNER role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER"),
	)
	g.POST("/blocks", h.CreateBlock)
	g.GET("/blocks", h.ListBlocks)
	g.DELETE("/blocks/:id", h.DeleteBlock)
}
