// Package handler exposes the HTTP surface of the booking service.
// Handlers validate input, delegate decisions to the service layer and
// translate domain rejections into specific responses; they never
// contain scheduling logic of their own.
package handler

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the authenticated subject stored in context by
// the JWT middleware.  Subjects are opaque strings issued by the
// external identity provider.
func getUserID(c echo.Context) (string, error) {
	if v, ok := c.Get("user_id").(string); ok && v != "" {
		return v, nil
	}
	return "", errors.New("missing user_id in context")
}
