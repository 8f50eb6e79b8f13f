package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-resource-booking/internal/repository"
)

// ResourceHandler serves the public resource catalog.
type ResourceHandler struct {
	resources *repository.ResourceRepo
}

// NewResourceHandler constructs a ResourceHandler.
func NewResourceHandler(resources *repository.ResourceRepo) *ResourceHandler {
	if resources == nil {
		panic("nil ResourceRepo passed to NewResourceHandler")
	}
	return &ResourceHandler{resources: resources}
}

// publicResource is the catalog entry exposed to clients.  Internal
// fields like unit rank stay out of the public listing.
type publicResource struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Class  string `json:"class"`
	PoolID string `json:"pool_id,omitempty"`
}

// List handles GET /v1/resources and returns every bookable resource.
func (h *ResourceHandler) List(c echo.Context) error {
	resources, err := h.resources.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load resources"})
	}
	items := make([]publicResource, 0, len(resources))
	for _, r := range resources {
		items = append(items, publicResource{
			ID:     r.ID,
			Name:   r.Name,
			Class:  string(r.Class),
			PoolID: r.PoolID,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
