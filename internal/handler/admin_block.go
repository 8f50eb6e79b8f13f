package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-resource-booking/internal/engine"
	"github.com/iliyamo/event-resource-booking/internal/model"
	"github.com/iliyamo/event-resource-booking/internal/repository"
)

// AdminHandler manages manual blocks.  All routes here sit behind the
// OWNER role; a block removes a date from availability for one resource
// or one whole pool, regardless of existing reservations.
type AdminHandler struct {
	blocks    *repository.BlockRepo
	resources *repository.ResourceRepo
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(blocks *repository.BlockRepo, resources *repository.ResourceRepo) *AdminHandler {
	if blocks == nil || resources == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{blocks: blocks, resources: resources}
}

// createBlockRequest is the request body for POST /v1/admin/blocks.
// Exactly one of resource_id and pool_id must be set.
type createBlockRequest struct {
	ResourceID string `json:"resource_id"`
	PoolID     string `json:"pool_id"`
	Date       string `json:"date"` // YYYY-MM-DD
	Reason     string `json:"reason"`
}

// blockView is the block representation returned to admins.
type blockView struct {
	ID         uint64  `json:"id"`
	ResourceID *string `json:"resource_id,omitempty"`
	PoolID     *string `json:"pool_id,omitempty"`
	Date       string  `json:"date"`
	Reason     string  `json:"reason,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func toBlockView(b model.Block) blockView {
	return blockView{
		ID:         b.ID,
		ResourceID: b.ResourceID,
		PoolID:     b.PoolID,
		Date:       b.BlockDate,
		Reason:     b.Reason,
		CreatedAt:  b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateBlock handles POST /v1/admin/blocks.
func (h *AdminHandler) CreateBlock(c echo.Context) error {
	var req createBlockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if (req.ResourceID == "") == (req.PoolID == "") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "exactly one of resource_id and pool_id must be set"})
	}
	if _, err := time.Parse(engine.DateFormat, req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	block := &model.Block{BlockDate: req.Date, Reason: req.Reason}
	if req.ResourceID != "" {
		if _, err := h.resources.GetByID(c.Request().Context(), req.ResourceID); err != nil {
			if errors.Is(err, repository.ErrResourceNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "resource not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify resource"})
		}
		block.ResourceID = &req.ResourceID
	} else {
		block.PoolID = &req.PoolID
	}

	if err := h.blocks.Create(c.Request().Context(), block); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create block"})
	}
	return c.JSON(http.StatusCreated, toBlockView(*block))
}

// ListBlocks handles GET /v1/admin/blocks?year=&month= and returns all
// blocks in the month regardless of scope.
func (h *AdminHandler) ListBlocks(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year < 2000 || year > 2200 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year must be a four-digit year"})
	}
	monthNum, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must be between 1 and 12"})
	}
	blocks, err := h.blocks.ListAll(c.Request().Context(), year, time.Month(monthNum))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load blocks"})
	}
	items := make([]blockView, 0, len(blocks))
	for _, b := range blocks {
		items = append(items, toBlockView(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DeleteBlock handles DELETE /v1/admin/blocks/:id.  Removing a block
// reopens the date; it never touches existing reservations.
func (h *AdminHandler) DeleteBlock(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid block id"})
	}
	if err := h.blocks.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrBlockNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "block not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete block"})
	}
	return c.NoContent(http.StatusNoContent)
}
