package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/tracker-api/internal/core/ports"
)

// ActivityHandler serves the audit trail.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// ListRecent handles GET /v1/activity.
//
// @Summary      List recent audit entries
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max entries to return (default 50, cap 200)"
// @Success      200    {array}   domain.Activity
// @Failure      403    {object}  errorResponse
// @Router       /v1/activity [get]
func (h *ActivityHandler) ListRecent(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
	}

	entries, err := h.service.ListRecent(c.Request().Context(), p, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
