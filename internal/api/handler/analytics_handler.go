package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/tracker-api/internal/core/ports"
)

// AnalyticsHandler serves the read-only report endpoints.
type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// System handles GET /v1/analytics/system.
//
// @Summary      System-wide rollup
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.SystemReport
// @Failure      403  {object}  errorResponse
// @Router       /v1/analytics/system [get]
func (h *AnalyticsHandler) System(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	report, err := h.service.System(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// Project handles GET /v1/analytics/projects/:id.
//
// @Summary      Per-project rollup
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  ports.ProjectReport
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/analytics/projects/{id} [get]
func (h *AnalyticsHandler) Project(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	report, err := h.service.Project(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// Moderator handles GET /v1/analytics/moderator.
//
// @Summary      Rollup over the caller's moderated projects
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.ModeratorReport
// @Failure      403  {object}  errorResponse
// @Router       /v1/analytics/moderator [get]
func (h *AnalyticsHandler) Moderator(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	report, err := h.service.Moderator(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// User handles GET /v1/analytics/me.
//
// @Summary      Personal rollup for the caller
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.UserReport
// @Failure      401  {object}  errorResponse
// @Router       /v1/analytics/me [get]
func (h *AnalyticsHandler) User(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	report, err := h.service.User(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
