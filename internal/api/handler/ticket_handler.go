package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/tracker-api/internal/api/metrics"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// TicketHandler handles HTTP requests for the resolution ticket workflow.
type TicketHandler struct {
	service ports.TicketService
}

func NewTicketHandler(service ports.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

// List handles GET /v1/tickets.
//
// @Summary      List visible tickets
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.TicketView
// @Failure      401  {object}  errorResponse
// @Router       /v1/tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	tickets, err := h.service.List(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tickets)
}

// Get handles GET /v1/tickets/:id.
//
// @Summary      Get a ticket
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Ticket id"
// @Success      200  {object}  ports.TicketView
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tickets/{id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	ticket, err := h.service.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}

// Create handles POST /v1/tickets. Submitting a ticket marks the task
// resolved pending verification.
//
// @Summary      Submit a resolution ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTicketRequest  true  "Resolution details"
// @Success      201   {object}  ports.TicketView
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.Create(c.Request().Context(), p, toCreateTicketInput(req))
	if err != nil {
		return err
	}

	metrics.TicketsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, ticket)
}

// Verify handles PUT /v1/tickets/:id/verify.
//
// @Summary      Decide a pending ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Ticket id"
// @Param        body  body      verifyTicketRequest  true  "Decision"
// @Success      200   {object}  ports.TicketView
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/tickets/{id}/verify [put]
func (h *TicketHandler) Verify(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req verifyTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.Verify(c.Request().Context(), p, c.Param("id"), toVerifyTicketInput(req))
	if err != nil {
		return err
	}

	metrics.TicketsDecidedTotal.WithLabelValues(string(ticket.Status)).Inc()
	return c.JSON(http.StatusOK, ticket)
}

// Delete handles DELETE /v1/tickets/:id.
//
// @Summary      Delete a ticket
// @Tags         tickets
// @Security     BearerAuth
// @Param        id  path  string  true  "Ticket id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tickets/{id} [delete]
func (h *TicketHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
