package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/counterdesk/counter-dispatch/internal/api/dto"
	"github.com/counterdesk/counter-dispatch/internal/domain"
	"github.com/counterdesk/counter-dispatch/internal/service"
	apperrors "github.com/counterdesk/counter-dispatch/pkg/util/errorutil"
)

// CounterHandler exposes the operator and display endpoints of the counter.
type CounterHandler struct {
	service *service.CounterService
}

// NewCounterHandler constructs handler.
func NewCounterHandler(counterService *service.CounterService) *CounterHandler {
	return &CounterHandler{service: counterService}
}

// CallNext POST /counter/call.
func (h *CounterHandler) CallNext(c *fiber.Ctx) error {
	res, err := h.service.CallNext(c.UserContext())
	if err != nil {
		return err
	}
	if res.QueueEmpty {
		return c.JSON(fiber.Map{
			"data":    nil,
			"message": h.service.Panel().StatusMessage,
		})
	}
	return c.JSON(fiber.Map{
		"data":       dto.NewTicketResponse(res.Ticket),
		"counter_id": res.CounterID,
	})
}

// Finalize POST /counter/finalize.
func (h *CounterHandler) Finalize(c *fiber.Ctx) error {
	var req dto.FinalizeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	outcome := domain.ServiceOutcome(strings.ToLower(strings.TrimSpace(string(req.Outcome))))
	if !outcome.Valid() {
		return apperrors.NewValidationError("outcome must be completed or absent", map[string]any{"outcome": string(req.Outcome)})
	}

	ticket, err := h.service.FinalizeService(c.UserContext(), outcome)
	if err != nil {
		return err
	}
	if ticket == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Panel GET /counter/panel.
func (h *CounterHandler) Panel(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewPanelResponse(h.service.Panel())})
}

// Stats GET /stats.
func (h *CounterHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewStatsResponse(h.service.Stats())})
}
