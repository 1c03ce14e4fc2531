package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/counterdesk/counter-dispatch/internal/api/dto"
	"github.com/counterdesk/counter-dispatch/internal/domain"
	"github.com/counterdesk/counter-dispatch/internal/service"
	apperrors "github.com/counterdesk/counter-dispatch/pkg/util/errorutil"
)

// TicketsHandler manages ticket issuance and lookup endpoints.
type TicketsHandler struct {
	counter *service.CounterService
	audit   *service.AuditService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(counterService *service.CounterService, auditService *service.AuditService) *TicketsHandler {
	return &TicketsHandler{counter: counterService, audit: auditService}
}

// IssueTicket POST /tickets.
func (h *TicketsHandler) IssueTicket(c *fiber.Ctx) error {
	var req dto.IssueTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	class := domain.TicketClass(strings.ToUpper(strings.TrimSpace(string(req.Class))))
	if !class.Valid() {
		return apperrors.NewValidationError("class must be one of SP, SE, SG", map[string]any{"class": string(req.Class)})
	}

	ticket, err := h.counter.IssueTicket(c.UserContext(), class)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(&ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets := h.counter.ListTickets()
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:number.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.counter.GetTicket(c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(&ticket)})
}

// GetEstimate GET /tickets/:number/estimate.
func (h *TicketsHandler) GetEstimate(c *fiber.Ctx) error {
	number := c.Params("number")
	label, err := h.counter.EstimatedDuration(number)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.EstimateResponse{Number: number, Estimate: label}})
}

// ListEvents GET /tickets/:number/events.
func (h *TicketsHandler) ListEvents(c *fiber.Ctx) error {
	trail, err := h.audit.ListTicketEvents(c.UserContext(), c.Params("number"))
	if err != nil {
		return err
	}
	items := make([]dto.TicketEventResponse, 0, len(trail))
	for _, entry := range trail {
		items = append(items, dto.TicketEventResponse{
			ID:         entry.ID,
			EventType:  entry.EventType,
			Status:     entry.Status,
			CounterID:  entry.CounterID,
			Payload:    entry.Payload,
			OccurredAt: entry.OccurredAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
