package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	caller, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("unauthorized")
	}
	var req dto.CreateTicketRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	id, err := h.service.Create(c.UserContext(), *caller, req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.IDResponse{ID: id.String()}})
}

// UpdateTicket PUT /tickets.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	caller, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("unauthorized")
	}
	var req dto.UpdateTicketRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req = req.ScopedTo(*caller)
	if err := req.Validate(); err != nil {
		return err
	}
	id, err := dto.ParseID(req.ID)
	if err != nil {
		return err
	}

	id, err = h.service.Update(c.UserContext(), *caller, id, req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.IDResponse{ID: id.String()}})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, dto.NewTicketResponse(t))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CountTickets GET /tickets/count.
func (h *TicketsHandler) CountTickets(c *fiber.Ctx) error {
	n, err := h.service.Count(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CountResponse{Count: n}})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id, err := dto.ParseID(c.Params("id"))
	if err != nil {
		return err
	}
	ticket, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(*ticket)})
}

// DeleteTicket DELETE /tickets.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	caller, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("unauthorized")
	}
	id, err := parseDeleteRequest(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), *caller, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseDeleteRequest(c *fiber.Ctx) (uuid.UUID, error) {
	var req dto.DeleteRequest
	if err := parseBody(c, &req); err != nil {
		return uuid.Nil, err
	}
	if err := dto.Validate(req); err != nil {
		return uuid.Nil, err
	}
	return dto.ParseID(req.ID)
}
