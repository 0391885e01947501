package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/service"
	"github.com/spec-kit/support-desk/pkg/patch"
)

// CreateTicketRequest payload. Requester is a username and is ignored for
// non-privileged callers.
type CreateTicketRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=50"`
	Description string `json:"description" validate:"required,min=10,max=3000"`
	Requester   string `json:"requester" validate:"omitempty,min=3,max=20"`
}

// Input converts the request for the ticket service.
func (r CreateTicketRequest) Input() service.CreateTicketInput {
	return service.CreateTicketInput{
		Title:       r.Title,
		Description: r.Description,
		Requester:   r.Requester,
	}
}

// UpdateTicketRequest payload for PUT /tickets.
type UpdateTicketRequest struct {
	ID          string                           `json:"id" validate:"required,uuid"`
	Title       patch.Field[string]              `json:"title" validate:"omitnil,min=3,max=50"`
	Description patch.Field[string]              `json:"description" validate:"omitnil,min=10,max=3000"`
	Requester   patch.Field[uuid.UUID]           `json:"requester"`
	Status      patch.Field[domain.TicketStatus] `json:"status"`
	ClosedBy    patch.Field[uuid.UUID]           `json:"closed_by"`
	Solution    patch.Field[string]              `json:"solution" validate:"omitnil,min=10,max=3000"`
}

// Validate runs the tag checks and rejects null for required columns.
func (r UpdateTicketRequest) Validate() error {
	if err := Validate(r); err != nil {
		return err
	}
	return rejectNull(map[string]interface{ IsNull() bool }{
		"title":       r.Title,
		"description": r.Description,
		"requester":   r.Requester,
		"status":      r.Status,
	})
}

// ScopedTo drops the fields caller may not change, so they are neither
// validated nor applied.
func (r UpdateTicketRequest) ScopedTo(caller auth.Identity) UpdateTicketRequest {
	p := auth.ScopeTicketPatch(caller, r.Patch())
	r.Requester, r.Status, r.ClosedBy, r.Solution = p.Requester, p.Status, p.ClosedBy, p.Solution
	return r
}

// Patch converts the request into a domain patch.
func (r UpdateTicketRequest) Patch() domain.TicketPatch {
	return domain.TicketPatch{
		Title:       r.Title,
		Description: r.Description,
		Requester:   r.Requester,
		Status:      r.Status,
		ClosedBy:    r.ClosedBy,
		Solution:    r.Solution,
	}
}

// TicketResponse provides full ticket info with user references resolved.
type TicketResponse struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Requester   UserSummaryResponse  `json:"requester"`
	Status      domain.TicketStatus  `json:"status"`
	ClosedBy    *UserSummaryResponse `json:"closed_by"`
	Solution    *string              `json:"solution"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	ClosedAt    *time.Time           `json:"closed_at"`
}

// NewTicketResponse maps a resolved ticket.
func NewTicketResponse(t domain.TicketDetail) TicketResponse {
	resp := TicketResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Requester:   newUserSummary(t.Requester),
		Status:      t.Status,
		Solution:    t.Solution,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		ClosedAt:    t.ClosedAt,
	}
	if t.ClosedBy != nil {
		closedBy := newUserSummary(*t.ClosedBy)
		resp.ClosedBy = &closedBy
	}
	return resp
}
