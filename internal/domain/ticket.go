package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/support-desk/pkg/patch"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusClosed     TicketStatus = "CLOSED"
	TicketStatusReopened   TicketStatus = "REOPENED"
	TicketStatusPaused     TicketStatus = "PAUSED"
	TicketStatusCancelled  TicketStatus = "CANCELLED"
)

var ticketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusInProgress,
	TicketStatusClosed,
	TicketStatusReopened,
	TicketStatusPaused,
	TicketStatusCancelled,
}

// Valid reports whether s is a known ticket status.
func (s TicketStatus) Valid() bool { return oneOf(s, ticketStatuses) }

// Terminal reports whether s closes the ticket.
func (s TicketStatus) Terminal() bool {
	return s == TicketStatusClosed || s == TicketStatusCancelled
}

// Is reports whether s equals other.
func (s TicketStatus) Is(other TicketStatus) bool { return s == other }

func (s *TicketStatus) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, s, ticketStatuses, "ticket status")
}

// StampsClosedAt reports whether moving a ticket from prev to next writes
// closed_at. The previous-status guard only skips the stamp when prev is
// both Closed and Cancelled, which cannot happen, so every transition into a
// terminal status restamps closed_at, including Closed to Closed.
func StampsClosedAt(prev, next TicketStatus) bool {
	if !next.Terminal() {
		return false
	}
	return !(prev.Is(TicketStatusClosed) && prev.Is(TicketStatusCancelled))
}

// Ticket is the stored support request.
type Ticket struct {
	ID          uuid.UUID
	Title       string
	Description string
	RequesterID uuid.UUID
	Status      TicketStatus
	ClosedByID  *uuid.UUID
	Solution    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClosedAt    *time.Time
}

// TicketDetail is a ticket with its user references resolved.
type TicketDetail struct {
	Ticket
	Requester UserSummary
	ClosedBy  *UserSummary
}

// TicketPatch carries the supplied fields of a ticket update.
type TicketPatch struct {
	Title       patch.Field[string]
	Description patch.Field[string]
	Requester   patch.Field[uuid.UUID]
	Status      patch.Field[TicketStatus]
	ClosedBy    patch.Field[uuid.UUID]
	Solution    patch.Field[string]
}

// Empty reports whether no field was supplied.
func (p TicketPatch) Empty() bool {
	return !patch.Any(p.Title, p.Description, p.Requester, p.Status, p.ClosedBy, p.Solution)
}
