// Package export renders tickets as downloadable PDF and CSV documents.
package export

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// Null is rendered in place of absent values.
const Null = "null"

// TimeLayout formats every timestamp in an export.
const TimeLayout = "2006-01-02 15:04:05"

// TicketView is a ticket with every field resolved to display text.
type TicketView struct {
	ID          string
	UpdatedAt   string
	Requester   string
	CreatedAt   string
	Status      string
	Title       string
	Description string
	ClosedBy    string
	ClosedAt    string
	Solution    string
}

// NewTicketView resolves t for display. References to users that no longer
// exist render as Null.
func NewTicketView(t domain.TicketDetail) TicketView {
	return TicketView{
		ID:          t.ID.String(),
		UpdatedAt:   formatTime(&t.UpdatedAt),
		Requester:   username(&t.Requester),
		CreatedAt:   formatTime(&t.CreatedAt),
		Status:      string(t.Status),
		Title:       t.Title,
		Description: t.Description,
		ClosedBy:    username(t.ClosedBy),
		ClosedAt:    formatTime(t.ClosedAt),
		Solution:    orNull(t.Solution),
	}
}

// Row returns the view in CSV column order.
func (v TicketView) Row() []string {
	return []string{v.ID, v.UpdatedAt, v.Requester, v.CreatedAt, v.Status, v.Title, v.Description, v.ClosedBy, v.ClosedAt, v.Solution}
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Null
	}
	return t.UTC().Format(TimeLayout)
}

func username(u *domain.UserSummary) string {
	if u == nil || u.Username == "" {
		return Null
	}
	return u.Username
}

func orNull(s *string) string {
	if s == nil {
		return Null
	}
	return *s
}
