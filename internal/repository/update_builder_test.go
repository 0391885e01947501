package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/pkg/patch"
)

func TestTicketUpdateStatement(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	id := uuid.New()
	closer := uuid.New()

	tests := []struct {
		name      string
		patch     domain.TicketPatch
		prev      domain.TicketStatus
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "title only",
			patch:     domain.TicketPatch{Title: patch.Value("Printer fixed")},
			prev:      domain.TicketStatusOpen,
			wantQuery: "UPDATE tickets SET title=$1, updated_at=$2 WHERE id=$3",
			wantArgs:  []any{ptr("Printer fixed"), now, id},
		},
		{
			name: "close stamps closed_at",
			patch: domain.TicketPatch{
				Status:   patch.Value(domain.TicketStatusClosed),
				ClosedBy: patch.Value(closer),
			},
			prev:      domain.TicketStatusOpen,
			wantQuery: "UPDATE tickets SET status=$1::ticket_status, closed_at=$2, closed_by=$3, updated_at=$4 WHERE id=$5",
			wantArgs:  []any{"CLOSED", now, &closer, now, id},
		},
		{
			name:      "closing a closed ticket restamps closed_at",
			patch:     domain.TicketPatch{Status: patch.Value(domain.TicketStatusClosed)},
			prev:      domain.TicketStatusClosed,
			wantQuery: "UPDATE tickets SET status=$1::ticket_status, closed_at=$2, updated_at=$3 WHERE id=$4",
			wantArgs:  []any{"CLOSED", now, now, id},
		},
		{
			name:      "reopen leaves closed_at alone",
			patch:     domain.TicketPatch{Status: patch.Value(domain.TicketStatusReopened)},
			prev:      domain.TicketStatusClosed,
			wantQuery: "UPDATE tickets SET status=$1::ticket_status, updated_at=$2 WHERE id=$3",
			wantArgs:  []any{"REOPENED", now, id},
		},
		{
			name:      "explicit null clears solution",
			patch:     domain.TicketPatch{Solution: patch.Null[string]()},
			prev:      domain.TicketStatusOpen,
			wantQuery: "UPDATE tickets SET solution=$1, updated_at=$2 WHERE id=$3",
			wantArgs:  []any{(*string)(nil), now, id},
		},
		{
			name:      "explicit empty string overwrites",
			patch:     domain.TicketPatch{Description: patch.Value("")},
			prev:      domain.TicketStatusOpen,
			wantQuery: "UPDATE tickets SET description=$1, updated_at=$2 WHERE id=$3",
			wantArgs:  []any{ptr(""), now, id},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ticketUpdate(tt.patch, tt.prev, now)
			query, args := b.build("id", id)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestEmptyPatchBuildsNothing(t *testing.T) {
	now := time.Now()
	assert.True(t, ticketUpdate(domain.TicketPatch{}, domain.TicketStatusOpen, now).empty())
	assert.True(t, userUpdate(domain.UserPatch{}, now).empty())
}

func TestUserUpdateStatement(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	id := uuid.New()
	p := domain.UserPatch{
		Email:  patch.Null[string](),
		Role:   patch.Value(domain.RoleModerator),
		Status: patch.Value(domain.UserStatusInactive),
	}

	query, args := userUpdate(p, now).build("id", id)
	assert.Equal(t, "UPDATE users SET email=$1, role=$2::user_role, status=$3::user_status, updated_at=$4 WHERE id=$5", query)
	assert.Equal(t, []any{(*string)(nil), "MODERATOR", "INACTIVE", now, id}, args)
}

func ptr[T any](v T) *T { return &v }
