package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/pkg/patch"
)

// updateBuilder accumulates the SET clauses of a single UPDATE statement.
type updateBuilder struct {
	table string
	sets  []string
	args  []any
}

func newUpdateBuilder(table string) *updateBuilder {
	return &updateBuilder{table: table}
}

func (b *updateBuilder) set(column string, value any) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s=$%d", column, len(b.args)))
}

// setCast is set for enum columns, which need an explicit cast from text.
func (b *updateBuilder) setCast(column, cast string, value any) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s=$%d::%s", column, len(b.args), cast))
}

func (b *updateBuilder) empty() bool {
	return len(b.sets) == 0
}

func (b *updateBuilder) build(idColumn string, id any) (string, []any) {
	args := append(append([]any{}, b.args...), id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s=$%d",
		b.table, strings.Join(b.sets, ", "), idColumn, len(args))
	return query, args
}

// setField writes a nullable column when the field was supplied.
func setField[T any](b *updateBuilder, column string, f patch.Field[T]) {
	if !f.Set() {
		return
	}
	b.set(column, f.Ptr())
}

// ticketUpdate translates a ticket patch into one statement. prev is the
// stored status before the update; now stamps closed_at and updated_at.
func ticketUpdate(p domain.TicketPatch, prev domain.TicketStatus, now time.Time) *updateBuilder {
	b := newUpdateBuilder("tickets")
	setField(b, "title", p.Title)
	setField(b, "description", p.Description)
	setField(b, "requester", p.Requester)
	if status, ok := p.Status.Get(); ok {
		b.setCast("status", "ticket_status", string(status))
		if domain.StampsClosedAt(prev, status) {
			b.set("closed_at", now)
		}
	}
	setField(b, "closed_by", p.ClosedBy)
	setField(b, "solution", p.Solution)
	if !b.empty() {
		b.set("updated_at", now)
	}
	return b
}

// userUpdate translates a user patch into one statement.
func userUpdate(p domain.UserPatch, now time.Time) *updateBuilder {
	b := newUpdateBuilder("users")
	setField(b, "username", p.Username)
	setField(b, "email", p.Email)
	setField(b, "password_hash", p.PasswordHash)
	setField(b, "first_name", p.FirstName)
	setField(b, "last_name", p.LastName)
	if role, ok := p.Role.Get(); ok {
		b.setCast("role", "user_role", string(role))
	}
	if status, ok := p.Status.Get(); ok {
		b.setCast("status", "user_status", string(status))
	}
	if !b.empty() {
		b.set("updated_at", now)
	}
	return b
}
