package auth

import (
	"github.com/spec-kit/support-desk/internal/domain"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// CheckActive fails unless identity belongs to an active account.
func CheckActive(identity *Identity) error {
	if identity == nil || identity.Status != domain.UserStatusActive {
		return apperrors.NewUnauthorized("unauthorized")
	}
	return nil
}

// CheckPrivileged fails unless identity is an active admin or moderator.
func CheckPrivileged(identity *Identity) error {
	if err := CheckActive(identity); err != nil {
		return err
	}
	if !identity.Role.Privileged() {
		return apperrors.NewUnauthorized("unauthorized")
	}
	return nil
}

// TicketRequester returns the username a new ticket is filed for. Only
// privileged callers may file on behalf of someone else.
func TicketRequester(identity Identity, requested string) string {
	if identity.Role.Privileged() && requested != "" {
		return requested
	}
	return identity.Username
}

// ScopeTicketPatch drops the fields a non-privileged caller may not change.
func ScopeTicketPatch(identity Identity, p domain.TicketPatch) domain.TicketPatch {
	if identity.Role.Privileged() {
		return p
	}
	p.Status.Clear()
	p.Requester.Clear()
	p.ClosedBy.Clear()
	p.Solution.Clear()
	return p
}
