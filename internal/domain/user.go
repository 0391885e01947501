package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/support-desk/pkg/patch"
)

// Role is the access level of a user.
type Role string

const (
	RoleUser      Role = "USER"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)

var roles = []Role{RoleUser, RoleModerator, RoleAdmin}

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return oneOf(r, roles) }

// Privileged reports whether r may manage users and other users' tickets.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleModerator
}

func (r *Role) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, r, roles, "role")
}

// UserStatus represents lifecycle states for a user account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

var userStatuses = []UserStatus{UserStatusActive, UserStatusInactive}

// Valid reports whether s is a known user status.
func (s UserStatus) Valid() bool { return oneOf(s, userStatuses) }

func (s *UserStatus) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, s, userStatuses, "user status")
}

// User is a stored account. PasswordHash never leaves the service layer.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        *string
	PasswordHash string
	FirstName    *string
	LastName     *string
	Role         Role
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active reports whether the account may authenticate and act.
func (u *User) Active() bool {
	return u != nil && u.Status == UserStatusActive
}

// UserSummary is the public projection of a user referenced by a ticket.
type UserSummary struct {
	ID        uuid.UUID
	Username  string
	Email     *string
	FirstName *string
	LastName  *string
}

// UserPatch carries the supplied fields of a user update.
type UserPatch struct {
	Username     patch.Field[string]
	Email        patch.Field[string]
	PasswordHash patch.Field[string]
	FirstName    patch.Field[string]
	LastName     patch.Field[string]
	Role         patch.Field[Role]
	Status       patch.Field[UserStatus]
}

// Empty reports whether no field was supplied.
func (p UserPatch) Empty() bool {
	return !patch.Any(p.Username, p.Email, p.PasswordHash, p.FirstName, p.LastName, p.Role, p.Status)
}
