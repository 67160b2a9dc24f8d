package domain

import "time"

// BoardRole is a user's role on a collaborative board. The zero value means
// the user has no membership.
type BoardRole string

const (
	RoleNone   BoardRole = ""
	RoleMember BoardRole = "member"
	RoleAdmin  BoardRole = "admin"
)

func (r BoardRole) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// Satisfies reports whether r grants at least the permissions of want.
func (r BoardRole) Satisfies(want BoardRole) bool {
	switch want {
	case RoleMember:
		return r == RoleMember || r == RoleAdmin
	case RoleAdmin:
		return r == RoleAdmin
	default:
		return true
	}
}

// CollaborativeBoard marks a board as shared. A board is collaborative iff
// this record exists.
type CollaborativeBoard struct {
	BoardID   string
	CreatedBy string
	CreatedAt time.Time
}

type Member struct {
	BoardID   string
	UserID    string
	Role      BoardRole
	CreatedAt time.Time

	// Joined from users when listing.
	Email string
	Name  string
}

// MemberBoard is a collaborative board as seen by one of its members.
type MemberBoard struct {
	Record    BoardRecord
	Role      BoardRole
	CreatedBy string
}
