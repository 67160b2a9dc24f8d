package domain

import "time"

type Invite struct {
	ID         string
	BoardID    string
	Email      string
	TokenHash  string
	InvitedBy  string
	ExpiresAt  time.Time
	AcceptedBy string     // empty until accepted
	AcceptedAt *time.Time // nil until accepted
	CreatedAt  time.Time
}

// InviteStatus tells the inviter what an invite request did.
type InviteStatus string

const (
	InviteStatusCreated     InviteStatus = "invite-created"
	InviteStatusMemberAdded InviteStatus = "member-added"
)
