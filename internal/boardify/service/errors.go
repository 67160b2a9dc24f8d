package service

import (
	"errors"
	"time"
)

var (
	ErrInvalidEmail       = errors.New("a valid email address is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found or expired")

	ErrBoardNotFound   = errors.New("board not found")
	ErrBoardExists     = errors.New("a board with this id already exists")
	ErrBoardIDMismatch = errors.New("board id does not match the request path")
	ErrTaskNotFound    = errors.New("task not found")
	ErrForbidden       = errors.New("you do not have access to this board")

	ErrInviteNotFound      = errors.New("invite not found or expired")
	ErrInviteEmailMismatch = errors.New("invite was issued to a different email")

	ErrInvalidTaskType = errors.New("task type name is required")
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 8

func nowFrom(fn func() time.Time) time.Time {
	if fn != nil {
		return fn().UTC()
	}
	return time.Now().UTC()
}
