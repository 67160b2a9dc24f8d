package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/boardify/internal/boardify/boardview"
	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
	"github.com/aussiebroadwan/boardify/internal/boardify/service"
	"github.com/aussiebroadwan/boardify/pkg/httpx"
	"github.com/aussiebroadwan/boardify/pkg/slogx"
)

// writeServiceError maps service sentinels to status codes. Anything
// unrecognized is logged and reported as a 500 naming the failed action.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, domain.ErrInvalidBoard),
		errors.Is(err, boardview.ErrInvalidSubtask),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrBoardIDMismatch),
		errors.Is(err, service.ErrInvalidTaskType):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrSessionNotFound):
		httpx.WriteError(w, http.StatusUnauthorized, "Not authenticated")

	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, service.ErrInviteEmailMismatch):
		httpx.WriteError(w, http.StatusForbidden, "This invite was sent to a different email address")

	case errors.Is(err, service.ErrBoardNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Board not found")
	case errors.Is(err, service.ErrTaskNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, service.ErrInviteNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Invite not found or expired")

	case errors.Is(err, service.ErrEmailInUse):
		httpx.WriteError(w, http.StatusConflict, "Email already in use")
	case errors.Is(err, service.ErrBoardExists):
		httpx.WriteError(w, http.StatusConflict, "A board with this id already exists")

	default:
		slogx.FromContext(ctx).Error("request failed",
			slog.String("action", action),
			slog.Any("error", err),
		)
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

// sessionResolver adapts SessionService to the authentication middleware.
type sessionResolver struct {
	sessions *service.SessionService
}

func (s sessionResolver) ResolvePrincipal(ctx context.Context, token string) (httpx.Principal, error) {
	user, _, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return httpx.Principal{}, err
	}
	return httpx.Principal{UserID: user.ID, Email: user.Email, Name: user.Name}, nil
}

// principalUser rebuilds the caller's public user fields from the request
// context.
func principalUser(ctx context.Context) (domain.User, bool) {
	p, ok := httpx.PrincipalFromContext(ctx)
	if !ok || p.UserID == "" {
		return domain.User{}, false
	}
	return domain.User{ID: p.UserID, Email: p.Email, Name: p.Name}, true
}
