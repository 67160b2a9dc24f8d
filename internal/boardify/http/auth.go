package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
	"github.com/aussiebroadwan/boardify/internal/boardify/service"
	"github.com/aussiebroadwan/boardify/pkg/boardsdk"
	"github.com/aussiebroadwan/boardify/pkg/httpx"
)

type AuthHandler struct {
	AccountService *service.AccountService
	SecureCookies  bool
}

func userResponse(u domain.User) boardsdk.AuthResponse {
	return boardsdk.AuthResponse{User: boardsdk.User{ID: u.ID, Name: u.Name, Email: u.Email}}
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   max(int(time.Until(expiresAt).Seconds()), 1),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// HandleSignup godoc
//
//	@Summary		Create an account
//	@Description	Registers a user, claims any pending board invites for the email and starts a session.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		boardsdk.SignupRequest	true	"Signup request"
//	@Success		201		{object}	boardsdk.AuthResponse
//	@Failure		400		{object}	httpx.ErrorBody	"invalid email or short password"
//	@Failure		409		{object}	httpx.ErrorBody	"email already in use"
//	@Failure		429		{object}	httpx.ErrorBody
//	@Router			/api/auth/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req boardsdk.SignupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	res, err := h.AccountService.Signup(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(ctx, w, err, "create account")
		return
	}

	h.setSessionCookie(w, res.Token, res.ExpiresAt)
	httpx.WriteJSON(w, http.StatusCreated, userResponse(res.User))
}

// HandleLogin godoc
//
//	@Summary		Sign in
//	@Description	Verifies credentials, claims pending invites and starts a new session.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		boardsdk.LoginRequest	true	"Login request"
//	@Success		200		{object}	boardsdk.AuthResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		401		{object}	httpx.ErrorBody	"invalid email or password"
//	@Failure		429		{object}	httpx.ErrorBody
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req boardsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	res, err := h.AccountService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(ctx, w, err, "sign in")
		return
	}

	h.setSessionCookie(w, res.Token, res.ExpiresAt)
	httpx.WriteJSON(w, http.StatusOK, userResponse(res.User))
}

// HandleLogout godoc
//
//	@Summary		Sign out
//	@Description	Revokes the presented session and clears the cookie. Succeeds without a session.
//	@Tags			Auth
//	@Success		204
//	@Router			/api/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.AccountService.Logout(ctx, httpx.SessionTokenFromContext(ctx)); err != nil {
		writeServiceError(ctx, w, err, "sign out")
		return
	}

	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe godoc
//
//	@Summary	Current user
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	boardsdk.AuthResponse
//	@Failure	401	{object}	httpx.ErrorBody
//	@Security	SessionCookie
//	@Router		/api/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := principalUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userResponse(user))
}
