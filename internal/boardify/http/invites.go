package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
	"github.com/aussiebroadwan/boardify/internal/boardify/service"
	"github.com/aussiebroadwan/boardify/pkg/boardsdk"
	"github.com/aussiebroadwan/boardify/pkg/httpx"
)

type InviteHandler struct {
	InviteService *service.InviteService
}

// HandleCreate godoc
//
//	@Summary		Invite someone to a collaborative board
//	@Description	Admin only. A registered email is added as a member right away (200, member-added).
//	@Description	Otherwise a single-use token is minted (201, invite-created); it is shown only once.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Board id"
//	@Param			request	body		boardsdk.InviteRequest	true	"Invite request"
//	@Success		200		{object}	boardsdk.InviteResponse	"member-added"
//	@Success		201		{object}	boardsdk.InviteResponse	"invite-created"
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		403		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Security		SessionCookie
//	@Router			/api/collab-boards/{id}/invite [post].
func (h *InviteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req boardsdk.InviteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	res, err := h.InviteService.CreateInvite(ctx, r.PathValue("id"), req.Email, httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(ctx, w, err, "create invite")
		return
	}

	resp := boardsdk.InviteResponse{Status: string(res.Status), Email: res.Email}
	if res.Status == domain.InviteStatusMemberAdded {
		httpx.WriteJSON(w, http.StatusOK, resp)
		return
	}

	resp.Token = res.Token
	resp.ExpiresAt = &res.ExpiresAt
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// HandleList godoc
//
//	@Summary	List pending invites
//	@Tags		Invitations
//	@Produce	json
//	@Param		id	path	string	true	"Board id"
//	@Success	200	{array}	boardsdk.PendingInvite
//	@Failure	403	{object}	httpx.ErrorBody
//	@Failure	404	{object}	httpx.ErrorBody
//	@Security	SessionCookie
//	@Router		/api/collab-boards/{id}/invites [get].
func (h *InviteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invites, err := h.InviteService.ListPendingInvites(ctx, r.PathValue("id"), httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(ctx, w, err, "list invites")
		return
	}

	out := make([]boardsdk.PendingInvite, len(invites))
	for i, inv := range invites {
		out[i] = boardsdk.PendingInvite{
			ID:        inv.ID,
			Email:     inv.Email,
			InvitedBy: inv.InvitedBy,
			ExpiresAt: inv.ExpiresAt,
			CreatedAt: inv.CreatedAt,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleAccept godoc
//
//	@Summary		Accept an invite
//	@Description	The signed-in user's email must match the invited email.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		boardsdk.AcceptInviteRequest	true	"Invite token"
//	@Success		200		{object}	boardsdk.AcceptInviteResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		403		{object}	httpx.ErrorBody	"email mismatch"
//	@Failure		404		{object}	httpx.ErrorBody	"unknown, used or expired token"
//	@Security		SessionCookie
//	@Router			/api/collab-invites/accept [post].
func (h *InviteHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req boardsdk.AcceptInviteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	token := strings.TrimSpace(req.Token)
	if token == "" {
		httpx.WriteError(w, http.StatusBadRequest, "token is required")
		return
	}

	user, ok := principalUser(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	boardID, err := h.InviteService.AcceptInvite(ctx, token, user)
	if err != nil {
		writeServiceError(ctx, w, err, "accept invite")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, boardsdk.AcceptInviteResponse{BoardID: boardID})
}
