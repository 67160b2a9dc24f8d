package http

import (
	"encoding/json"
	"maps"
	"net/http"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
	"github.com/aussiebroadwan/boardify/internal/boardify/service"
	"github.com/aussiebroadwan/boardify/pkg/boardsdk"
	"github.com/aussiebroadwan/boardify/pkg/httpx"
)

// collabBoardResponse is the board document flattened with the caller's role.
type collabBoardResponse struct {
	Board     domain.Board
	Role      domain.BoardRole
	CreatedBy string
}

func (r collabBoardResponse) MarshalJSON() ([]byte, error) {
	b := r.Board
	b.Extra = maps.Clone(b.Extra)
	if b.Extra == nil {
		b.Extra = make(domain.Extra, 2)
	}

	role, err := json.Marshal(r.Role)
	if err != nil {
		return nil, err
	}
	b.Extra["role"] = role
	if r.CreatedBy != "" {
		createdBy, err := json.Marshal(r.CreatedBy)
		if err != nil {
			return nil, err
		}
		b.Extra["createdBy"] = createdBy
	}
	return json.Marshal(b)
}

func toCollabResponse(mb domain.MemberBoard) collabBoardResponse {
	return collabBoardResponse{Board: mb.Record.Board, Role: mb.Role, CreatedBy: mb.CreatedBy}
}

// CollabHandler serves collaborative boards. Membership checks live in
// CollabService.
type CollabHandler struct {
	CollabService *service.CollabService
}

// HandleList godoc
//
//	@Summary	List collaborative boards the caller belongs to
//	@Tags		Collaborative Boards
//	@Produce	json
//	@Success	200	{array}	boardsdk.CollabBoard
//	@Security	SessionCookie
//	@Router		/api/collab-boards [get].
func (h *CollabHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	boards, err := h.CollabService.List(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(ctx, w, err, "list collaborative boards")
		return
	}

	out := make([]collabBoardResponse, len(boards))
	for i, mb := range boards {
		out[i] = toCollabResponse(mb)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate godoc
//
//	@Summary		Create a collaborative board
//	@Description	The caller becomes the board's admin.
//	@Tags			Collaborative Boards
//	@Accept			json
//	@Produce		json
//	@Param			board	body		boardsdk.Board	true	"Board document"
//	@Success		201		{object}	boardsdk.CollabBoard
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		409		{object}	httpx.ErrorBody
//	@Security		SessionCookie
//	@Router			/api/collab-boards [post].
func (h *CollabHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	b, err := readBoard(r)
	if err != nil {
		writeServiceError(ctx, w, err, "read board")
		return
	}

	mb, err := h.CollabService.Create(ctx, httpx.UserIDFromContext(ctx), b)
	if err != nil {
		writeServiceError(ctx, w, err, "create collaborative board")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCollabResponse(mb))
}

// HandleGet godoc
//
//	@Summary	Get a collaborative board
//	@Tags		Collaborative Boards
//	@Produce	json
//	@Param		id	path		string	true	"Board id"
//	@Success	200	{object}	boardsdk.CollabBoard
//	@Failure	403	{object}	httpx.ErrorBody	"not a member"
//	@Failure	404	{object}	httpx.ErrorBody
//	@Security	SessionCookie
//	@Router		/api/collab-boards/{id} [get].
func (h *CollabHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	mb, err := h.CollabService.Get(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(ctx, w, err, "load collaborative board")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCollabResponse(mb))
}

// HandleUpdate godoc
//
//	@Summary		Replace a collaborative board
//	@Description	Any member may edit. Concurrent edits are last write wins.
//	@Tags			Collaborative Boards
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Board id"
//	@Param			board	body		boardsdk.Board	true	"Board document"
//	@Success		200		{object}	boardsdk.CollabBoard
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		403		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Security		SessionCookie
//	@Router			/api/collab-boards/{id} [put].
func (h *CollabHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	b, err := readBoard(r)
	if err != nil {
		writeServiceError(ctx, w, err, "read board")
		return
	}

	mb, err := h.CollabService.Update(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"), b)
	if err != nil {
		writeServiceError(ctx, w, err, "update collaborative board")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCollabResponse(mb))
}

// HandleDelete godoc
//
//	@Summary		Delete a collaborative board
//	@Description	Admin only. Memberships and invites are removed with it.
//	@Tags			Collaborative Boards
//	@Param			id	path	string	true	"Board id"
//	@Success		204
//	@Failure		403	{object}	httpx.ErrorBody
//	@Failure		404	{object}	httpx.ErrorBody
//	@Security		SessionCookie
//	@Router			/api/collab-boards/{id} [delete].
func (h *CollabHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.CollabService.Delete(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id")); err != nil {
		writeServiceError(ctx, w, err, "delete collaborative board")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSubtasks godoc
//
//	@Summary	Replace a task's subtasks on a collaborative board
//	@Tags		Collaborative Boards
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Board id"
//	@Param		taskId	path		string						true	"Task id"
//	@Param		request	body		boardsdk.SubtasksRequest	true	"Subtasks"
//	@Success	200		{object}	boardsdk.Board
//	@Failure	400		{object}	httpx.ErrorBody
//	@Failure	403		{object}	httpx.ErrorBody
//	@Failure	404		{object}	httpx.ErrorBody
//	@Security	SessionCookie
//	@Router		/api/collab-boards/{id}/tasks/{taskId}/subtasks [put].
func (h *CollabHandler) HandleSubtasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subtasks, ok := readSubtasks(w, r)
	if !ok {
		return
	}

	b, err := h.CollabService.UpdateSubtasks(ctx,
		httpx.UserIDFromContext(ctx), r.PathValue("id"), r.PathValue("taskId"), subtasks)
	if err != nil {
		writeServiceError(ctx, w, err, "update subtasks")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

// HandleStats godoc
//
//	@Summary	Collaborative board analytics
//	@Tags		Collaborative Boards
//	@Produce	json
//	@Param		id		path		string	true	"Board id"
//	@Param		mode	query		string	false	"Completion mode: total or tracked"
//	@Success	200		{object}	boardsdk.Stats
//	@Failure	403		{object}	httpx.ErrorBody
//	@Failure	404		{object}	httpx.ErrorBody
//	@Security	SessionCookie
//	@Router		/api/collab-boards/{id}/stats [get].
func (h *CollabHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, mode := statsParams(r)
	stats, err := h.CollabService.Stats(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"), f, mode)
	if err != nil {
		writeServiceError(ctx, w, err, "compute stats")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}

// HandleMembers godoc
//
//	@Summary	List board members
//	@Tags		Collaborative Boards
//	@Produce	json
//	@Param		id	path	string	true	"Board id"
//	@Success	200	{array}	boardsdk.Member
//	@Failure	403	{object}	httpx.ErrorBody
//	@Failure	404	{object}	httpx.ErrorBody
//	@Security	SessionCookie
//	@Router		/api/collab-boards/{id}/members [get].
func (h *CollabHandler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	members, err := h.CollabService.Members(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(ctx, w, err, "list members")
		return
	}

	out := make([]boardsdk.Member, len(members))
	for i, m := range members {
		out[i] = boardsdk.Member{
			UserID:    m.UserID,
			Email:     m.Email,
			Name:      m.Name,
			Role:      string(m.Role),
			CreatedAt: m.CreatedAt,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
