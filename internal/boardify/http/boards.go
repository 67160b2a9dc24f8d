package http

import (
	"io"
	"net/http"

	"github.com/aussiebroadwan/boardify/internal/boardify/boardview"
	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
	"github.com/aussiebroadwan/boardify/internal/boardify/service"
	"github.com/aussiebroadwan/boardify/pkg/httpx"
)

// readBoard decodes and validates a board document from the request body.
func readBoard(r *http.Request) (domain.Board, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, httpx.MaxJSONBodyBytes))
	if err != nil {
		return domain.Board{}, err
	}
	return domain.ParseBoard(data)
}

type subtasksBody struct {
	Subtasks []domain.Subtask `json:"subtasks"`
}

// readSubtasks decodes {"subtasks": [...]}; a missing or null list is
// rejected.
func readSubtasks(w http.ResponseWriter, r *http.Request) ([]domain.Subtask, bool) {
	var body subtasksBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return nil, false
	}
	if body.Subtasks == nil {
		httpx.WriteError(w, http.StatusBadRequest, "subtasks must be an array")
		return nil, false
	}
	return body.Subtasks, true
}

func statsParams(r *http.Request) (boardview.Filter, boardview.CompletionMode) {
	q := r.URL.Query()
	return boardview.FilterFromQuery(q), boardview.ParseCompletionMode(q.Get("mode"))
}

// BoardsHandler serves the caller's personal boards.
type BoardsHandler struct {
	BoardService *service.BoardService
}

// HandleList godoc
//
//	@Summary	List personal boards
//	@Tags		Boards
//	@Produce	json
//	@Success	200	{array}		boardsdk.Board
//	@Failure	401	{object}	httpx.ErrorBody
//	@Security	SessionCookie
//	@Router		/api/boards [get].
func (h *BoardsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	boards, err := h.BoardService.List(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(ctx, w, err, "list boards")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, boards)
}

// HandleCreate godoc
//
//	@Summary		Create a personal board
//	@Description	The body is the full board document. Board ids are unique across all users.
//	@Tags			Boards
//	@Accept			json
//	@Produce		json
//	@Param			board	body		boardsdk.Board	true	"Board document"
//	@Success		201		{object}	boardsdk.Board
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		409		{object}	httpx.ErrorBody
//	@Security		SessionCookie
//	@Router			/api/boards [post].
func (h *BoardsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	b, err := readBoard(r)
	if err != nil {
		writeServiceError(ctx, w, err, "read board")
		return
	}

	created, err := h.BoardService.Create(ctx, httpx.UserIDFromContext(ctx), b)
	if err != nil {
		writeServiceError(ctx, w, err, "create board")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

// HandleGet godoc
//
//	@Summary	Get a personal board
//	@Tags		Boards
//	@Produce	json
//	@Param		id	path		string	true	"Board id"
//	@Success	200	{object}	boardsdk.Board
//	@Failure	404	{object}	httpx.ErrorBody
//	@Security	SessionCookie
//	@Router		/api/boards/{id} [get].
func (h *BoardsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	b, err := h.BoardService.Get(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(ctx, w, err, "load board")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

// HandleUpdate godoc
//
//	@Summary		Replace a personal board
//	@Description	The document id must match the path id.
//	@Tags			Boards
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Board id"
//	@Param			board	body		boardsdk.Board	true	"Board document"
//	@Success		200		{object}	boardsdk.Board
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Security		SessionCookie
//	@Router			/api/boards/{id} [put].
func (h *BoardsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	b, err := readBoard(r)
	if err != nil {
		writeServiceError(ctx, w, err, "read board")
		return
	}

	updated, err := h.BoardService.Update(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"), b)
	if err != nil {
		writeServiceError(ctx, w, err, "update board")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

// HandleDelete godoc
//
//	@Summary	Delete a personal board
//	@Tags		Boards
//	@Param		id	path	string	true	"Board id"
//	@Success	204
//	@Failure	404	{object}	httpx.ErrorBody
//	@Security	SessionCookie
//	@Router		/api/boards/{id} [delete].
func (h *BoardsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.BoardService.Delete(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id")); err != nil {
		writeServiceError(ctx, w, err, "delete board")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSubtasks godoc
//
//	@Summary		Replace a task's subtasks
//	@Description	When every subtask is completed the task moves to the Done column.
//	@Tags			Boards
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Board id"
//	@Param			taskId	path		string						true	"Task id"
//	@Param			request	body		boardsdk.SubtasksRequest	true	"Subtasks"
//	@Success		200		{object}	boardsdk.Board
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Security		SessionCookie
//	@Router			/api/boards/{id}/tasks/{taskId}/subtasks [put].
func (h *BoardsHandler) HandleSubtasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subtasks, ok := readSubtasks(w, r)
	if !ok {
		return
	}

	b, err := h.BoardService.UpdateSubtasks(ctx,
		httpx.UserIDFromContext(ctx), r.PathValue("id"), r.PathValue("taskId"), subtasks)
	if err != nil {
		writeServiceError(ctx, w, err, "update subtasks")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

// HandleStats godoc
//
//	@Summary	Board analytics
//	@Tags		Boards
//	@Produce	json
//	@Param		id			path		string	true	"Board id"
//	@Param		type		query		string	false	"Task type"
//	@Param		assignee	query		string	false	"Assignee"
//	@Param		priority	query		string	false	"Priority"
//	@Param		difficulty	query		string	false	"Difficulty"
//	@Param		sprint		query		string	false	"Sprint"
//	@Param		tag			query		string	false	"Tag"
//	@Param		subtasks	query		bool	false	"Only tasks with (true) or without (false) subtasks"
//	@Param		q			query		string	false	"Text search over title and description"
//	@Param		mode		query		string	false	"Completion mode: total or tracked"
//	@Success	200			{object}	boardsdk.Stats
//	@Failure	404			{object}	httpx.ErrorBody
//	@Security	SessionCookie
//	@Router		/api/boards/{id}/stats [get].
func (h *BoardsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, mode := statsParams(r)
	stats, err := h.BoardService.Stats(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"), f, mode)
	if err != nil {
		writeServiceError(ctx, w, err, "compute stats")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}
