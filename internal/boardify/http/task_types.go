package http

import (
	"net/http"

	"github.com/aussiebroadwan/boardify/internal/boardify/service"
	"github.com/aussiebroadwan/boardify/pkg/boardsdk"
	"github.com/aussiebroadwan/boardify/pkg/httpx"
)

type TaskTypesHandler struct {
	TaskTypeService *service.TaskTypeService
}

// HandleList godoc
//
//	@Summary	List task types
//	@Tags		Task Types
//	@Produce	json
//	@Success	200	{array}	string
//	@Security	SessionCookie
//	@Router		/api/task-types [get].
func (h *TaskTypesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	names, err := h.TaskTypeService.List(ctx)
	if err != nil {
		writeServiceError(ctx, w, err, "list task types")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, names)
}

// HandleCreate godoc
//
//	@Summary		Add a task type
//	@Description	Existing names are accepted without error.
//	@Tags			Task Types
//	@Accept			json
//	@Produce		json
//	@Param			request	body		boardsdk.TaskTypeRequest	true	"Task type"
//	@Success		201		{object}	boardsdk.TaskTypeRequest
//	@Failure		400		{object}	httpx.ErrorBody
//	@Security		SessionCookie
//	@Router			/api/task-types [post].
func (h *TaskTypesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req boardsdk.TaskTypeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	name, err := h.TaskTypeService.Create(ctx, req.Name)
	if err != nil {
		writeServiceError(ctx, w, err, "create task type")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, boardsdk.TaskTypeRequest{Name: name})
}
