package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/merchware/shopd/internal/shop/service"
	"github.com/merchware/shopd/pkg/httpx"
	"github.com/merchware/shopd/pkg/slogx"
)

// StatusesHandler manages the order status vocabulary. All routes are
// admin-gated in the router.
type StatusesHandler struct {
	StatusService *service.StatusService
}

// HandleCreate adds a status.
//
//	@Summary	Create an order status
//	@Tags		Statuses
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		statusRequest	true	"Status name"
//	@Success	201		{object}	StatusResponse
//	@Failure	400		{object}	httpx.ErrorBody	"Validation failure or duplicate name"
//	@Router		/api/v1/statuses [post].
func (h *StatusesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.StatusService.CreateStatus(ctx, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrStatusExists) {
			httpx.WriteError(w, http.StatusBadRequest, "a status with this name already exists")
			return
		}
		log.Error("creating status failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toStatusResponse(s))
}

// HandleList lists all statuses.
//
//	@Summary	List order statuses
//	@Tags		Statuses
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	StatusResponse
//	@Router		/api/v1/statuses [get].
func (h *StatusesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	statuses, err := h.StatusService.ListStatuses(ctx)
	if err != nil {
		log.Error("listing statuses failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]StatusResponse, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, toStatusResponse(s))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns a single status.
//
//	@Summary	Get an order status
//	@Tags		Statuses
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Status id"
//	@Success	200	{object}	StatusResponse
//	@Failure	404	{object}	httpx.ErrorBody
//	@Router		/api/v1/statuses/{id} [get].
func (h *StatusesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")
	s, err := h.StatusService.GetStatusByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrStatusNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "status not found")
			return
		}
		log.Error("loading status failed", "status_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toStatusResponse(s))
}

// HandleUpdate renames a status.
//
//	@Summary	Rename an order status
//	@Tags		Statuses
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Status id"
//	@Param		body	body		statusRequest	true	"New name"
//	@Success	200		{object}	StatusResponse
//	@Failure	400		{object}	httpx.ErrorBody	"Duplicate name"
//	@Failure	404		{object}	httpx.ErrorBody
//	@Router		/api/v1/statuses/{id} [put].
func (h *StatusesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := r.PathValue("id")
	s, err := h.StatusService.UpdateStatus(ctx, id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStatusExists):
			httpx.WriteError(w, http.StatusBadRequest, "a status with this name already exists")
		case errors.Is(err, service.ErrStatusNotFound):
			httpx.WriteError(w, http.StatusNotFound, "status not found")
		default:
			log.Error("updating status failed", "status_id", id, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toStatusResponse(s))
}

// HandleDelete removes a status that no order references.
//
//	@Summary	Delete an order status
//	@Tags		Statuses
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Status id"
//	@Success	204
//	@Failure	400	{object}	httpx.ErrorBody	"Status still referenced by orders"
//	@Failure	404	{object}	httpx.ErrorBody
//	@Router		/api/v1/statuses/{id} [delete].
func (h *StatusesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")
	if err := h.StatusService.DeleteStatus(ctx, id); err != nil {
		switch {
		case errors.Is(err, service.ErrStatusInUse):
			httpx.WriteError(w, http.StatusBadRequest, "status is still referenced by orders")
		case errors.Is(err, service.ErrStatusNotFound):
			httpx.WriteError(w, http.StatusNotFound, "status not found")
		default:
			log.Error("deleting status failed", "status_id", id, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
