package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	h "eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// SourceUserController handles registration-source CRUD.
type SourceUserController struct {
	sourceUsers domain.SourceUserService
	logger      *slog.Logger
}

func NewSourceUserController(sourceUsers domain.SourceUserService, logger *slog.Logger) *SourceUserController {
	return &SourceUserController{sourceUsers: sourceUsers, logger: logger}
}

func (c *SourceUserController) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := h.ParseOffsetLimit(r)
	sus, err := c.sourceUsers.GetAll(r.Context(), offset, limit)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, sus)
}

func (c *SourceUserController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	su, err := c.sourceUsers.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, su)
}

func (c *SourceUserController) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.SourceUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid request body")
		return
	}
	su, err := c.sourceUsers.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, su)
}

func (c *SourceUserController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	var patch domain.SourceUserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid request body")
		return
	}
	su, err := c.sourceUsers.Update(r.Context(), id, &patch)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, su)
}

func (c *SourceUserController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	if err := c.sourceUsers.Delete(r.Context(), id); err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
