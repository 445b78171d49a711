package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	h "eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// TagController handles tag CRUD.
type TagController struct {
	tags   domain.TagService
	logger *slog.Logger
}

func NewTagController(tags domain.TagService, logger *slog.Logger) *TagController {
	return &TagController{tags: tags, logger: logger}
}

func (c *TagController) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := h.ParseOffsetLimit(r)
	tags, err := c.tags.GetAll(r.Context(), offset, limit)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, tags)
}

func (c *TagController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	tag, err := c.tags.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, tag)
}

func (c *TagController) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.Tag
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid request body")
		return
	}
	tag, err := c.tags.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, tag)
}

func (c *TagController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	var patch domain.TagPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid request body")
		return
	}
	tag, err := c.tags.Update(r.Context(), id, &patch)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, tag)
}

func (c *TagController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	if err := c.tags.Delete(r.Context(), id); err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
