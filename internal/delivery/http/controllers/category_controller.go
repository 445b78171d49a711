package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	h "eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// CategoryController handles category CRUD and per-category event pages.
type CategoryController struct {
	categories domain.CategoryService
	logger     *slog.Logger
}

func NewCategoryController(categories domain.CategoryService, logger *slog.Logger) *CategoryController {
	return &CategoryController{categories: categories, logger: logger}
}

func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := h.ParseOffsetLimit(r)
	categories, err := c.categories.GetAll(r.Context(), offset, limit)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, categories)
}

func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	category, err := c.categories.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, category)
}

// Events returns the page of upcoming events in this category.
func (c *CategoryController) Events(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	offset, limit := h.ParseOffsetLimit(r)
	page, err := c.categories.GetEventsByCategory(r.Context(), id, offset, limit)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, page)
}

func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.Category
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid request body")
		return
	}
	category, err := c.categories.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, category)
}

func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	var patch domain.CategoryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid request body")
		return
	}
	category, err := c.categories.Update(r.Context(), id, &patch)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, category)
}

// Delete removes the category and, by cascade, its events.
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	if err := c.categories.Delete(r.Context(), id); err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
