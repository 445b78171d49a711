package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	h "eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// LocationController handles venue CRUD and per-venue event pages.
type LocationController struct {
	locations domain.LocationService
	logger    *slog.Logger
}

func NewLocationController(locations domain.LocationService, logger *slog.Logger) *LocationController {
	return &LocationController{locations: locations, logger: logger}
}

func (c *LocationController) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := h.ParseOffsetLimit(r)
	locations, err := c.locations.GetAll(r.Context(), offset, limit)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, locations)
}

func (c *LocationController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	location, err := c.locations.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, location)
}

// Events returns the page of upcoming events at this venue.
func (c *LocationController) Events(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	offset, limit := h.ParseOffsetLimit(r)
	page, err := c.locations.GetEventsByLocation(r.Context(), id, offset, limit)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, page)
}

func (c *LocationController) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.Location
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid request body")
		return
	}
	location, err := c.locations.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, location)
}

func (c *LocationController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	var patch domain.LocationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid request body")
		return
	}
	location, err := c.locations.Update(r.Context(), id, &patch)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, location)
}

// Delete removes the venue and, by cascade, its events.
func (c *LocationController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	if err := c.locations.Delete(r.Context(), id); err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
