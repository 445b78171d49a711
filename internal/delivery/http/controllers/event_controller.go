package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	h "eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// EventController handles event listings, details, and admin mutations.
type EventController struct {
	events   domain.EventService
	storage  domain.FileStorage
	imageDir string
	logger   *slog.Logger
}

func NewEventController(events domain.EventService, storage domain.FileStorage, imageDir string, logger *slog.Logger) *EventController {
	return &EventController{events: events, storage: storage, imageDir: imageDir, logger: logger}
}

// List returns a page of upcoming event summaries, optionally filtered
// by date, date+hour, or an inclusive date range.
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	filter, err := h.ParseDateFilter(r)
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	offset, limit := h.ParseOffsetLimit(r)
	page, err := c.events.GetFiltered(r.Context(), filter, offset, limit)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, page)
}

// Get returns one event with location, category, tags, and dates.
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	event, err := c.events.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// Create adds an event with its tag links and scheduled dates.
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.NewEvent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid request body")
		return
	}
	event, err := c.events.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// Update applies a partial update to an event.
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	var patch domain.EventPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid request body")
		return
	}
	event, err := c.events.Update(r.Context(), id, &patch)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete removes an event. Users who favorited it keep their accounts;
// only the link rows go.
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	if err := c.events.Delete(r.Context(), id); err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage stores a new image for the event. The multipart field is
// named "image".
func (c *EventController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "image file is required")
		return
	}
	defer file.Close()

	path, err := c.storage.Save(file, header.Filename, c.imageDir)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	event, err := c.events.UpdateEventImage(r.Context(), id, path)
	if err != nil {
		// The row update failed; the stored file has no owner.
		if removeErr := c.storage.Remove(path); removeErr != nil {
			c.logger.Warn("failed to remove orphaned upload", "path", path, "error", removeErr)
		}
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// Search returns autocomplete hits over event titles and location
// names for the "q" query parameter.
func (c *EventController) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	results, err := c.events.SearchAutocomplete(r.Context(), query)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, results)
}
