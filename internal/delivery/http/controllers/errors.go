package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// writeDomainError maps a service error to its status code. Anything
// not recognized is logged and reported as a generic server error.
func writeDomainError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrDuplicateEmail):
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "email already exists")
	case errors.Is(err, domain.ErrDuplicateUsername):
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "username already exists")
	case errors.Is(err, domain.ErrWrongPassword):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "incorrect current password")
	case errors.Is(err, domain.ErrInvalidFileType):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid file type")
	case errors.Is(err, domain.ErrInvalidInput):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
	default:
		logger.Error("request failed", "error", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "internal error")
	}
}
