package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	h "eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// AuthController handles login and logout.
type AuthController struct {
	auth   domain.AuthService
	logger *slog.Logger
}

func NewAuthController(auth domain.AuthService, logger *slog.Logger) *AuthController {
	return &AuthController{auth: auth, logger: logger}
}

// LoginRequest is the request body for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates the user and returns a bearer token.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "email and password are required")
		return
	}
	resp, err := c.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, resp)
}

// Logout revokes the bearer token of the current request.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	if token == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing token")
		return
	}
	if err := c.auth.Logout(r.Context(), token); err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
