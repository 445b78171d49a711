package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	h "eventboard/internal/delivery/http/helpers"
	"eventboard/internal/delivery/http/middleware"
	"eventboard/internal/domain"
)

const maxUploadBytes = 10 << 20

// UserController handles registration, profiles, credentials, and
// favorites.
type UserController struct {
	users     domain.UserService
	favorites domain.FavoriteService
	storage   domain.FileStorage
	avatarDir string
	logger    *slog.Logger
}

func NewUserController(users domain.UserService, favorites domain.FavoriteService, storage domain.FileStorage, avatarDir string, logger *slog.Logger) *UserController {
	return &UserController{users: users, favorites: favorites, storage: storage, avatarDir: avatarDir, logger: logger}
}

// Register creates a new user account. A taken email or username
// yields 409 with a human-readable message.
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.NewUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid request body")
		return
	}
	user, conflict, err := c.users.CreateUser(r.Context(), req)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	if conflict != "" {
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, conflict)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, user)
}

// Me returns the authenticated user's profile with favorites.
func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.UserIDFromContext(r.Context())
	user, err := c.users.GetWithFavorites(r.Context(), id)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, user)
}

// Get returns a user profile with favorites by id.
func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	user, err := c.users.GetWithFavorites(r.Context(), id)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, user)
}

// Update applies a partial update to the authenticated user's profile.
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.UserIDFromContext(r.Context())
	var patch domain.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid request body")
		return
	}
	user, err := c.users.Update(r.Context(), id, &patch)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, user)
}

// Delete removes the authenticated user's account.
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.UserIDFromContext(r.Context())
	if err := c.users.Delete(r.Context(), id); err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadAvatar stores a new profile image for the authenticated user.
// The multipart field is named "avatar".
func (c *UserController) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.UserIDFromContext(r.Context())
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	path, err := c.storage.Save(file, header.Filename, c.avatarDir)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	user, err := c.users.UpdateUserAvatar(r.Context(), id, path)
	if err != nil {
		// The row update failed; the stored file has no owner.
		if removeErr := c.storage.Remove(path); removeErr != nil {
			c.logger.Warn("failed to remove orphaned upload", "path", path, "error", removeErr)
		}
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, user)
}

// ChangePasswordRequest is the request body for PUT /api/users/me/password.
type ChangePasswordRequest struct {
	LastPassword string `json:"last_password"`
	NewPassword  string `json:"new_password"`
}

// ChangePassword replaces the authenticated user's password after
// verifying the current one.
func (c *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.UserIDFromContext(r.Context())
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid request body")
		return
	}
	user, err := c.users.ChangePassword(r.Context(), id, req.LastPassword, req.NewPassword)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, user)
}

// ListFavorites returns the authenticated user's favorite events.
func (c *UserController) ListFavorites(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.UserIDFromContext(r.Context())
	favorites, err := c.favorites.GetUserFavorites(r.Context(), id)
	if err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, favorites)
}

// AddFavorite links an event to the authenticated user. Re-adding is a
// no-op; the response is 204 either way.
func (c *UserController) AddFavorite(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.UserIDFromContext(r.Context())
	eventID, err := h.ParseID(r, "eventID")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	if err := c.favorites.AddFavorite(r.Context(), id, eventID); err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFavorite unlinks an event from the authenticated user.
func (c *UserController) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.UserIDFromContext(r.Context())
	eventID, err := h.ParseID(r, "eventID")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	if err := c.favorites.RemoveFavorite(r.Context(), id, eventID); err != nil {
		writeDomainError(w, c.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
