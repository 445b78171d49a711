package domain

import (
	"context"
	"io"
	"time"
)

// PasswordHasher hashes and verifies user passwords.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer issues an access token for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// TokenStore is the opaque session index backing authentication.
type TokenStore interface {
	Store(ctx context.Context, token string, userID int64, ttl time.Duration) error
	// Check returns the user id bound to token, or ok=false when the
	// token is unknown or expired.
	Check(ctx context.Context, token string) (userID int64, ok bool, err error)
	Delete(ctx context.Context, token string) error
}

// FileStorage persists uploaded files. The core only keeps the returned
// path string, never raw bytes.
type FileStorage interface {
	// Save validates the file name's extension, stores the content under
	// a unique name in dir, and returns the stored path.
	Save(r io.Reader, filename, dir string) (string, error)
	Remove(path string) error
}

// AuthService manages login sessions.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	Logout(ctx context.Context, token string) error
}

// TokenResponse is the login result.
// swagger:model TokenResponse
type TokenResponse struct {
	Authorization string `json:"Authorization"`
	TokenType     string `json:"token_type"`
	ID            int64  `json:"id"`
}
