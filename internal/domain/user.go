package domain

import (
	"context"
	"time"
)

// DefaultSourceUserID is the well-known SourceUser row every new User
// references unless told otherwise. It must be seeded before the first
// User insert; this is a deployment-time invariant.
const DefaultSourceUserID int64 = 1

// User represents a registered user.
// swagger:model User
type User struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"`
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	DOB            *time.Time `json:"dob"`
	Gender         string     `json:"gender"`
	Description    *string    `json:"description"`
	ProfileImage   *string    `json:"profile_image"`
	IsAdmin        bool       `json:"is_admin"`
	SourceID       *int64     `json:"source_id"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewUser carries the fields needed to register a user. Password is the
// plaintext; it is hashed by the user service before persisting.
type NewUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPatch holds the fields of a partial user update. Nil fields are
// left untouched.
type UserPatch struct {
	Username    *string    `json:"username"`
	Email       *string    `json:"email"`
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	DOB         *time.Time `json:"dob"`
	Gender      *string    `json:"gender"`
	Description *string    `json:"description"`
}

// UserWithFavorites is a user together with the events they favorited,
// each carrying its location summary.
// swagger:model UserWithFavorites
type UserWithFavorites struct {
	User
	Favorites []*EventSummary `json:"favorites"`
}

// SourceUser classifies how a user registered. The default row
// (id = DefaultSourceUserID) always exists.
// swagger:model SourceUser
type SourceUser struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// SourceUserPatch holds the fields of a partial source-user update.
type SourceUserPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// UserRepository defines the interface for user storage. Get-style
// lookups return (nil, nil) when the row is absent: absence is a normal
// result, not a failure.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Get(ctx context.Context, id int64) (*User, error)
	FindAll(ctx context.Context, offset, limit int) ([]*User, error)
	Update(ctx context.Context, id int64, patch *UserPatch) (*User, error)
	Delete(ctx context.Context, id int64) error

	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdateAvatar(ctx context.Context, id int64, path string) (*User, error)
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error

	// AddFavorite and RemoveFavorite are idempotent; missing user or
	// event ids are silent no-ops.
	AddFavorite(ctx context.Context, userID, eventID int64) error
	RemoveFavorite(ctx context.Context, userID, eventID int64) error
	GetWithFavorites(ctx context.Context, userID int64) (*UserWithFavorites, error)
}

// SourceUserRepository defines the interface for source-user storage.
type SourceUserRepository interface {
	Create(ctx context.Context, su *SourceUser) error
	Get(ctx context.Context, id int64) (*SourceUser, error)
	FindAll(ctx context.Context, offset, limit int) ([]*SourceUser, error)
	Update(ctx context.Context, id int64, patch *SourceUserPatch) (*SourceUser, error)
	Delete(ctx context.Context, id int64) error
}

// UserService defines the business logic for user profiles,
// registration, and credentials.
type UserService interface {
	// CreateUser checks email/username uniqueness first; on conflict it
	// returns a human-readable message instead of an error.
	CreateUser(ctx context.Context, nu NewUser) (user *User, conflict string, err error)
	// AuthenticateUser returns the user id only if the stored hash
	// verifies; bad credentials yield ok=false, never an error.
	AuthenticateUser(ctx context.Context, email, password string) (id int64, ok bool, err error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetWithFavorites(ctx context.Context, id int64) (*UserWithFavorites, error)
	Update(ctx context.Context, id int64, patch *UserPatch) (*User, error)
	Delete(ctx context.Context, id int64) error
	UpdateUserAvatar(ctx context.Context, id int64, avatarPath string) (*User, error)
	ChangePassword(ctx context.Context, id int64, lastPassword, newPassword string) (*User, error)
}

// FavoriteService manages a user's favorite events; it is a thin
// pass-through to the user repository.
type FavoriteService interface {
	AddFavorite(ctx context.Context, userID, eventID int64) error
	RemoveFavorite(ctx context.Context, userID, eventID int64) error
	GetUserFavorites(ctx context.Context, userID int64) ([]*EventSummary, error)
}

// SourceUserService provides CRUD over source users.
type SourceUserService interface {
	Create(ctx context.Context, su *SourceUser) (*SourceUser, error)
	Get(ctx context.Context, id int64) (*SourceUser, error)
	GetAll(ctx context.Context, offset, limit int) ([]*SourceUser, error)
	Update(ctx context.Context, id int64, patch *SourceUserPatch) (*SourceUser, error)
	Delete(ctx context.Context, id int64) error
}
