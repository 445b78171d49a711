package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"eventboard/internal/domain"
)

const minPasswordLength = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	tx      domain.TxManager
	hasher  domain.PasswordHasher
	storage domain.FileStorage
	logger  *slog.Logger
}

// NewUserService creates a UserService with the given transaction
// manager, password hasher, and avatar storage.
func NewUserService(tx domain.TxManager, hasher domain.PasswordHasher, storage domain.FileStorage, logger *slog.Logger) domain.UserService {
	return &userService{tx: tx, hasher: hasher, storage: storage, logger: logger}
}

// CreateUser registers a user. Email and username are checked inside
// the same scope as the insert; a taken email or username yields a
// conflict message, not an error.
func (s *userService) CreateUser(ctx context.Context, nu domain.NewUser) (*domain.User, string, error) {
	nu.Email = strings.TrimSpace(strings.ToLower(nu.Email))
	nu.Username = strings.TrimSpace(nu.Username)
	if !emailRegexp.MatchString(nu.Email) {
		return nil, "", fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if nu.Username == "" {
		return nil, "", fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if len(nu.Password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	hash, err := s.hasher.Hash(nu.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	var user *domain.User
	var conflict string
	err = s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		existing, err := uow.Users().GetByEmail(ctx, nu.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil {
			conflict = "email already in use"
			return nil
		}
		existing, err = uow.Users().GetByUsername(ctx, nu.Username)
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if existing != nil {
			conflict = "username already taken"
			return nil
		}
		user = &domain.User{
			Username:       nu.Username,
			Email:          nu.Email,
			HashedPassword: hash,
			Gender:         "not_specified",
		}
		if err := uow.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	if conflict != "" {
		return nil, conflict, nil
	}
	return user, "", nil
}

// AuthenticateUser verifies the credentials. Unknown email and wrong
// password are indistinguishable to the caller: both yield ok=false.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (int64, bool, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	var user *domain.User
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		user, err = uow.Users().GetByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	if user == nil || !s.hasher.Verify(password, user.HashedPassword) {
		return 0, false, nil
	}
	return user.ID, true, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user *domain.User
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		user, err = uow.Users().Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user *domain.User
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		user, err = uow.Users().GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user *domain.User
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		user, err = uow.Users().GetByUsername(ctx, username)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *userService) GetWithFavorites(ctx context.Context, id int64) (*domain.UserWithFavorites, error) {
	var user *domain.UserWithFavorites
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		user, err = uow.Users().GetWithFavorites(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user with favorites: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id int64, patch *domain.UserPatch) (*domain.User, error) {
	if patch.Email != nil {
		normalized := strings.TrimSpace(strings.ToLower(*patch.Email))
		if !emailRegexp.MatchString(normalized) {
			return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
		}
		patch.Email = &normalized
	}
	var user *domain.User
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		user, err = uow.Users().Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		return uow.Users().Delete(ctx, id)
	})
}

// UpdateUserAvatar points the user at the new avatar. The previous file
// is removed best effort after the row is committed.
func (s *userService) UpdateUserAvatar(ctx context.Context, id int64, avatarPath string) (*domain.User, error) {
	var user *domain.User
	var oldPath *string
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		current, err := uow.Users().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if current == nil {
			return domain.ErrNotFound
		}
		oldPath = current.ProfileImage
		user, err = uow.Users().UpdateAvatar(ctx, id, avatarPath)
		if err != nil {
			return fmt.Errorf("failed to update avatar: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if oldPath != nil && *oldPath != avatarPath {
		if err := s.storage.Remove(*oldPath); err != nil {
			s.logger.Warn("failed to remove old avatar", "path", *oldPath, "error", err)
		}
	}
	return user, nil
}

// ChangePassword verifies the current password before storing the new
// hash; a mismatch yields ErrWrongPassword.
func (s *userService) ChangePassword(ctx context.Context, id int64, lastPassword, newPassword string) (*domain.User, error) {
	if len(newPassword) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	var user *domain.User
	err = s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		current, err := uow.Users().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if !s.hasher.Verify(lastPassword, current.HashedPassword) {
			return domain.ErrWrongPassword
		}
		if err := uow.Users().UpdatePassword(ctx, id, hash); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		user = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
