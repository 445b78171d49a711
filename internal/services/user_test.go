package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventboard/internal/domain"
)

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("registers with hashed password", func(t *testing.T) {
		tx := newFakeTxManager()
		svc := NewUserService(tx, &fakePasswordHasher{}, &fakeFileStorage{}, discardLogger())

		user, conflict, err := svc.CreateUser(ctx, domain.NewUser{
			Username: "alice",
			Email:    "Alice@Example.com",
			Password: "secretpass",
		})
		require.NoError(t, err)
		assert.Empty(t, conflict)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "hash-secretpass", user.HashedPassword)
		assert.Equal(t, "not_specified", user.Gender)
		assert.Equal(t, 1, tx.commits)
	})

	t.Run("taken email yields a conflict message, not an error", func(t *testing.T) {
		tx := newFakeTxManager()
		tx.uow.users.byID[1] = &domain.User{ID: 1, Username: "bob", Email: "alice@example.com"}
		svc := NewUserService(tx, &fakePasswordHasher{}, &fakeFileStorage{}, discardLogger())

		user, conflict, err := svc.CreateUser(ctx, domain.NewUser{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secretpass",
		})
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.Equal(t, "email already in use", conflict)
	})

	t.Run("taken username yields a conflict message, not an error", func(t *testing.T) {
		tx := newFakeTxManager()
		tx.uow.users.byID[1] = &domain.User{ID: 1, Username: "alice", Email: "other@example.com"}
		svc := NewUserService(tx, &fakePasswordHasher{}, &fakeFileStorage{}, discardLogger())

		user, conflict, err := svc.CreateUser(ctx, domain.NewUser{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secretpass",
		})
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.Equal(t, "username already taken", conflict)
	})

	t.Run("invalid email", func(t *testing.T) {
		tx := newFakeTxManager()
		svc := NewUserService(tx, &fakePasswordHasher{}, &fakeFileStorage{}, discardLogger())
		_, _, err := svc.CreateUser(ctx, domain.NewUser{Username: "alice", Email: "nope", Password: "secretpass"})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("short password", func(t *testing.T) {
		tx := newFakeTxManager()
		svc := NewUserService(tx, &fakePasswordHasher{}, &fakeFileStorage{}, discardLogger())
		_, _, err := svc.CreateUser(ctx, domain.NewUser{Username: "alice", Email: "alice@example.com", Password: "short"})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUserService_AuthenticateUser(t *testing.T) {
	ctx := context.Background()

	tx := newFakeTxManager()
	tx.uow.users.byID[1] = &domain.User{
		ID:             1,
		Email:          "alice@example.com",
		HashedPassword: "hash-secretpass",
	}
	svc := NewUserService(tx, &fakePasswordHasher{}, &fakeFileStorage{}, discardLogger())

	t.Run("valid credentials", func(t *testing.T) {
		id, ok, err := svc.AuthenticateUser(ctx, "Alice@Example.com", "secretpass")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(1), id)
	})

	t.Run("wrong password is not an error", func(t *testing.T) {
		_, ok, err := svc.AuthenticateUser(ctx, "alice@example.com", "wrong")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown email is not an error", func(t *testing.T) {
		_, ok, err := svc.AuthenticateUser(ctx, "nobody@example.com", "secretpass")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the new hash after verifying the old password", func(t *testing.T) {
		tx := newFakeTxManager()
		tx.uow.users.byID[1] = &domain.User{ID: 1, HashedPassword: "hash-oldpassword"}
		svc := NewUserService(tx, &fakePasswordHasher{}, &fakeFileStorage{}, discardLogger())

		_, err := svc.ChangePassword(ctx, 1, "oldpassword", "newpassword")
		require.NoError(t, err)
		assert.Equal(t, "hash-newpassword", tx.uow.users.byID[1].HashedPassword)
	})

	t.Run("wrong current password", func(t *testing.T) {
		tx := newFakeTxManager()
		tx.uow.users.byID[1] = &domain.User{ID: 1, HashedPassword: "hash-oldpassword"}
		svc := NewUserService(tx, &fakePasswordHasher{}, &fakeFileStorage{}, discardLogger())

		_, err := svc.ChangePassword(ctx, 1, "nope-not-it", "newpassword")
		require.ErrorIs(t, err, domain.ErrWrongPassword)
		assert.Equal(t, "hash-oldpassword", tx.uow.users.byID[1].HashedPassword)
		assert.Equal(t, 1, tx.rollbacks)
	})

	t.Run("absent user", func(t *testing.T) {
		tx := newFakeTxManager()
		svc := NewUserService(tx, &fakePasswordHasher{}, &fakeFileStorage{}, discardLogger())
		_, err := svc.ChangePassword(ctx, 99, "oldpassword", "newpassword")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserService_UpdateUserAvatar(t *testing.T) {
	ctx := context.Background()

	old := "avatars/old.png"
	tx := newFakeTxManager()
	tx.uow.users.byID[1] = &domain.User{ID: 1, ProfileImage: &old}
	storage := &fakeFileStorage{}
	svc := NewUserService(tx, &fakePasswordHasher{}, storage, discardLogger())

	got, err := svc.UpdateUserAvatar(ctx, 1, "avatars/new.png")
	require.NoError(t, err)
	assert.Equal(t, "avatars/new.png", *got.ProfileImage)
	assert.Equal(t, []string{"avatars/old.png"}, storage.removed)
}

func TestUserService_GetWithFavorites(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the profile with summaries", func(t *testing.T) {
		tx := newFakeTxManager()
		tx.uow.users.byID[1] = &domain.User{ID: 1, Username: "alice"}
		tx.uow.users.summaries = []*domain.EventSummary{{ID: 7, Title: "Jazz Night"}}
		svc := NewUserService(tx, &fakePasswordHasher{}, &fakeFileStorage{}, discardLogger())

		got, err := svc.GetWithFavorites(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
		assert.Len(t, got.Favorites, 1)
	})

	t.Run("absent user", func(t *testing.T) {
		tx := newFakeTxManager()
		svc := NewUserService(tx, &fakePasswordHasher{}, &fakeFileStorage{}, discardLogger())
		_, err := svc.GetWithFavorites(ctx, 99)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
