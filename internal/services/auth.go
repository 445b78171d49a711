package services

import (
	"context"
	"fmt"
	"time"

	"eventboard/internal/domain"
)

type authService struct {
	users    domain.UserService
	issuer   domain.TokenIssuer
	tokens   domain.TokenStore
	tokenTTL time.Duration
}

// NewAuthService creates an AuthService issuing tokens with the given
// lifetime.
func NewAuthService(users domain.UserService, issuer domain.TokenIssuer, tokens domain.TokenStore, tokenTTL time.Duration) domain.AuthService {
	return &authService{users: users, issuer: issuer, tokens: tokens, tokenTTL: tokenTTL}
}

// Login verifies the credentials and issues a bearer token registered
// in the token store for its lifetime.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.TokenResponse, error) {
	id, ok, err := s.users.AuthenticateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	token, err := s.issuer.Issue(id)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	if err := s.tokens.Store(ctx, token, id, s.tokenTTL); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return &domain.TokenResponse{Authorization: token, TokenType: "Bearer", ID: id}, nil
}

// Logout revokes the token. Revoking an unknown token is a no-op.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.tokens.Delete(ctx, token)
}
