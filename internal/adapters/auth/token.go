package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventboard/internal/domain"
)

type jwtIssuer struct {
	secret []byte
	expiry time.Duration
}

// NewJWTIssuer returns a TokenIssuer signing HS256 JWTs with the given
// secret and lifetime. Token validity is enforced by the token store,
// not by the embedded expiry alone.
func NewJWTIssuer(secret string, expiry time.Duration) domain.TokenIssuer {
	return &jwtIssuer{secret: []byte(secret), expiry: expiry}
}

func (i *jwtIssuer) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}
