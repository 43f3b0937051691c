// Package auth verifies HS256 JWT tokens issued to platform users.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenIsEmpty is returned when no token is supplied.
	ErrTokenIsEmpty = errors.New("token is empty")
	// ErrInvalidToken is returned when a token fails verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUserMismatch is returned when the token subject is not the acting user.
	ErrUserMismatch = errors.New("token does not belong to user")
)

// SecretProvider defines a provider of the signing secret.
type SecretProvider func() []byte

// Verifier validates tokens signed with a shared secret.
type Verifier struct {
	secretProvider SecretProvider
}

// NewVerifier creates a new token verifier.
func NewVerifier(secretProvider SecretProvider) *Verifier {
	return &Verifier{secretProvider: secretProvider}
}

// Issue signs a token for the given user. Used by tooling and tests.
func (v *Verifier) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secretProvider())
}

// Subject verifies the token and returns its subject.
func (v *Verifier) Subject(token string) (string, error) {
	if token == "" {
		return "", ErrTokenIsEmpty
	}
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secretProvider(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Authorize checks that token is valid and was issued to userID.
func (v *Verifier) Authorize(token string, userID string) error {
	sub, err := v.Subject(token)
	if err != nil {
		return err
	}
	if sub != userID {
		return ErrUserMismatch
	}
	return nil
}
