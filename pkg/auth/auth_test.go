package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func secret(s string) SecretProvider {
	return func() []byte { return []byte(s) }
}

func TestAuthorize(t *testing.T) {
	v := NewVerifier(secret("s3cret"))
	valid, err := v.Issue("alice", time.Hour)
	require.NoError(t, err)
	foreign, err := NewVerifier(secret("other")).Issue("alice", time.Hour)
	require.NoError(t, err)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		user    string
		wantErr error
	}{
		{name: "valid", token: valid, user: "alice"},
		{name: "empty token", token: "", user: "alice", wantErr: ErrTokenIsEmpty},
		{name: "wrong user", token: valid, user: "bob", wantErr: ErrUserMismatch},
		{name: "wrong secret", token: foreign, user: "alice", wantErr: ErrInvalidToken},
		{name: "expired", token: expired, user: "alice", wantErr: ErrInvalidToken},
		{name: "garbage", token: "not.a.token", user: "alice", wantErr: ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Authorize(tt.token, tt.user)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
