package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService_MissingSecret(t *testing.T) {
	_, err := NewTokenService("")
	require.ErrorIs(t, err, ErrMissingSecret)
}

func TestIssueAndValidate(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	token, err := svc.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestValidate_WrongSecret(t *testing.T) {
	issuer, err := NewTokenService("right-secret")
	require.NoError(t, err)
	verifier, err := NewTokenService("wrong-secret")
	require.NoError(t, err)

	token, err := issuer.Issue("u1")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Malformed(t *testing.T) {
	svc, err := NewTokenService("k")
	require.NoError(t, err)

	_, err = svc.Validate("not.a.jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Expiry(t *testing.T) {
	tests := []struct {
		name    string
		age     time.Duration // how long ago the token was issued
		wantErr error
	}{
		{name: "fresh", age: 0, wantErr: nil},
		{name: "near expiry", age: TokenLifetime - time.Minute, wantErr: nil},
		{name: "inside skew window", age: TokenLifetime + time.Minute, wantErr: nil},
		{name: "past skew window", age: TokenLifetime + 3*time.Minute, wantErr: ErrTokenExpired},
		{name: "long expired", age: 2 * TokenLifetime, wantErr: ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewTokenService("secret")
			require.NoError(t, err)

			issuedAt := time.Now().Add(-tt.age)
			svc.now = func() time.Time { return issuedAt }
			token, err := svc.Issue("u1")
			require.NoError(t, err)

			svc.now = time.Now
			userID, err := svc.Validate(token)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u1", userID)
		})
	}
}

func TestValidate_MissingClaim(t *testing.T) {
	secret := []byte("secret")

	// A structurally valid token without a userId claim.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := raw.SignedString(secret)
	require.NoError(t, err)

	svc, err := NewTokenService("secret")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.ErrorIs(t, err, ErrMissingClaim)
}
