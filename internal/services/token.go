package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired means the token was past its expiry even after the
	// clock-skew allowance.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers signature failures and malformed tokens.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrMissingClaim means the token verified but carries no userId claim.
	ErrMissingClaim = errors.New("token has no userId claim")
	// ErrMissingSecret means the service was constructed without a signing secret.
	ErrMissingSecret = errors.New("JWT signing secret is not configured")
)

const (
	// TokenLifetime is the absolute validity window of an issued token.
	// There is no refresh; a new token requires a new login.
	TokenLifetime = time.Hour
	// ClockSkew is tolerated in both directions when validating expiry.
	ClockSkew = 2 * time.Minute
)

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenService issues and validates the signed session tokens carried as
// bearer credentials. Tokens are stateless; revocation lives in the blacklist.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService fails when the secret is empty so a misconfigured server
// refuses to start instead of minting unverifiable tokens.
func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenService{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token claiming userID, valid for TokenLifetime from now.
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
		UserID: userID,
	})
	return token.SignedString(s.secret)
}

// Validate verifies signature and expiry (with ClockSkew leeway) and returns
// the userId claim.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(ClockSkew),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !token.Valid {
		return "", ErrTokenInvalid
	}
	if claims.UserID == "" {
		return "", ErrMissingClaim
	}
	return claims.UserID, nil
}
