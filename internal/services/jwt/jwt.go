// Package jwt provides session token generation and validation.
//
// A session token is a stateless, signed credential: the server never stores
// it, so verifying a request needs no database lookup. Tokens are bound to a
// user id and expire seven days after issuance. There is no server-side
// revocation; logout only clears the client's cookie.
package jwt

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("jwt: invalid token")
	ErrExpiredToken  = errors.New("jwt: token has expired")
	ErrTokenNotFound = errors.New("jwt: token not found")
	ErrMissingSecret = errors.New("jwt: JWT_SECRET_KEY is not set")
)

const Issuer = "langsync-api"

// SessionTokenDuration is how long an issued token stays valid.
const SessionTokenDuration = 7 * 24 * time.Hour

// Claims is the payload embedded in every session token.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService creates and validates session tokens.
// Create one instance at startup and reuse it.
type TokenService struct {
	secretKey     []byte
	tokenDuration time.Duration
	parser        *jwt.Parser
}

// NewTokenService builds a TokenService from the JWT_SECRET_KEY environment
// variable. A missing secret is returned as an error so the caller can treat
// it as fatal; signing with an empty secret would silently produce tokens
// anyone can forge.
func NewTokenService() (*TokenService, error) {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return nil, ErrMissingSecret
	}

	parser := jwt.NewParser(
		// Only accept HS256 - prevents algorithm confusion attacks.
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithIssuer(Issuer),
	)

	return &TokenService{
		secretKey:     []byte(secret),
		tokenDuration: SessionTokenDuration,
		parser:        parser,
	}, nil
}

// GenerateToken mints a signed session token for the given user id.
func (s *TokenService) GenerateToken(userID string) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a session token and returns its claims. Bad
// signature, malformed structure and expiry all fail verification.
func (s *TokenService) ParseToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenNotFound
	}

	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secretKey, nil
	})
	if err != nil {
		return nil, convertError(err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// TokenDuration returns the lifetime of issued tokens, used to align the
// session cookie's max-age with token expiry.
func (s *TokenService) TokenDuration() time.Duration {
	return s.tokenDuration
}

// convertError transforms jwt library errors into our sentinel errors.
func convertError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpiredToken, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: token is malformed", ErrInvalidToken)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: signature is invalid", ErrInvalidToken)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}
