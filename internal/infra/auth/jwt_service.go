// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"passport/config"
	"passport/internal/domain/service"
	"passport/internal/errors"
)

// sessionTTL is the fixed validity window of a session token. Tokens are never
// revoked server-side; they simply age out.
const sessionTTL = 24 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte // Process-wide signing secret, loaded once at startup.
}

// sessionClaims is the wire shape of the token payload. Subject carries the
// account ID; there is exactly one spelling for each field because this service
// controls both ends of the token format.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewJWTService is the constructor for jwtService.
// A missing signing secret is a fatal startup condition, not a per-request error.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("session signing secret must be provided")
	}

	return &jwtService{secret: []byte(cfg.SecretKey.Session)}, nil
}

// Issue creates a signed HS256 session token for the account.
func (s *jwtService) Issue(accountID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := &sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)

	return token, errors.Wrap(err, "sign session token")
}

// Verify checks the token's signature and expiry and returns the embedded identity.
// Each failure mode maps to a distinct sentinel so internal logging can be precise.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})

	switch {
	case err == nil && token.Valid:
		// fall through to claim extraction
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, service.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return nil, service.ErrTokenSignatureInvalid
	default:
		return nil, service.ErrTokenMalformed
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, service.ErrTokenMalformed
	}

	return &service.Claims{
		AccountID:        accountID,
		Email:            claims.Email,
		RegisteredClaims: claims.RegisteredClaims,
	}, nil
}

// TTL returns the fixed validity window of issued tokens.
func (s *jwtService) TTL() time.Duration {
	return sessionTTL
}
