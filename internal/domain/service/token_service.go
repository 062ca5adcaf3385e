package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification failure modes, distinguished so callers can produce accurate
// diagnostics. The HTTP layer collapses all of them into a uniform 401.
var (
	// ErrTokenMalformed is returned when the token structure cannot be parsed.
	ErrTokenMalformed = errors.New("session token is malformed")
	// ErrTokenSignatureInvalid is returned when the signature does not match the
	// process-wide signing secret.
	ErrTokenSignatureInvalid = errors.New("session token signature is invalid")
	// ErrTokenExpired is returned when the token's expiry is at or before now.
	ErrTokenExpired = errors.New("session token has expired")
)

// Claims is the single canonical payload shape carried by a session token.
// The issuer and verifier are both owned by this service, so no alternative
// field spellings are ever accepted.
type Claims struct {
	AccountID uuid.UUID
	Email     string
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying session tokens.
// Tokens are self-contained: validity is entirely a function of the signature
// and the embedded expiry; no server-side session state exists.
type TokenService interface {
	// Issue creates a signed session token for the account, valid from now for
	// the fixed session TTL.
	Issue(accountID uuid.UUID, email string) (string, error)

	// Verify checks a token string and returns its claims, or one of
	// ErrTokenMalformed, ErrTokenSignatureInvalid, ErrTokenExpired.
	Verify(tokenString string) (*Claims, error)

	// TTL returns the fixed validity window of issued tokens.
	TTL() time.Duration
}
