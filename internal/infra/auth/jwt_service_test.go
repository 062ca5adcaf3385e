package auth

import (
	"testing"
	"time"

	"passport/config"
	"passport/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_session_secret_key_very_long_for_testing"

func newTestJWTService(t *testing.T, secret string) service.TokenService {
	cfg := &config.Config{}
	cfg.SecretKey.Session = secret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)
	require.NotNil(t, svc)

	return svc
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := newTestJWTService(t, testSecret)

	accountID := uuid.New()
	token, err := svc.Issue(accountID, "test@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	assert.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, "test@example.com", claims.Email)

	// The expiry honours the advertised TTL.
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, svc.TTL(), claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestJWTService_TTL(t *testing.T) {
	svc := newTestJWTService(t, testSecret)

	assert.Equal(t, 24*time.Hour, svc.TTL())
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc := newTestJWTService(t, testSecret)

	claims, err := svc.Verify("clearly-not-a-jwt-token")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc := newTestJWTService(t, testSecret)
	other := newTestJWTService(t, "another_secret_entirely_for_testing")

	token, err := other.Issue(uuid.New(), "test@example.com")
	assert.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenSignatureInvalid)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(t, testSecret)

	// Sign a token that expired an hour ago, using the same secret and claim shape.
	now := time.Now()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   uuid.New().String(),
		"email": "test@example.com",
		"iat":   now.Add(-25 * time.Hour).Unix(),
		"exp":   now.Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTService_NonUUIDSubject(t *testing.T) {
	svc := newTestJWTService(t, testSecret)

	bad := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "not-a-uuid",
		"email": "test@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	token, err := bad.SignedString([]byte(testSecret))
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestJWTService_RejectsUnexpectedSigningMethod(t *testing.T) {
	svc := newTestJWTService(t, testSecret)

	// alg=none tokens must never verify.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := &config.Config{}

	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "signing secret must be provided")
}
