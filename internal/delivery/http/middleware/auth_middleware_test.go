package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"passport/internal/domain/service"
	mockService "passport/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTest(t *testing.T) (*AuthMiddleware, *mockService.MockTokenService) {
	tokenSvc := mockService.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAuthMiddleware(tokenSvc, logger), tokenSvc
}

func runAuth(m *AuthMiddleware, authHeader string) (echo.Context, *httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	return c, rec, m.Authenticate(next)(c)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	m, tokenSvc := newAuthTest(t)

	accountID := uuid.New()
	tokenSvc.On("Verify", "good-token").Return(&service.Claims{
		AccountID: accountID,
		Email:     "test@example.com",
	}, nil)

	c, rec, err := runAuth(m, "Bearer good-token")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, accountID, c.Get(ContextKeyAccountID))
	assert.Equal(t, "test@example.com", c.Get(ContextKeyAccountEmail))
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	m, _ := newAuthTest(t)

	_, rec, err := runAuth(m, "")

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_NotBearer(t *testing.T) {
	m, _ := newAuthTest(t)

	_, rec, err := runAuth(m, "Basic dXNlcjpwYXNz")

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	m, tokenSvc := newAuthTest(t)

	tokenSvc.On("Verify", "bad-token").Return(nil, service.ErrTokenExpired)

	_, rec, err := runAuth(m, "Bearer bad-token")

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The body must not say why the token was rejected.
	assert.NotContains(t, rec.Body.String(), "expired")
}
