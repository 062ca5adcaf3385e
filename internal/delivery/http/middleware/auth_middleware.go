package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/delivery/http/response"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys under which the authenticated identity is stored for handlers.
const (
	ContextKeyAccountID    = "accountID"
	ContextKeyAccountEmail = "accountEmail"
)

// AuthMiddleware provides middleware for bearer token authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate validates the bearer session token on incoming requests.
// Every rejection produces the same 401 body; the specific reason (missing
// header, bad scheme, malformed, bad signature, expired) is only logged, so
// responses never leak token state to a probing client.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return m.reject(c, "authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return m.reject(c, "authorization header is not a bearer token")
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return m.reject(c, err.Error())
		}

		// Set identity on the context for handlers to use
		c.Set(ContextKeyAccountID, claims.AccountID)
		c.Set(ContextKeyAccountEmail, claims.Email)

		return next(c)
	}
}

func (m *AuthMiddleware) reject(c echo.Context, reason string) error {
	m.log(c).Warn("Request rejected by auth middleware",
		slog.String("reason", reason),
		slog.String("path", c.Request().URL.Path),
	)

	return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), domainerrors.ErrUnauthorized.Message())
}

func (m *AuthMiddleware) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
}
