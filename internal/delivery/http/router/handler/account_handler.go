// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/response"
	"passport/internal/domain/entity"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// accountView is the public projection of an account. The password hash never
// leaves the persistence and domain layers.
type accountView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newAccountView(account *entity.Account) accountView {
	return accountView{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Signup handles the account registration request.
func (h *AccountHandler) Signup(c echo.Context) error {
	var input *usecase.SignupInput
	if err := c.Bind(&input); err != nil || input == nil {
		// An empty body leaves input nil without a bind error.
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}

	output, err := h.uc.Signup(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newAccountView(output.Account), "Account registered successfully")
}

// Login handles the account login request.
func (h *AccountHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil || input == nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"token":   output.Token,
		"account": newAccountView(output.Account),
	}, "Login successful")
}

// GetProfile handles the request to get the current account's profile.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	accountID, ok := authenticatedAccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid account ID in token")
	}

	account, err := h.uc.GetProfile(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountView(account), "Profile retrieved successfully")
}

// UpdateProfile handles the request to update the current account's profile.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	accountID, ok := authenticatedAccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid account ID in token")
	}

	var input *usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil || input == nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	account, err := h.uc.UpdateProfile(c.Request().Context(), accountID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountView(account), "Profile updated successfully")
}

// ChangePassword handles the request to change the current account's password.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	accountID, ok := authenticatedAccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid account ID in token")
	}

	var input *usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil || input == nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}

	if err := h.uc.ChangePassword(c.Request().Context(), accountID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

// authenticatedAccountID reads the account ID set by the auth middleware.
func authenticatedAccountID(c echo.Context) (uuid.UUID, bool) {
	accountID, ok := c.Get(middleware.ContextKeyAccountID).(uuid.UUID)

	return accountID, ok
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
