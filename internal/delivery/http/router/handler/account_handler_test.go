package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"passport/internal/delivery/http/middleware"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	mockUsecase "passport/internal/mocks/usecase"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*AccountHandler, *mockUsecase.MockAccountUsecase) {
	uc := mockUsecase.NewMockAccountUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAccountHandler(uc, logger), uc
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func testAccount() *entity.Account {
	now := time.Now().UTC()

	return &entity.Account{
		ID:           uuid.New(),
		Email:        "test@example.com",
		Name:         "Test Account",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestAccountHandler_Signup_Created(t *testing.T) {
	h, uc := newTestHandler(t)

	account := testAccount()
	uc.On("Signup", mock.Anything, mock.AnythingOfType("*usecase.SignupInput")).
		Return(&usecase.SignupOutput{Account: account}, nil)

	body := `{"name":"Test Account","email":"test@example.com","password":"Str0ngP@ss","confirmPassword":"Str0ngP@ss"}`
	c, rec := newJSONContext(http.MethodPost, "/signup", body)

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// The password hash must never appear in the response body.
	assert.Contains(t, rec.Body.String(), account.ID.String())
	assert.NotContains(t, rec.Body.String(), account.PasswordHash)
}

func TestAccountHandler_EmptyBodyIsBadRequest(t *testing.T) {
	// An empty body binds to a nil input without an error; every mutating
	// handler must answer 400 instead of reaching the usecase with nil.
	h, _ := newTestHandler(t)
	accountID := uuid.New()

	testCases := []struct {
		name   string
		invoke func(c echo.Context) error
		method string
		target string
	}{
		{"signup", h.Signup, http.MethodPost, "/signup"},
		{"login", h.Login, http.MethodPost, "/login"},
		{"update profile", h.UpdateProfile, http.MethodPut, "/profile"},
		{"change password", h.ChangePassword, http.MethodPut, "/change-password"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(tc.method, tc.target, "")
			c.Set(middleware.ContextKeyAccountID, accountID)

			require.NoError(t, tc.invoke(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
		})
	}
}

func TestAccountHandler_Signup_InvalidJSON(t *testing.T) {
	h, _ := newTestHandler(t)

	c, rec := newJSONContext(http.MethodPost, "/signup", `{"name":`)

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

func TestAccountHandler_Signup_UsecaseErrorPropagates(t *testing.T) {
	h, uc := newTestHandler(t)

	uc.On("Signup", mock.Anything, mock.AnythingOfType("*usecase.SignupInput")).
		Return(nil, domainerrors.ErrEmailTaken)

	body := `{"name":"Test Account","email":"test@example.com","password":"Str0ngP@ss","confirmPassword":"Str0ngP@ss"}`
	c, _ := newJSONContext(http.MethodPost, "/signup", body)

	err := h.Signup(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "EMAIL_TAKEN", appErr.ErrorCode())
}

func TestAccountHandler_Login_ReturnsTokenAndAccount(t *testing.T) {
	h, uc := newTestHandler(t)

	account := testAccount()
	uc.On("Login", mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(&usecase.LoginOutput{Token: "signed-token", Account: account}, nil)

	c, rec := newJSONContext(http.MethodPost, "/login", `{"email":"test@example.com","password":"Str0ngP@ss"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "signed-token")
	assert.NotContains(t, rec.Body.String(), account.PasswordHash)
}

func TestAccountHandler_GetProfile_Success(t *testing.T) {
	h, uc := newTestHandler(t)

	account := testAccount()
	uc.On("GetProfile", mock.Anything, account.ID).Return(account, nil)

	c, rec := newJSONContext(http.MethodGet, "/profile", "")
	c.Set(middleware.ContextKeyAccountID, account.ID)

	require.NoError(t, h.GetProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), account.Email)
	assert.NotContains(t, rec.Body.String(), account.PasswordHash)
}

func TestAccountHandler_GetProfile_MissingIdentity(t *testing.T) {
	h, _ := newTestHandler(t)

	c, rec := newJSONContext(http.MethodGet, "/profile", "")

	require.NoError(t, h.GetProfile(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccountHandler_UpdateProfile_Success(t *testing.T) {
	h, uc := newTestHandler(t)

	account := testAccount()
	account.Name = "Renamed"
	uc.On("UpdateProfile", mock.Anything, account.ID, mock.AnythingOfType("*usecase.UpdateProfileInput")).
		Return(account, nil)

	c, rec := newJSONContext(http.MethodPut, "/profile", `{"name":"Renamed","email":"test@example.com"}`)
	c.Set(middleware.ContextKeyAccountID, account.ID)

	require.NoError(t, h.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Renamed")
}

func TestAccountHandler_ChangePassword_Success(t *testing.T) {
	h, uc := newTestHandler(t)

	accountID := uuid.New()
	uc.On("ChangePassword", mock.Anything, accountID, mock.AnythingOfType("*usecase.ChangePasswordInput")).
		Return(nil)

	body := `{"oldPassword":"OldP@ss1","newPassword":"NewP@ss1","confirmNewPassword":"NewP@ss1"}`
	c, rec := newJSONContext(http.MethodPut, "/change-password", body)
	c.Set(middleware.ContextKeyAccountID, accountID)

	require.NoError(t, h.ChangePassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The envelope's message is the only confirmation; no data payload.
	assert.Contains(t, rec.Body.String(), "Password changed successfully")
	assert.NotContains(t, rec.Body.String(), `"data"`)
}

func TestHealthCheck(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
