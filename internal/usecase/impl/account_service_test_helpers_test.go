package impl

import (
	"testing"
	"time"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func existingAccount(email string) *entity.Account {
	now := time.Now().UTC()

	return &entity.Account{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Existing Account",
		PasswordHash: "$2a$10$existinghash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.ErrorCode())
}
