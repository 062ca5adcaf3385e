// Package usecase provides testify mocks for the usecase interfaces.
package usecase

import (
	"context"
	"testing"

	"passport/internal/domain/entity"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAccountUsecase is a mock implementation of usecase.AccountUsecase.
type MockAccountUsecase struct {
	mock.Mock
}

// NewMockAccountUsecase creates a new mock bound to the test's lifecycle.
func NewMockAccountUsecase(t *testing.T) *MockAccountUsecase {
	m := &MockAccountUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountUsecase) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.SignupOutput), args.Error(1)
}

func (m *MockAccountUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

func (m *MockAccountUsecase) GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountUsecase) UpdateProfile(ctx context.Context, accountID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.Account, error) {
	args := m.Called(ctx, accountID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountUsecase) ChangePassword(ctx context.Context, accountID uuid.UUID, input *usecase.ChangePasswordInput) error {
	args := m.Called(ctx, accountID, input)

	return args.Error(0)
}
