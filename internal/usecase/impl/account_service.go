// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// minNewPasswordLength is the floor applied on password change. Signup applies
// the full strength policy instead.
const minNewPasswordLength = 6

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup orchestrates the complete account registration process.
func (srv *accountService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	email := entity.CanonicalEmail(input.Email)

	if input.Name == "" || email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("all fields are required")
	}
	if input.Password != input.ConfirmPassword {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("passwords do not match")
	}

	if err := srv.hasher.ValidateStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password rejected by strength policy", slog.String("email", email), slog.Any("error", err))

		return nil, domainerrors.ErrWeakPassword.WrapMessage("password does not meet security requirements")
	}

	// Hash outside the transaction (bcrypt is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during signup")
	}

	newAccount := &entity.Account{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		// Advisory pre-check for a friendly error; the unique constraint at
		// insert time remains the authoritative decision.
		_, err := accountRepo.FindByEmail(ctx, email)
		if err == nil {
			return domainerrors.ErrEmailTaken.WrapMessage("signup failed")
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.NewDatabaseExecuteError(err, "failed to check email availability")
		}

		if err := accountRepo.Create(ctx, newAccount); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return domainerrors.ErrEmailTaken.WrapMessage("signup failed")
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute signup transaction")
	}

	srv.log(ctx).Debug("Account registered successfully", slog.Any("accountID", newAccount.ID))

	return &usecase.SignupOutput{Account: newAccount}, nil
}

// Login orchestrates the account login process.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := entity.CanonicalEmail(input.Email)

	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("email and password are required")
	}

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		// A missing account and a wrong password are deliberately the same
		// outcome, so responses never reveal which field was wrong.
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account by email")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.tokenService.Issue(account.ID, account.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("Account logged in successfully", slog.Any("accountID", account.ID))

	return &usecase.LoginOutput{Token: token, Account: account}, nil
}

// GetProfile loads the account for a validly authenticated caller.
// The read never mutates the account.
func (srv *accountService) GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		// Defensive: should not occur for a caller holding a valid token.
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("profile lookup failed")
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account by id")
	}

	return account, nil
}

// UpdateProfile applies a new display name and email to the caller's account.
func (srv *accountService) UpdateProfile(ctx context.Context, accountID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.Account, error) {
	email := entity.CanonicalEmail(input.Email)

	if input.Name == "" || email == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("name and email are required")
	}

	var updated *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("profile update failed")
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to find account by id")
		}

		// Advisory pre-check excluding the caller's own row; the unique
		// constraint at write time remains the authoritative decision.
		existing, err := accountRepo.FindByEmail(ctx, email)
		if err == nil && existing.ID != account.ID {
			return domainerrors.ErrEmailTaken.WrapMessage("profile update failed")
		}
		if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.NewDatabaseExecuteError(err, "failed to check email availability")
		}

		account.Name = input.Name
		account.Email = email

		if err := accountRepo.UpdateProfile(ctx, account); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return domainerrors.ErrEmailTaken.WrapMessage("profile update failed")
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to update account profile")
		}
		updated = account

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	srv.log(ctx).Debug("Profile updated successfully", slog.Any("accountID", accountID))

	return updated, nil
}

// ChangePassword verifies the old password and replaces the stored digest.
// Outstanding session tokens stay valid until their natural expiry; there is no
// revocation state to update.
func (srv *accountService) ChangePassword(ctx context.Context, accountID uuid.UUID, input *usecase.ChangePasswordInput) error {
	if input.OldPassword == "" || input.NewPassword == "" || input.ConfirmNewPassword == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("old password, new password and confirmation are required")
	}
	if len(input.NewPassword) < minNewPasswordLength {
		return domainerrors.ErrValidationFailed.WrapMessage("new password is too short")
	}
	if input.NewPassword != input.ConfirmNewPassword {
		return domainerrors.ErrValidationFailed.WrapMessage("new passwords do not match")
	}

	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound.WrapMessage("password change failed")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to find account by id")
	}

	if !srv.hasher.Check(input.OldPassword, account.PasswordHash) {
		srv.log(ctx).Warn("Password change rejected, old password mismatch", slog.Any("accountID", accountID))

		return domainerrors.ErrWrongOldPassword.WrapMessage("password change failed")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Any("accountID", accountID), slog.Any("error", err))

		return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash new password")
	}

	if err := srv.accountRepo.UpdatePasswordHash(ctx, account.ID, newHash); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound.WrapMessage("password change failed")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update password hash")
	}

	srv.log(ctx).Debug("Password changed successfully", slog.Any("accountID", accountID))

	return nil
}
