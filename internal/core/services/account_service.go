package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerbook/ledgerbook_backend/internal/apperrors"
	"github.com/ledgerbook/ledgerbook_backend/internal/core/domain"
	portsrepo "github.com/ledgerbook/ledgerbook_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerbook/ledgerbook_backend/internal/core/ports/services"
	"github.com/ledgerbook/ledgerbook_backend/internal/dto"
	"github.com/ledgerbook/ledgerbook_backend/internal/middleware"
)

var (
	ErrDuplicateCode     = fmt.Errorf("%w: account code already registered", apperrors.ErrDuplicate)
	ErrParentNotFound    = fmt.Errorf("%w: parent account does not exist", apperrors.ErrNotFound)
	ErrInactiveParent    = fmt.Errorf("%w: parent account is inactive", apperrors.ErrValidation)
	ErrSelfParent        = fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrValidation)
	ErrHasActiveChildren = fmt.Errorf("%w: account has child accounts and cannot be deactivated", apperrors.ErrConflict)
)

// accountService implements the account registry: creation, renaming,
// re-parenting and deactivation of chart-of-accounts entries.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account registry service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// validateParent ensures a referenced parent account exists and is active.
func (s *accountService) validateParent(ctx context.Context, parentID int64) error {
	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: ID %d", ErrParentNotFound, parentID)
		}
		return fmt.Errorf("failed to resolve parent account %d: %w", parentID, err)
	}
	if !parent.IsActive {
		return fmt.Errorf("%w: ID %d", ErrInactiveParent, parentID)
	}
	return nil
}

// CreateAccount registers a new account after enforcing code uniqueness and
// the active-parent rule.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	exists, err := s.accountRepo.ExistsAccountByCode(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to check account code uniqueness", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to check account code %q: %w", req.Code, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: code %q", ErrDuplicateCode, req.Code)
	}

	if req.ParentAccountID != nil {
		if err := s.validateParent(ctx, *req.ParentAccountID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: req.ParentAccountID,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	saved, err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.Int64("account_id", saved.AccountID), slog.String("code", saved.Code))
	return saved, nil
}

// UpdateAccount renames or re-parents an existing account. Code and type are
// immutable and not accepted as inputs.
func (s *accountService) UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account for update", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		}
		return nil, err
	}

	if req.ParentAccountID != nil {
		if *req.ParentAccountID == accountID {
			return nil, fmt.Errorf("%w: ID %d", ErrSelfParent, accountID)
		}
		if err := s.validateParent(ctx, *req.ParentAccountID); err != nil {
			return nil, err
		}
	}

	updated := *account
	updated.Name = req.Name
	updated.ParentAccountID = req.ParentAccountID
	updated.LastUpdatedAt = time.Now().UTC()

	saved, err := s.accountRepo.SaveAccount(ctx, updated)
	if err != nil {
		logger.Error("Failed to save account update", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		return nil, fmt.Errorf("failed to save account update: %w", err)
	}

	logger.Info("Account updated", slog.Int64("account_id", saved.AccountID))
	return saved, nil
}

// DeactivateAccount flips the account inactive. Any account referencing this
// one as its parent blocks the deactivation, whether that child is active or
// not. The record itself is never deleted.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account for deactivation", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		}
		return nil, err
	}

	children, err := s.accountRepo.FindAccountsByParentID(ctx, accountID)
	if err != nil {
		logger.Error("Failed to list child accounts", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		return nil, fmt.Errorf("failed to list child accounts of %d: %w", accountID, err)
	}
	if len(children) > 0 {
		return nil, fmt.Errorf("%w: %d child account(s)", ErrHasActiveChildren, len(children))
	}

	deactivated := *account
	deactivated.IsActive = false
	deactivated.LastUpdatedAt = time.Now().UTC()

	saved, err := s.accountRepo.SaveAccount(ctx, deactivated)
	if err != nil {
		logger.Error("Failed to save account deactivation", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		return nil, fmt.Errorf("failed to save account deactivation: %w", err)
	}

	logger.Info("Account deactivated", slog.Int64("account_id", saved.AccountID))
	return saved, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccountsByType retrieves all accounts of the given type.
func (s *accountService) ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.FindAccountsByType(ctx, accountType)
	if err != nil {
		logger.Error("Failed to list accounts by type", slog.String("error", err.Error()), slog.String("account_type", string(accountType)))
		return nil, fmt.Errorf("failed to list accounts by type %s: %w", accountType, err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// ListActiveAccounts retrieves every account whose active flag is set.
func (s *accountService) ListActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.FindAllActiveAccounts(ctx)
	if err != nil {
		logger.Error("Failed to list active accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list active accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}
