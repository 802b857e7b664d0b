package services

import (
	"context"

	"github.com/ledgerbook/ledgerbook_backend/internal/core/domain"
	"github.com/ledgerbook/ledgerbook_backend/internal/dto"
)

// AccountSvcFacade is the use-case interface for the account registry,
// consumed by the presentation layer.
type AccountSvcFacade interface {
	// CreateAccount registers a new account. The code must be unique and the
	// optional parent must exist and be active.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount renames or re-parents an account. Code and type are
	// immutable after creation.
	UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeactivateAccount flips the account inactive. Blocked while any account
	// references it as parent.
	DeactivateAccount(ctx context.Context, accountID int64) (*domain.Account, error)

	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// ListAccountsByType retrieves all accounts of one type.
	ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)

	// ListActiveAccounts retrieves all active accounts.
	ListActiveAccounts(ctx context.Context) ([]domain.Account, error)
}
