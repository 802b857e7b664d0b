package repositories

import (
	"context"

	"github.com/ledgerbook/ledgerbook_backend/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByType retrieves all accounts of the given type.
	FindAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)

	// FindAllActiveAccounts retrieves every account whose active flag is set.
	FindAllActiveAccounts(ctx context.Context) ([]domain.Account, error)

	// FindAccountsByParentID retrieves all accounts referencing the given
	// account as their parent, regardless of their own active flag.
	FindAccountsByParentID(ctx context.Context, parentID int64) ([]domain.Account, error)

	// ExistsAccountByCode reports whether an account with the code exists.
	ExistsAccountByCode(ctx context.Context, code string) (bool, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists the account and returns the stored value. A zero
	// identifier means a new record; the store assigns the identifier.
	SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// DeleteAccount removes an account record. Absent IDs are a no-op.
	DeleteAccount(ctx context.Context, accountID int64) error
}

// AccountRepository combines all account store operations.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
