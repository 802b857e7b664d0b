package repositories

import (
	"context"
	"time"

	"github.com/ledgerbook/ledgerbook_backend/internal/core/domain"
)

// PageRequest selects one page of a listing. Page is zero-based.
type PageRequest struct {
	Page int
	Size int
}

// Offset returns the row offset for the request.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// TransactionPage is one page of transactions plus the total row count needed
// to compute page metadata.
type TransactionPage struct {
	Transactions []domain.Transaction
	TotalCount   int64
	Page         int
	Size         int
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its entries.
	FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)

	// FindTransactionsByAccountID retrieves every transaction that references
	// the account in any of its entries.
	FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error)

	// FindTransactionsByDateRange retrieves one page of transactions whose
	// date lies in [start, end], both inclusive.
	FindTransactionsByDateRange(ctx context.Context, start, end time.Time, page PageRequest) (*TransactionPage, error)

	// FindAllTransactions retrieves one page of all transactions, cancelled
	// ones included.
	FindAllTransactions(ctx context.Context, page PageRequest) (*TransactionPage, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction persists the transaction and its entries, returning the
	// stored value. A zero identifier means a new record; the store assigns
	// the identifier. Saving an existing identifier wholesale-replaces its
	// entry set.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and its entries. Absent IDs are
	// a no-op.
	DeleteTransaction(ctx context.Context, transactionID int64) error
}

// TransactionRepository combines all transaction store operations.
type TransactionRepository interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepository with an atomic
// unit of work. Implementations without native transactions may run fn
// directly.
type TransactionRepositoryWithTx interface {
	TransactionRepository

	// WithTx runs fn against a repository bound to a single storage
	// transaction, committing when fn returns nil and rolling back otherwise.
	WithTx(ctx context.Context, fn func(repo TransactionRepository) error) error
}
