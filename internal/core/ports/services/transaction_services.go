package services

import (
	"context"

	"github.com/ledgerbook/ledgerbook_backend/internal/core/domain"
	portsrepo "github.com/ledgerbook/ledgerbook_backend/internal/core/ports/repositories"
	"github.com/ledgerbook/ledgerbook_backend/internal/dto"
)

// CancelTransactionResult carries both sides of a cancellation: the original
// transaction in its terminal state and the generated reversal.
type CancelTransactionResult struct {
	OriginalTransaction domain.Transaction
	ReversalTransaction domain.Transaction
	CancelReason        string
}

// TransactionSvcFacade is the use-case interface for the ledger transaction
// engine, consumed by the presentation layer.
type TransactionSvcFacade interface {
	// CreateTransaction validates and persists a new pending transaction.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction wholesale-replaces a pending transaction's content.
	UpdateTransaction(ctx context.Context, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// CancelTransaction marks the transaction cancelled and persists a
	// reversal with flipped entries.
	CancelTransaction(ctx context.Context, transactionID int64, cancelReason string) (*CancelTransactionResult, error)

	// GetTransactionByID retrieves a transaction with its entries.
	GetTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)

	// ListTransactions retrieves one page of transactions, optionally
	// filtered by an inclusive date range.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*portsrepo.TransactionPage, error)
}
