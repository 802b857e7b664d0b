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
	ErrAccountNotFound       = fmt.Errorf("%w: account does not exist", apperrors.ErrNotFound)
	ErrInactiveAccount       = fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
	ErrTransactionNotPending = fmt.Errorf("%w: only pending transactions can be updated", apperrors.ErrConflict)
	ErrAlreadyCancelled      = fmt.Errorf("%w: transaction is already cancelled", apperrors.ErrConflict)
)

// cancelMarker prefixes descriptions generated by a cancellation.
const cancelMarker = "Cancelled: "

const defaultPageSize = 20

// transactionService implements the ledger transaction engine: creation,
// wholesale update and cancellation-with-reversal of balanced transactions.
type transactionService struct {
	txnRepo     portsrepo.TransactionRepository
	accountRepo portsrepo.AccountReader
}

// NewTransactionService creates a new ledger transaction engine.
func NewTransactionService(txnRepo portsrepo.TransactionRepository, accountRepo portsrepo.AccountReader) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// resolveEntries turns entry requests into validated journal entries,
// resolving each account through the account port. Every referenced account
// must exist and be active.
func (s *transactionService) resolveEntries(ctx context.Context, reqs []dto.JournalEntryRequest) ([]domain.JournalEntry, error) {
	entries := make([]domain.JournalEntry, len(reqs))
	for i, req := range reqs {
		account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %d", ErrAccountNotFound, req.AccountID)
			}
			return nil, fmt.Errorf("failed to resolve account %d: %w", req.AccountID, err)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: %s (%s)", ErrInactiveAccount, account.Name, account.Code)
		}

		entry, err := domain.NewJournalEntry(*account, req.EntryType, req.Amount, req.Description)
		if err != nil {
			return nil, err
		}
		entries[i] = entry
	}
	return entries, nil
}

// CreateTransaction validates and persists a new transaction in the pending
// state. The balance invariant is enforced by the domain constructor.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := s.resolveEntries(ctx, req.Entries)
	if err != nil {
		return nil, err
	}

	txn, err := domain.NewTransaction(req.Date, req.Description, req.Reference, entries, domain.Pending, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	saved, err := s.txnRepo.SaveTransaction(ctx, txn)
	if err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction created", slog.Int64("transaction_id", saved.TransactionID), slog.String("total", saved.TotalAmount().String()))
	return saved, nil
}

// UpdateTransaction wholesale-replaces the content of a pending transaction.
// Entries are re-resolved and re-validated exactly as in creation.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction for update", slog.String("error", err.Error()), slog.Int64("transaction_id", transactionID))
		}
		return nil, err
	}

	if !existing.IsModifiable() {
		return nil, fmt.Errorf("%w: status is %s", ErrTransactionNotPending, existing.Status)
	}

	entries, err := s.resolveEntries(ctx, req.Entries)
	if err != nil {
		return nil, err
	}

	updated, err := domain.NewTransaction(req.Date, req.Description, req.Reference, entries, existing.Status, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	updated.TransactionID = existing.TransactionID
	updated.CreatedAt = existing.CreatedAt

	saved, err := s.txnRepo.SaveTransaction(ctx, updated)
	if err != nil {
		logger.Error("Failed to save transaction update", slog.String("error", err.Error()), slog.Int64("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to save transaction update: %w", err)
	}

	logger.Info("Transaction updated", slog.Int64("transaction_id", saved.TransactionID))
	return saved, nil
}

// CancelTransaction marks the original transaction cancelled and persists a
// reversal carrying the same entries with flipped directions. When the store
// supports it, both writes run in one unit of work; otherwise a failure
// between them leaves a cancelled original without a reversal, which must be
// remediated operationally.
func (s *transactionService) CancelTransaction(ctx context.Context, transactionID int64, cancelReason string) (*portssvc.CancelTransactionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction for cancellation", slog.String("error", err.Error()), slog.Int64("transaction_id", transactionID))
		}
		return nil, err
	}

	if original.Status == domain.Cancelled {
		return nil, fmt.Errorf("%w: ID %d", ErrAlreadyCancelled, transactionID)
	}

	now := time.Now().UTC()
	cancelled := original.Cancelled(now)

	reversalEntries := make([]domain.JournalEntry, len(original.Entries))
	for i, entry := range original.Entries {
		reversed := entry.Reversed()
		reversed.Description = cancelMarker + entry.Description
		reversalEntries[i] = reversed
	}

	// The reversal represents an already-settled correction, so it is created
	// approved rather than pending, keeps the original date, and links back
	// through its reference.
	reversal, err := domain.NewTransaction(
		original.Date,
		cancelMarker+original.Description,
		fmt.Sprintf("CANCEL-%d", original.TransactionID),
		reversalEntries,
		domain.Approved,
		now,
	)
	if err != nil {
		logger.Error("Failed to construct reversal transaction", slog.String("error", err.Error()), slog.Int64("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to construct reversal: %w", err)
	}

	var savedOriginal, savedReversal *domain.Transaction
	writes := func(repo portsrepo.TransactionRepository) error {
		var werr error
		savedOriginal, werr = repo.SaveTransaction(ctx, cancelled)
		if werr != nil {
			return fmt.Errorf("failed to save cancelled transaction: %w", werr)
		}
		savedReversal, werr = repo.SaveTransaction(ctx, reversal)
		if werr != nil {
			return fmt.Errorf("failed to save reversal transaction: %w", werr)
		}
		return nil
	}

	if txRepo, ok := s.txnRepo.(portsrepo.TransactionRepositoryWithTx); ok {
		err = txRepo.WithTx(ctx, writes)
	} else {
		err = writes(s.txnRepo)
	}
	if err != nil {
		logger.Error("Failed to persist cancellation", slog.String("error", err.Error()), slog.Int64("transaction_id", transactionID))
		return nil, err
	}

	logger.Info("Transaction cancelled",
		slog.Int64("transaction_id", savedOriginal.TransactionID),
		slog.Int64("reversal_id", savedReversal.TransactionID))
	return &portssvc.CancelTransactionResult{
		OriginalTransaction: *savedOriginal,
		ReversalTransaction: *savedReversal,
		CancelReason:        cancelReason,
	}, nil
}

// GetTransactionByID retrieves a transaction with its entries.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction by ID", slog.String("error", err.Error()), slog.Int64("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactions retrieves one page of transactions. When both dates are
// given the listing is restricted to the inclusive range; otherwise all
// transactions are returned, cancelled ones included.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*portsrepo.TransactionPage, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	page := portsrepo.PageRequest{Page: params.Page, Size: params.Size}
	if page.Size <= 0 {
		page.Size = defaultPageSize
	}
	if page.Page < 0 {
		page.Page = 0
	}

	var (
		result *portsrepo.TransactionPage
		err    error
	)
	if params.StartDate != nil && params.EndDate != nil {
		result, err = s.txnRepo.FindTransactionsByDateRange(ctx, *params.StartDate, *params.EndDate, page)
	} else {
		result, err = s.txnRepo.FindAllTransactions(ctx, page)
	}
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return result, nil
}
