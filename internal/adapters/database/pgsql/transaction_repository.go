package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerbook/ledgerbook_backend/internal/apperrors"
	"github.com/ledgerbook/ledgerbook_backend/internal/core/domain"
	portsrepo "github.com/ledgerbook/ledgerbook_backend/internal/core/ports/repositories"
	"github.com/ledgerbook/ledgerbook_backend/internal/models"
	"github.com/ledgerbook/ledgerbook_backend/internal/utils/mapping"
)

const transactionColumns = "transaction_id, transaction_date, description, reference, status, created_at, last_updated_at"

const entryColumns = "entry_id, transaction_id, account_id, account_code, account_name, entry_type, amount, description"

type transactionRepository struct {
	db Querier
}

// NewTransactionRepository creates a new repository for transaction and
// journal entry data.
func NewTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &transactionRepository{db: pool}
}

var _ portsrepo.TransactionRepositoryWithTx = (*transactionRepository)(nil)

// WithTx runs fn against a repository bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (r *transactionRepository) WithTx(ctx context.Context, fn func(repo portsrepo.TransactionRepository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(&transactionRepository{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SaveTransaction persists the header and its entries atomically. Saving an
// existing identifier wholesale-replaces the entry set.
func (r *transactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	m := mapping.ToModelTransaction(txn)

	if m.TransactionID == 0 {
		headerQuery := `
			INSERT INTO transactions (transaction_date, description, reference, status, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING transaction_id;
		`
		err = tx.QueryRow(ctx, headerQuery,
			m.Date,
			m.Description,
			m.Reference,
			m.Status,
			m.CreatedAt,
			m.LastUpdatedAt,
		).Scan(&m.TransactionID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert transaction: %w", err)
		}
	} else {
		headerQuery := `
			UPDATE transactions
			SET transaction_date = $1, description = $2, reference = $3, status = $4, last_updated_at = $5
			WHERE transaction_id = $6;
		`
		tag, err := tx.Exec(ctx, headerQuery,
			m.Date,
			m.Description,
			m.Reference,
			m.Status,
			m.LastUpdatedAt,
			m.TransactionID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update transaction %d: %w", m.TransactionID, err)
		}
		if tag.RowsAffected() == 0 {
			return nil, apperrors.ErrNotFound
		}
		if _, err := tx.Exec(ctx, "DELETE FROM journal_entries WHERE transaction_id = $1;", m.TransactionID); err != nil {
			return nil, fmt.Errorf("failed to clear entries of transaction %d: %w", m.TransactionID, err)
		}
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO journal_entries (transaction_id, account_id, account_code, account_name, entry_type, amount, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, e := range mapping.ToModelJournalEntries(m.TransactionID, txn.Entries) {
		batch.Queue(entryQuery,
			e.TransactionID,
			e.AccountID,
			e.AccountCode,
			e.AccountName,
			e.EntryType,
			e.Amount,
			e.Description,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("failed to insert entries of transaction %d: %w", m.TransactionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction %d: %w", m.TransactionID, err)
	}

	saved := txn
	saved.TransactionID = m.TransactionID
	return &saved, nil
}

// FindTransactionByID retrieves a transaction with its entries.
func (r *transactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	query := fmt.Sprintf("SELECT %s FROM transactions WHERE transaction_id = $1;", transactionColumns)

	var m models.Transaction
	err := r.db.QueryRow(ctx, query, transactionID).Scan(
		&m.TransactionID,
		&m.Date,
		&m.Description,
		&m.Reference,
		&m.Status,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %d: %w", transactionID, err)
	}

	entriesByTxn, err := r.loadEntries(ctx, []int64{m.TransactionID})
	if err != nil {
		return nil, err
	}

	txn := mapping.ToDomainTransaction(m, entriesByTxn[m.TransactionID])
	return &txn, nil
}

// FindTransactionsByAccountID retrieves every transaction that references the
// account in any of its entries, newest first.
func (r *transactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM transactions
		WHERE transaction_id IN (SELECT DISTINCT transaction_id FROM journal_entries WHERE account_id = $1)
		ORDER BY transaction_date DESC, transaction_id DESC;
	`, transactionColumns)

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by account %d: %w", accountID, err)
	}
	headers, err := collectTransactionHeaders(rows)
	if err != nil {
		return nil, err
	}
	return r.attachEntries(ctx, headers)
}

// FindTransactionsByDateRange retrieves one page of transactions whose date
// lies in [start, end], both inclusive, newest first.
func (r *transactionRepository) FindTransactionsByDateRange(ctx context.Context, start, end time.Time, page portsrepo.PageRequest) (*portsrepo.TransactionPage, error) {
	countQuery := "SELECT COUNT(*) FROM transactions WHERE transaction_date BETWEEN $1 AND $2;"
	listQuery := fmt.Sprintf(`
		SELECT %s FROM transactions
		WHERE transaction_date BETWEEN $1 AND $2
		ORDER BY transaction_date DESC, transaction_id DESC
		LIMIT $3 OFFSET $4;
	`, transactionColumns)

	return r.pagedQuery(ctx, page,
		countQuery, []any{start, end},
		listQuery, []any{start, end, page.Size, page.Offset()},
	)
}

// FindAllTransactions retrieves one page of all transactions, cancelled ones
// included, newest first.
func (r *transactionRepository) FindAllTransactions(ctx context.Context, page portsrepo.PageRequest) (*portsrepo.TransactionPage, error) {
	countQuery := "SELECT COUNT(*) FROM transactions;"
	listQuery := fmt.Sprintf(`
		SELECT %s FROM transactions
		ORDER BY transaction_date DESC, transaction_id DESC
		LIMIT $1 OFFSET $2;
	`, transactionColumns)

	return r.pagedQuery(ctx, page,
		countQuery, nil,
		listQuery, []any{page.Size, page.Offset()},
	)
}

// DeleteTransaction removes a transaction; its entries cascade. Deleting an
// absent ID is a no-op.
func (r *transactionRepository) DeleteTransaction(ctx context.Context, transactionID int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM transactions WHERE transaction_id = $1;", transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", transactionID, err)
	}
	return nil
}

func (r *transactionRepository) pagedQuery(ctx context.Context, page portsrepo.PageRequest, countQuery string, countArgs []any, listQuery string, listArgs []any) (*portsrepo.TransactionPage, error) {
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	rows, err := r.db.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	headers, err := collectTransactionHeaders(rows)
	if err != nil {
		return nil, err
	}

	txns, err := r.attachEntries(ctx, headers)
	if err != nil {
		return nil, err
	}

	return &portsrepo.TransactionPage{
		Transactions: txns,
		TotalCount:   total,
		Page:         page.Page,
		Size:         page.Size,
	}, nil
}

// loadEntries fetches the entry rows for the given transaction identifiers,
// grouped by transaction and ordered by insertion.
func (r *transactionRepository) loadEntries(ctx context.Context, transactionIDs []int64) (map[int64][]models.JournalEntry, error) {
	grouped := make(map[int64][]models.JournalEntry, len(transactionIDs))
	if len(transactionIDs) == 0 {
		return grouped, nil
	}

	query := fmt.Sprintf("SELECT %s FROM journal_entries WHERE transaction_id = ANY($1) ORDER BY entry_id;", entryColumns)
	rows, err := r.db.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.JournalEntry
		err := rows.Scan(
			&e.EntryID,
			&e.TransactionID,
			&e.AccountID,
			&e.AccountCode,
			&e.AccountName,
			&e.EntryType,
			&e.Amount,
			&e.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		grouped[e.TransactionID] = append(grouped[e.TransactionID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal entry rows: %w", err)
	}
	return grouped, nil
}

func (r *transactionRepository) attachEntries(ctx context.Context, headers []models.Transaction) ([]domain.Transaction, error) {
	ids := make([]int64, len(headers))
	for i, h := range headers {
		ids[i] = h.TransactionID
	}
	entriesByTxn, err := r.loadEntries(ctx, ids)
	if err != nil {
		return nil, err
	}

	txns := make([]domain.Transaction, len(headers))
	for i, h := range headers {
		txns[i] = mapping.ToDomainTransaction(h, entriesByTxn[h.TransactionID])
	}
	return txns, nil
}

func collectTransactionHeaders(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()

	headers := []models.Transaction{}
	for rows.Next() {
		var m models.Transaction
		err := rows.Scan(
			&m.TransactionID,
			&m.Date,
			&m.Description,
			&m.Reference,
			&m.Status,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transaction rows: %w", err)
	}
	return headers, nil
}
