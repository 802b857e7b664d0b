package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerbook/ledgerbook_backend/internal/apperrors"
	"github.com/ledgerbook/ledgerbook_backend/internal/core/domain"
	portsrepo "github.com/ledgerbook/ledgerbook_backend/internal/core/ports/repositories"
	"github.com/ledgerbook/ledgerbook_backend/internal/models"
	"github.com/ledgerbook/ledgerbook_backend/internal/utils/mapping"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

const accountColumns = "account_id, code, name, account_type, parent_account_id, is_active, created_at, last_updated_at"

type accountRepository struct {
	db Querier
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &accountRepository{db: pool}
}

var _ portsrepo.AccountRepository = (*accountRepository)(nil)

// SaveAccount inserts a new account or updates an existing one. A zero
// identifier marks a new record; the database assigns the identifier.
func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)

	if m.AccountID == 0 {
		query := `
			INSERT INTO accounts (code, name, account_type, parent_account_id, is_active, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING account_id;
		`
		err := r.db.QueryRow(ctx, query,
			m.Code,
			m.Name,
			m.AccountType,
			m.ParentAccountID,
			m.IsActive,
			m.CreatedAt,
			m.LastUpdatedAt,
		).Scan(&m.AccountID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return nil, fmt.Errorf("%w: account code %q", apperrors.ErrDuplicate, m.Code)
			}
			return nil, fmt.Errorf("failed to insert account %q: %w", m.Code, err)
		}
	} else {
		query := `
			UPDATE accounts
			SET name = $1, parent_account_id = $2, is_active = $3, last_updated_at = $4
			WHERE account_id = $5;
		`
		tag, err := r.db.Exec(ctx, query,
			m.Name,
			m.ParentAccountID,
			m.IsActive,
			m.LastUpdatedAt,
			m.AccountID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update account %d: %w", m.AccountID, err)
		}
		if tag.RowsAffected() == 0 {
			return nil, apperrors.ErrNotFound
		}
	}

	saved := mapping.ToDomainAccount(m)
	return &saved, nil
}

// FindAccountByID retrieves an account by its identifier.
func (r *accountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := fmt.Sprintf("SELECT %s FROM accounts WHERE account_id = $1;", accountColumns)
	return r.scanAccountRow(r.db.QueryRow(ctx, query, accountID), fmt.Sprintf("ID %d", accountID))
}

// FindAccountByCode retrieves an account by its unique code.
func (r *accountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := fmt.Sprintf("SELECT %s FROM accounts WHERE code = $1;", accountColumns)
	return r.scanAccountRow(r.db.QueryRow(ctx, query, code), fmt.Sprintf("code %q", code))
}

// FindAccountsByType retrieves all accounts of the given type, ordered by code.
func (r *accountRepository) FindAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	query := fmt.Sprintf("SELECT %s FROM accounts WHERE account_type = $1 ORDER BY code;", accountColumns)
	rows, err := r.db.Query(ctx, query, string(accountType))
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by type %s: %w", accountType, err)
	}
	return r.collectAccounts(rows)
}

// FindAllActiveAccounts retrieves every account whose active flag is set,
// ordered by code.
func (r *accountRepository) FindAllActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	query := fmt.Sprintf("SELECT %s FROM accounts WHERE is_active ORDER BY code;", accountColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active accounts: %w", err)
	}
	return r.collectAccounts(rows)
}

// FindAccountsByParentID retrieves all accounts referencing the given parent,
// active or not.
func (r *accountRepository) FindAccountsByParentID(ctx context.Context, parentID int64) ([]domain.Account, error) {
	query := fmt.Sprintf("SELECT %s FROM accounts WHERE parent_account_id = $1 ORDER BY code;", accountColumns)
	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by parent %d: %w", parentID, err)
	}
	return r.collectAccounts(rows)
}

// ExistsAccountByCode reports whether an account with the code exists.
func (r *accountRepository) ExistsAccountByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM accounts WHERE code = $1);", code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account code %q: %w", code, err)
	}
	return exists, nil
}

// DeleteAccount removes an account record. Deleting an absent ID is a no-op.
func (r *accountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM accounts WHERE account_id = $1;", accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %d: %w", accountID, err)
	}
	return nil
}

func (r *accountRepository) scanAccountRow(row pgx.Row, what string) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.ParentAccountID,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by %s: %w", what, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r *accountRepository) collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()

	ms := []models.Account{}
	for rows.Next() {
		var m models.Account
		err := rows.Scan(
			&m.AccountID,
			&m.Code,
			&m.Name,
			&m.AccountType,
			&m.ParentAccountID,
			&m.IsActive,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}
