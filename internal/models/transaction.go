package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of a transaction header.
// Its journal entries live in their own table and are loaded separately.
type Transaction struct {
	TransactionID int64     `db:"transaction_id"`
	Date          time.Time `db:"transaction_date"`
	Description   string    `db:"description"`
	Reference     *string   `db:"reference"` // Nullable
	Status        string    `db:"status"`
	AuditFields
}

// JournalEntry is the database representation of one entry line. Rows are
// owned by their transaction and replaced wholesale on update.
type JournalEntry struct {
	EntryID       int64           `db:"entry_id"`
	TransactionID int64           `db:"transaction_id"`
	AccountID     int64           `db:"account_id"`
	AccountCode   string          `db:"account_code"` // Denormalized for display
	AccountName   string          `db:"account_name"` // Denormalized for display
	EntryType     string          `db:"entry_type"`
	Amount        decimal.Decimal `db:"amount"`
	Description   *string         `db:"description"` // Nullable
}
