package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledgerbook/ledgerbook_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryType indicates whether a journal entry is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// Flipped returns the opposite entry direction.
func (t EntryType) Flipped() EntryType {
	if t == Debit {
		return Credit
	}
	return Debit
}

// TransactionStatus indicates the state of a transaction.
type TransactionStatus string

const (
	// Pending transactions may still be modified or cancelled.
	Pending TransactionStatus = "PENDING"
	// Approved transactions are settled and immutable.
	Approved TransactionStatus = "APPROVED"
	// Cancelled is terminal; a reversal carries the compensating entries.
	Cancelled TransactionStatus = "CANCELLED"
)

// Field limits enforced on construction.
const (
	MaxDescriptionLen      = 500
	MaxEntryDescriptionLen = 200
	MaxAmountScale         = 2
)

var (
	ErrDescriptionRequired     = fmt.Errorf("%w: transaction description must not be blank", apperrors.ErrValidation)
	ErrDescriptionTooLong      = fmt.Errorf("%w: transaction description exceeds %d characters", apperrors.ErrValidation, MaxDescriptionLen)
	ErrTooFewEntries           = fmt.Errorf("%w: transaction must contain at least two journal entries", apperrors.ErrValidation)
	ErrUnbalanced              = fmt.Errorf("%w: debit and credit totals do not match", apperrors.ErrValidation)
	ErrAmountNotPositive       = fmt.Errorf("%w: entry amount must be greater than zero", apperrors.ErrValidation)
	ErrAmountScaleExceeded     = fmt.Errorf("%w: entry amount allows at most %d fractional digits", apperrors.ErrValidation, MaxAmountScale)
	ErrEntryDescriptionTooLong = fmt.Errorf("%w: entry description exceeds %d characters", apperrors.ErrValidation, MaxEntryDescriptionLen)
)

// JournalEntry is one line of a transaction, assigning an amount and a
// direction to one account. It has no identity of its own; it is created and
// destroyed with its parent transaction. Account code and name are carried
// denormalized so callers can render entries without a join.
type JournalEntry struct {
	AccountID   int64           `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	EntryType   EntryType       `json:"entryType"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// NewJournalEntry builds a validated entry against the given account.
func NewJournalEntry(account Account, entryType EntryType, amount decimal.Decimal, description string) (JournalEntry, error) {
	if !amount.IsPositive() {
		return JournalEntry{}, ErrAmountNotPositive
	}
	if amount.Exponent() < -MaxAmountScale {
		return JournalEntry{}, ErrAmountScaleExceeded
	}
	if len(description) > MaxEntryDescriptionLen {
		return JournalEntry{}, ErrEntryDescriptionTooLong
	}
	return JournalEntry{
		AccountID:   account.AccountID,
		AccountCode: account.Code,
		AccountName: account.Name,
		EntryType:   entryType,
		Amount:      amount,
		Description: description,
	}, nil
}

// Reversed returns a copy of the entry with its direction flipped.
// Amount and account reference are preserved.
func (e JournalEntry) Reversed() JournalEntry {
	e.EntryType = e.EntryType.Flipped()
	return e
}

// Transaction represents a single, balanced financial event composed of two or
// more journal entries.
type Transaction struct {
	TransactionID int64             `json:"transactionID"` // Assigned by the store; zero until persisted
	Date          time.Time         `json:"date"`
	Description   string            `json:"description"`
	Reference     string            `json:"reference"`
	Status        TransactionStatus `json:"status"`
	Entries       []JournalEntry    `json:"entries"`
	AuditFields
}

// NewTransaction builds a validated transaction. The balance invariant and the
// entry minimum are checked here on every construction; callers replacing the
// entry set go through this constructor again rather than mutating in place.
func NewTransaction(date time.Time, description, reference string, entries []JournalEntry, status TransactionStatus, now time.Time) (Transaction, error) {
	if strings.TrimSpace(description) == "" {
		return Transaction{}, ErrDescriptionRequired
	}
	if len(description) > MaxDescriptionLen {
		return Transaction{}, ErrDescriptionTooLong
	}
	if len(entries) < 2 {
		return Transaction{}, ErrTooFewEntries
	}

	txn := Transaction{
		Date:        date,
		Description: description,
		Reference:   reference,
		Status:      status,
		Entries:     entries,
		AuditFields: AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if debits, credits := txn.DebitTotal(), txn.CreditTotal(); !debits.Equal(credits) {
		return Transaction{}, fmt.Errorf("%w: debit total is %s and credit total is %s", ErrUnbalanced, debits.String(), credits.String())
	}
	return txn, nil
}

// DebitTotal sums the amounts of all debit entries.
func (t Transaction) DebitTotal() decimal.Decimal {
	return t.sumByType(Debit)
}

// CreditTotal sums the amounts of all credit entries.
func (t Transaction) CreditTotal() decimal.Decimal {
	return t.sumByType(Credit)
}

// TotalAmount is the economic value of the transaction. For a balanced
// transaction both sides are equal, so the debit side is taken by convention.
func (t Transaction) TotalAmount() decimal.Decimal {
	return t.DebitTotal()
}

// IsBalanced reports whether the debit and credit totals match exactly.
func (t Transaction) IsBalanced() bool {
	return t.DebitTotal().Equal(t.CreditTotal())
}

// IsModifiable reports whether the transaction may still be replaced by an
// update. Only pending transactions are mutable.
func (t Transaction) IsModifiable() bool {
	return t.Status == Pending
}

// Cancelled returns a copy of the transaction flipped to the terminal
// cancelled status.
func (t Transaction) Cancelled(now time.Time) Transaction {
	t.Status = Cancelled
	t.LastUpdatedAt = now
	return t
}

func (t Transaction) sumByType(entryType EntryType) decimal.Decimal {
	total := decimal.Zero
	for _, e := range t.Entries {
		if e.EntryType == entryType {
			total = total.Add(e.Amount)
		}
	}
	return total
}
