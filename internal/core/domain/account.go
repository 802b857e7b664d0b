package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents an entry in the chart of accounts.
// This is the primary representation used by services.
type Account struct {
	AccountID       int64       `json:"accountID"` // Assigned by the store; zero until persisted
	Code            string      `json:"code"`      // Unique across all accounts
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID *int64      `json:"parentAccountID"` // Nullable self-reference
	IsActive        bool        `json:"isActive"`
	AuditFields
}

// IsDebitNormal reports whether a debit increases the account's balance.
func (a Account) IsDebitNormal() bool {
	return a.AccountType == Asset || a.AccountType == Expense
}

// IsCreditNormal reports whether a credit increases the account's balance.
func (a Account) IsCreditNormal() bool {
	return !a.IsDebitNormal()
}
