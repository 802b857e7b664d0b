package models

// Account is the database representation of a chart-of-accounts entry.
type Account struct {
	AccountID       int64  `db:"account_id"`
	Code            string `db:"code"` // Unique
	Name            string `db:"name"`
	AccountType     string `db:"account_type"`
	ParentAccountID *int64 `db:"parent_account_id"` // Nullable self-reference
	IsActive        bool   `db:"is_active"`
	AuditFields
}
