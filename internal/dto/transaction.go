package dto

import (
	"time"

	"github.com/ledgerbook/ledgerbook_backend/internal/core/domain"
	portsrepo "github.com/ledgerbook/ledgerbook_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// JournalEntryRequest is one entry line of a create or update request.
type JournalEntryRequest struct {
	AccountID   int64            `json:"accountID" binding:"required"`
	EntryType   domain.EntryType `json:"entryType" binding:"required,oneof=DEBIT CREDIT"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	Description string           `json:"description" binding:"omitempty,max=200"`
}

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	Description string                `json:"description" binding:"required,notblank,max=500"`
	Date        time.Time             `json:"date" binding:"required"`
	Reference   string                `json:"reference" binding:"omitempty,max=100"`
	Entries     []JournalEntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// UpdateTransactionRequest wholesale-replaces a pending transaction's content.
type UpdateTransactionRequest struct {
	Description string                `json:"description" binding:"required,notblank,max=500"`
	Date        time.Time             `json:"date" binding:"required"`
	Reference   string                `json:"reference" binding:"omitempty,max=100"`
	Entries     []JournalEntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// CancelTransactionRequest carries the caller-supplied cancellation reason.
type CancelTransactionRequest struct {
	CancelReason string `json:"cancelReason" binding:"required,notblank,max=500"`
}

// ListTransactionsParams defines query parameters for listing transactions.
// Start and end date filter inclusively; both must be given to take effect.
type ListTransactionsParams struct {
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
	Page      int        `form:"page,default=0" binding:"omitempty,min=0"`
	Size      int        `form:"size,default=20" binding:"omitempty,min=1,max=100"`
}

// JournalEntryResponse defines the data returned for one entry line.
type JournalEntryResponse struct {
	AccountID   int64            `json:"accountID"`
	AccountCode string           `json:"accountCode"`
	AccountName string           `json:"accountName"`
	EntryType   domain.EntryType `json:"entryType"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID int64                    `json:"transactionID"`
	Date          time.Time                `json:"date"`
	Description   string                   `json:"description"`
	Reference     string                   `json:"reference"`
	Status        domain.TransactionStatus `json:"status"`
	TotalAmount   decimal.Decimal          `json:"totalAmount"`
	Entries       []JournalEntryResponse   `json:"entries"`
	CreatedAt     time.Time                `json:"createdAt"`
	LastUpdatedAt time.Time                `json:"lastUpdatedAt"`
}

// CancelTransactionResponse returns both sides of a cancellation.
type CancelTransactionResponse struct {
	OriginalTransaction TransactionResponse `json:"originalTransaction"`
	ReversalTransaction TransactionResponse `json:"reversalTransaction"`
	CancelReason        string              `json:"cancelReason"`
}

// TransactionPageResponse is the page envelope for transaction listings.
type TransactionPageResponse struct {
	Content       []TransactionResponse `json:"content"`
	Page          int                   `json:"page"`
	Size          int                   `json:"size"`
	TotalElements int64                 `json:"totalElements"`
	TotalPages    int64                 `json:"totalPages"`
}

// ToJournalEntryResponse converts one domain entry to its DTO.
func ToJournalEntryResponse(e domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		AccountID:   e.AccountID,
		AccountCode: e.AccountCode,
		AccountName: e.AccountName,
		EntryType:   e.EntryType,
		Amount:      e.Amount,
		Description: e.Description,
	}
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	entries := make([]JournalEntryResponse, len(txn.Entries))
	for i, e := range txn.Entries {
		entries[i] = ToJournalEntryResponse(e)
	}
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Date:          txn.Date,
		Description:   txn.Description,
		Reference:     txn.Reference,
		Status:        txn.Status,
		TotalAmount:   txn.TotalAmount(),
		Entries:       entries,
		CreatedAt:     txn.CreatedAt,
		LastUpdatedAt: txn.LastUpdatedAt,
	}
}

// ToTransactionPageResponse converts a repository page to the HTTP envelope.
func ToTransactionPageResponse(page *portsrepo.TransactionPage) TransactionPageResponse {
	content := make([]TransactionResponse, len(page.Transactions))
	for i := range page.Transactions {
		content[i] = ToTransactionResponse(&page.Transactions[i])
	}
	totalPages := int64(0)
	if page.Size > 0 {
		totalPages = (page.TotalCount + int64(page.Size) - 1) / int64(page.Size)
	}
	return TransactionPageResponse{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalCount,
		TotalPages:    totalPages,
	}
}
