package mapping

import (
	"github.com/ledgerbook/ledgerbook_backend/internal/core/domain"
	"github.com/ledgerbook/ledgerbook_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction header to its model.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	var reference *string
	if d.Reference != "" {
		reference = &d.Reference
	}
	return models.Transaction{
		TransactionID: d.TransactionID,
		Date:          d.Date,
		Description:   d.Description,
		Reference:     reference,
		Status:        string(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToModelJournalEntries converts a transaction's entries to model rows bound
// to the given transaction identifier.
func ToModelJournalEntries(transactionID int64, entries []domain.JournalEntry) []models.JournalEntry {
	ms := make([]models.JournalEntry, len(entries))
	for i, e := range entries {
		var description *string
		if e.Description != "" {
			desc := e.Description
			description = &desc
		}
		ms[i] = models.JournalEntry{
			TransactionID: transactionID,
			AccountID:     e.AccountID,
			AccountCode:   e.AccountCode,
			AccountName:   e.AccountName,
			EntryType:     string(e.EntryType),
			Amount:        e.Amount,
			Description:   description,
		}
	}
	return ms
}

// ToDomainTransaction combines a model header with its entry rows into a
// domain Transaction.
func ToDomainTransaction(m models.Transaction, entries []models.JournalEntry) domain.Transaction {
	reference := ""
	if m.Reference != nil {
		reference = *m.Reference
	}
	domainEntries := make([]domain.JournalEntry, len(entries))
	for i, e := range entries {
		description := ""
		if e.Description != nil {
			description = *e.Description
		}
		domainEntries[i] = domain.JournalEntry{
			AccountID:   e.AccountID,
			AccountCode: e.AccountCode,
			AccountName: e.AccountName,
			EntryType:   domain.EntryType(e.EntryType),
			Amount:      e.Amount,
			Description: description,
		}
	}
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Date:          m.Date,
		Description:   m.Description,
		Reference:     reference,
		Status:        domain.TransactionStatus(m.Status),
		Entries:       domainEntries,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}
