package mapping

import (
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:          d.JournalID,
		JournalNumber:      d.JournalNumber,
		JournalDate:        d.JournalDate,
		Description:        d.Description,
		Reference:          d.Reference,
		SourceType:         string(d.SourceType),
		SourceID:           d.SourceID,
		CurrencyCode:       d.CurrencyCode,
		Status:             models.JournalStatus(d.Status),
		OriginalJournalID:  d.OriginalJournalID,
		ReversingJournalID: d.ReversingJournalID,
		Amount:             d.Amount,
		PostedAt:           d.PostedAt,
		PostedBy:           d.PostedBy,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:          m.JournalID,
		JournalNumber:      m.JournalNumber,
		JournalDate:        m.JournalDate,
		Description:        m.Description,
		Reference:          m.Reference,
		SourceType:         domain.JournalSourceType(m.SourceType),
		SourceID:           m.SourceID,
		CurrencyCode:       m.CurrencyCode,
		Status:             domain.JournalStatus(m.Status),
		OriginalJournalID:  m.OriginalJournalID,
		ReversingJournalID: m.ReversingJournalID,
		Amount:             m.Amount,
		PostedAt:           m.PostedAt,
		PostedBy:           m.PostedBy,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		JournalID:       d.JournalID,
		AccountID:       d.AccountID,
		Amount:          d.Amount,
		TransactionType: models.TransactionType(d.TransactionType),
		CurrencyCode:    d.CurrencyCode,
		Notes:           d.Notes,
		RunningBalance:  d.RunningBalance,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		JournalID:       m.JournalID,
		AccountID:       m.AccountID,
		Amount:          m.Amount,
		TransactionType: domain.TransactionType(m.TransactionType),
		CurrencyCode:    m.CurrencyCode,
		Notes:           m.Notes,
		RunningBalance:  m.RunningBalance,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
