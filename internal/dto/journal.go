package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

// CreateTransactionRequest is one journal line.
type CreateTransactionRequest struct {
	AccountID       string                 `json:"accountID" binding:"required,uuid"`
	Amount          decimal.Decimal        `json:"amount" binding:"decimal_gt0"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=DEBIT CREDIT"`
	Notes           string                 `json:"notes"`
}

// CreateJournalRequest creates a journal with its lines. Post=true stores and posts it in one step.
type CreateJournalRequest struct {
	JournalDate  Date                       `json:"journalDate"`
	Description  string                     `json:"description" binding:"required,max=500"`
	Reference    string                     `json:"reference" binding:"max=100"`
	Transactions []CreateTransactionRequest `json:"transactions" binding:"required,min=2,dive"`
	Post         bool                       `json:"post"`
}

// UpdateJournalRequest replaces a draft journal's header and lines.
type UpdateJournalRequest struct {
	JournalDate  Date                       `json:"journalDate"`
	Description  string                     `json:"description" binding:"required,max=500"`
	Reference    string                     `json:"reference" binding:"max=100"`
	Transactions []CreateTransactionRequest `json:"transactions" binding:"required,min=2,dive"`
}

type ReverseJournalRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
	Date   Date   `json:"date"`
}

// ListJournalsParams defines the cursor-paginated query parameters for listing journals.
type ListJournalsParams struct {
	Limit      int                       `form:"limit,default=20" binding:"min=0,max=100"`
	NextToken  string                    `form:"nextToken"`
	Status     *domain.JournalStatus     `form:"status" binding:"omitempty,oneof=DRAFT POSTED REVERSED"`
	SourceType *domain.JournalSourceType `form:"sourceType"`
	FromDate   string                    `form:"fromDate"`
	ToDate     string                    `form:"toDate"`
}

type ListTransactionsParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=0,max=100"`
	NextToken string `form:"nextToken"`
}

type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	AccountID       string                 `json:"accountID"`
	Amount          decimal.Decimal        `json:"amount"`
	TransactionType domain.TransactionType `json:"transactionType"`
	Notes           string                 `json:"notes"`
	RunningBalance  *decimal.Decimal       `json:"runningBalance,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
}

type JournalResponse struct {
	JournalID          string                   `json:"journalID"`
	JournalNumber      string                   `json:"journalNumber"`
	JournalDate        Date                     `json:"journalDate"`
	Description        string                   `json:"description"`
	Reference          string                   `json:"reference"`
	SourceType         domain.JournalSourceType `json:"sourceType"`
	SourceID           *string                  `json:"sourceID,omitempty"`
	CurrencyCode       string                   `json:"currencyCode"`
	Status             domain.JournalStatus     `json:"status"`
	Amount             decimal.Decimal          `json:"amount"`
	OriginalJournalID  *string                  `json:"originalJournalID,omitempty"`
	ReversingJournalID *string                  `json:"reversingJournalID,omitempty"`
	PostedAt           *time.Time               `json:"postedAt,omitempty"`
	PostedBy           *string                  `json:"postedBy,omitempty"`
	Transactions       []TransactionResponse    `json:"transactions,omitempty"`
	CreatedAt          time.Time                `json:"createdAt"`
	CreatedBy          string                   `json:"createdBy"`
	LastUpdatedAt      time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy      string                   `json:"lastUpdatedBy"`
}

func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		Amount:          txn.Amount,
		TransactionType: txn.TransactionType,
		Notes:           txn.Notes,
		RunningBalance:  txn.RunningBalance,
		CreatedAt:       txn.CreatedAt,
	}
}

func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:          j.JournalID,
		JournalNumber:      j.JournalNumber,
		JournalDate:        NewDate(j.JournalDate),
		Description:        j.Description,
		Reference:          j.Reference,
		SourceType:         j.SourceType,
		SourceID:           j.SourceID,
		CurrencyCode:       j.CurrencyCode,
		Status:             j.Status,
		Amount:             j.Amount,
		OriginalJournalID:  j.OriginalJournalID,
		ReversingJournalID: j.ReversingJournalID,
		PostedAt:           j.PostedAt,
		PostedBy:           j.PostedBy,
		CreatedAt:          j.CreatedAt,
		CreatedBy:          j.CreatedBy,
		LastUpdatedAt:      j.LastUpdatedAt,
		LastUpdatedBy:      j.LastUpdatedBy,
	}
	if len(j.Transactions) > 0 {
		resp.Transactions = ToTransactionResponses(j.Transactions)
	}
	return resp
}

type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

func ToListJournalsResponse(journals []domain.Journal, next *string) ListJournalsResponse {
	res := make([]JournalResponse, len(journals))
	for i := range journals {
		res[i] = ToJournalResponse(&journals[i])
	}
	return ListJournalsResponse{Journals: res, NextToken: next}
}

type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ReplayAutoPostingRequest asks for the automatic journal of one business record to be rebuilt.
type ReplayAutoPostingRequest struct {
	SourceType domain.JournalSourceType `json:"sourceType" binding:"required,oneof=CONTRACT_INVOICE PAYMENT PURCHASE SALARY CONTRACT_SALE_COST"`
	SourceID   string                   `json:"sourceId" binding:"required,uuid"`
}

type ReplayAutoPostingResponse struct {
	Created bool             `json:"created"`
	Journal *JournalResponse `json:"journal,omitempty"`
}
