package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/utils"
	"github.com/SscSPs/scaffold_erp/internal/utils/accounting"
	"github.com/SscSPs/scaffold_erp/internal/utils/pagination"
)

// JournalService provides manual journal entry, posting and reversal.
type JournalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	currency    string
}

// NewJournalService creates a new JournalService. currency is the company currency stamped on every journal.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader, currency string, opts ...BaseOption) *JournalService {
	return &JournalService{
		BaseService: newBaseService(opts),
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		currency:    currency,
	}
}

// Ensure JournalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*JournalService)(nil)

func buildLines(reqs []dto.CreateTransactionRequest, journalID, currency, actorID string, now time.Time) []domain.Transaction {
	lines := make([]domain.Transaction, len(reqs))
	for i, r := range reqs {
		lines[i] = domain.Transaction{
			TransactionID:   uuid.NewString(),
			JournalID:       journalID,
			AccountID:       r.AccountID,
			Amount:          r.Amount,
			TransactionType: r.TransactionType,
			CurrencyCode:    currency,
			Notes:           r.Notes,
			AuditFields:     domain.NewAuditFields(actorID, now),
		}
	}
	return lines
}

// validateLines checks the double-entry rules and that every account exists and is active.
func validateLines(ctx context.Context, accounts portsrepo.AccountReader, lines []domain.Transaction) error {
	if err := accounting.ValidateJournalBalance(lines); err != nil {
		return journalValidationError(err)
	}
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.AccountID)
	}
	found, err := accounts.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, l := range lines {
		acc, ok := found[l.AccountID]
		if !ok {
			return apperrors.NewValidationFailedError(fmt.Sprintf("account %s not found", l.AccountID))
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: %s %s", ErrInactiveAccount, acc.Code, acc.Name)
		}
	}
	return nil
}

func journalDateOr(d dto.Date, now time.Time) time.Time {
	if d.IsZero() {
		return domain.DateOnly(now)
	}
	return domain.DateOnly(d.Time)
}

// CreateJournal creates a MANUAL journal. With req.Post it is stored and posted in one step.
func (s *JournalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, actorID string) (*domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAccountingWrite); err != nil {
		return nil, err
	}
	if req.Post {
		if err := s.AuthorizeUser(ctx, actorID, domain.PermAccountingPost); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperrors.NewValidationFailedError("journal description is required")
	}

	now := s.now()
	journalID := uuid.NewString()
	lines := buildLines(req.Transactions, journalID, s.currency, actorID, now)
	if err := validateLines(ctx, s.accountRepo, lines); err != nil {
		s.LogDebug(ctx, "Journal rejected", slog.String("reason", err.Error()))
		return nil, err
	}

	number, err := utils.NewDocumentNumber(utils.PrefixJournal, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to number journal", err)
	}
	debits, _ := accounting.Totals(lines)
	journal := domain.Journal{
		JournalID:     journalID,
		JournalNumber: number,
		JournalDate:   journalDateOr(req.JournalDate, now),
		Description:   strings.TrimSpace(req.Description),
		Reference:     req.Reference,
		SourceType:    domain.SourceManual,
		CurrencyCode:  s.currency,
		Status:        domain.Draft,
		Amount:        debits,
		Transactions:  lines,
		AuditFields:   domain.NewAuditFields(actorID, now),
	}

	if req.Post {
		journal.Status = domain.Posted
		journal.PostedAt = &now
		journal.PostedBy = &actorID
		err = s.journalRepo.SavePostedJournal(ctx, journal)
	} else {
		err = s.journalRepo.SaveDraftJournal(ctx, journal)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to save journal", slog.String("journal_id", journalID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal created",
		slog.String("journal_id", journalID),
		slog.String("journal_number", number),
		slog.String("status", string(journal.Status)))
	if req.Post {
		// Reload to pick up running balances stamped by the repository.
		return s.loadJournal(ctx, journalID)
	}
	return &journal, nil
}

func (s *JournalService) UpdateDraftJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, actorID string) (*domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAccountingWrite); err != nil {
		return nil, err
	}
	journal, err := s.loadJournal(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if !journal.IsEditable() {
		return nil, ErrJournalNotEditable
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperrors.NewValidationFailedError("journal description is required")
	}

	now := s.now()
	lines := buildLines(req.Transactions, journalID, journal.CurrencyCode, actorID, now)
	if err := validateLines(ctx, s.accountRepo, lines); err != nil {
		return nil, err
	}
	debits, _ := accounting.Totals(lines)
	journal.JournalDate = journalDateOr(req.JournalDate, journal.JournalDate)
	journal.Description = strings.TrimSpace(req.Description)
	journal.Reference = req.Reference
	journal.Transactions = lines
	journal.Amount = debits
	journal.Touch(actorID, now)

	if err := s.journalRepo.ReplaceDraftJournal(ctx, *journal); err != nil {
		s.LogError(ctx, err, "Failed to update draft journal", slog.String("journal_id", journalID))
		return nil, err
	}
	return journal, nil
}

func (s *JournalService) DeleteDraftJournal(ctx context.Context, journalID string, actorID string) error {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAccountingWrite); err != nil {
		return err
	}
	journal, err := s.loadJournal(ctx, journalID)
	if err != nil {
		return err
	}
	if !journal.IsEditable() {
		return ErrJournalNotEditable
	}
	if err := s.journalRepo.DeleteDraftJournal(ctx, journalID); err != nil {
		s.LogError(ctx, err, "Failed to delete draft journal", slog.String("journal_id", journalID))
		return err
	}
	s.LogInfo(ctx, "Draft journal deleted", slog.String("journal_id", journalID))
	return nil
}

// PostJournal revalidates a draft against the current accounts and posts it.
func (s *JournalService) PostJournal(ctx context.Context, journalID string, actorID string) (*domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAccountingPost); err != nil {
		return nil, err
	}
	journal, err := s.loadJournal(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Draft {
		return nil, ErrJournalNotPostable
	}
	if err := validateLines(ctx, s.accountRepo, journal.Transactions); err != nil {
		return nil, err
	}

	posted, err := s.journalRepo.PostJournal(ctx, journalID, actorID, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to post journal", slog.String("journal_id", journalID))
		return nil, err
	}
	s.LogInfo(ctx, "Journal posted", slog.String("journal_id", journalID), slog.String("amount", posted.Amount.String()))
	return posted, nil
}

// ReverseJournal posts a mirror of a posted journal and returns the new reversal journal.
func (s *JournalService) ReverseJournal(ctx context.Context, journalID string, req dto.ReverseJournalRequest, actorID string) (*domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAccountingPost); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, apperrors.NewValidationFailedError("a reversal reason is required")
	}
	original, err := s.loadJournal(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted || original.IsReversal() {
		return nil, ErrJournalNotReversible
	}

	now := s.now()
	number, err := utils.NewDocumentNumber(utils.PrefixJournal, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to number journal", err)
	}
	reversalID := uuid.NewString()
	lines := accounting.ReverseLines(original.Transactions)
	for i := range lines {
		lines[i].TransactionID = uuid.NewString()
		lines[i].JournalID = reversalID
		lines[i].AuditFields = domain.NewAuditFields(actorID, now)
	}
	originalID := original.JournalID
	reversal := domain.Journal{
		JournalID:         reversalID,
		JournalNumber:     number,
		JournalDate:       journalDateOr(req.Date, now),
		Description:       fmt.Sprintf("Reversal of %s: %s", original.JournalNumber, strings.TrimSpace(req.Reason)),
		Reference:         original.JournalNumber,
		SourceType:        domain.SourceReversal,
		SourceID:          &originalID,
		CurrencyCode:      original.CurrencyCode,
		Status:            domain.Posted,
		OriginalJournalID: &originalID,
		Amount:            original.Amount,
		PostedAt:          &now,
		PostedBy:          &actorID,
		Transactions:      lines,
		AuditFields:       domain.NewAuditFields(actorID, now),
	}

	if err := s.journalRepo.ReverseJournal(ctx, originalID, reversal); err != nil {
		s.LogError(ctx, err, "Failed to reverse journal", slog.String("journal_id", journalID))
		return nil, err
	}
	s.LogInfo(ctx, "Journal reversed",
		slog.String("journal_id", journalID),
		slog.String("reversal_id", reversalID))
	return s.loadJournal(ctx, reversalID)
}

func (s *JournalService) GetJournalByID(ctx context.Context, journalID string, actorID string) (*domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAccountingRead); err != nil {
		return nil, err
	}
	return s.loadJournal(ctx, journalID)
}

func (s *JournalService) ListJournals(ctx context.Context, params dto.ListJournalsParams, actorID string) (*dto.ListJournalsResponse, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAccountingRead); err != nil {
		return nil, err
	}
	filter := portsrepo.JournalFilter{
		Status:     params.Status,
		SourceType: params.SourceType,
		Limit:      pagination.NormalizeLimit(params.Limit),
	}
	if params.SourceType != nil && !params.SourceType.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown source type %q", *params.SourceType))
	}
	if params.FromDate != "" {
		from, err := dto.ParseDate(params.FromDate)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("invalid fromDate")
		}
		filter.FromDate = &from
	}
	if params.ToDate != "" {
		to, err := dto.ParseDate(params.ToDate)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("invalid toDate")
		}
		filter.ToDate = &to
	}
	if params.NextToken != "" {
		if _, err := pagination.DecodeToken(params.NextToken); err != nil {
			return nil, apperrors.NewValidationFailedError("invalid nextToken")
		}
		filter.NextToken = &params.NextToken
	}

	journals, next, err := s.journalRepo.ListJournals(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals")
		return nil, err
	}
	resp := dto.ToListJournalsResponse(journals, next)
	return &resp, nil
}

func (s *JournalService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams, actorID string) (*dto.ListTransactionsResponse, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAccountingRead); err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		s.logLookupError(ctx, err, "Failed to find account for transactions", slog.String("account_id", accountID))
		return nil, err
	}
	var token *string
	if params.NextToken != "" {
		if _, err := pagination.DecodeToken(params.NextToken); err != nil {
			return nil, apperrors.NewValidationFailedError("invalid nextToken")
		}
		token = &params.NextToken
	}

	txns, next, err := s.journalRepo.ListTransactionsByAccountID(ctx, accountID, pagination.NormalizeLimit(params.Limit), token)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account transactions", slog.String("account_id", accountID))
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    next,
	}, nil
}

func (s *JournalService) loadJournal(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find journal", slog.String("journal_id", journalID))
		return nil, err
	}
	return journal, nil
}
