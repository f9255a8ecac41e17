package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/events"
	"github.com/SscSPs/scaffold_erp/internal/platform/ledgerconfig"
	"github.com/SscSPs/scaffold_erp/internal/utils"
	"github.com/SscSPs/scaffold_erp/internal/utils/accounting"
)

// AutoPostingRepos groups what the auto-posting service reads and writes.
type AutoPostingRepos struct {
	Accounts  portsrepo.AccountReader
	Journals  portsrepo.JournalRepositoryFacade
	Contracts portsrepo.ContractReader
	Purchases portsrepo.PurchaseReader
	Salaries  portsrepo.SalaryRepository
	Employees portsrepo.EmployeeRepository
	Scaffolds portsrepo.ScaffoldReader
}

// AutoPostingService turns business events into posted journals using the posting rules.
type AutoPostingService struct {
	BaseService
	rules    *ledgerconfig.PostingRules
	repos    AutoPostingRepos
	currency string
}

func NewAutoPostingService(rules *ledgerconfig.PostingRules, repos AutoPostingRepos, currency string, opts ...BaseOption) *AutoPostingService {
	return &AutoPostingService{
		BaseService: newBaseService(opts),
		rules:       rules,
		repos:       repos,
		currency:    currency,
	}
}

var _ portssvc.AutoPostingSvc = (*AutoPostingService)(nil)

// HandleBusinessEvent is the events.HandlerFunc of the auto-posting service.
func (s *AutoPostingService) HandleBusinessEvent(ctx context.Context, env events.Envelope) error {
	_, _, err := s.post(ctx, env)
	return err
}

// post creates the journal for env unless one exists for the same source.
// The bool reports whether a journal was created.
func (s *AutoPostingService) post(ctx context.Context, env events.Envelope) (*domain.Journal, bool, error) {
	if err := env.Validate(); err != nil {
		return nil, false, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	rule, ok := s.rules.ForEvent(string(env.Type))
	if !ok {
		s.LogDebug(ctx, "No posting rule for event, skipping", slog.String("event_type", string(env.Type)))
		return nil, false, nil
	}

	existing, err := s.repos.Journals.FindJournalBySource(ctx, rule.SourceType, env.SourceID)
	switch {
	case err == nil:
		s.LogDebug(ctx, "Journal already posted for source",
			slog.String("source_type", string(rule.SourceType)),
			slog.String("source_id", env.SourceID),
			slog.String("journal_id", existing.JournalID))
		return existing, false, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up journal by source", slog.String("source_id", env.SourceID))
		return nil, false, err
	}

	journal, err := s.buildJournal(ctx, rule, env)
	if err != nil {
		s.LogError(ctx, err, "Failed to build automatic journal",
			slog.String("event_type", string(env.Type)),
			slog.String("source_id", env.SourceID))
		return nil, false, err
	}

	if err := s.repos.Journals.SavePostedJournal(ctx, *journal); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with another delivery of the same event.
			s.LogDebug(ctx, "Automatic journal created concurrently", slog.String("source_id", env.SourceID))
			stored, findErr := s.repos.Journals.FindJournalBySource(ctx, rule.SourceType, env.SourceID)
			if findErr != nil {
				return nil, false, findErr
			}
			return stored, false, nil
		}
		s.LogError(ctx, err, "Failed to save automatic journal", slog.String("source_id", env.SourceID))
		return nil, false, err
	}

	s.LogInfo(ctx, "Automatic journal posted",
		slog.String("event_type", string(env.Type)),
		slog.String("source_id", env.SourceID),
		slog.String("journal_id", journal.JournalID),
		slog.String("amount", journal.Amount.String()))
	return journal, true, nil
}

func (s *AutoPostingService) buildJournal(ctx context.Context, rule ledgerconfig.PostingRule, env events.Envelope) (*domain.Journal, error) {
	debitCode := rule.Debit.Resolve(env.Attr)
	creditCode := rule.Credit.Resolve(env.Attr)
	accounts, err := s.repos.Accounts.FindAccountsByCodes(ctx, []string{debitCode, creditCode})
	if err != nil {
		return nil, err
	}
	debit, ok := accounts[debitCode]
	if !ok {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("account %s is missing, seed the chart of accounts", debitCode))
	}
	credit, ok := accounts[creditCode]
	if !ok {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("account %s is missing, seed the chart of accounts", creditCode))
	}
	for _, acc := range []domain.Account{debit, credit} {
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: %s %s", ErrInactiveAccount, acc.Code, acc.Name)
		}
	}

	now := s.now()
	number, err := utils.NewDocumentNumber(utils.PrefixJournal, now)
	if err != nil {
		return nil, err
	}
	journalID := uuid.NewString()
	sourceID := env.SourceID
	actor := env.ActorID
	audit := domain.NewAuditFields(actor, now)
	lines := []domain.Transaction{
		{TransactionID: uuid.NewString(), JournalID: journalID, AccountID: debit.AccountID, Amount: env.Amount,
			TransactionType: domain.Debit, CurrencyCode: s.currency, Notes: env.Description, AuditFields: audit},
		{TransactionID: uuid.NewString(), JournalID: journalID, AccountID: credit.AccountID, Amount: env.Amount,
			TransactionType: domain.Credit, CurrencyCode: s.currency, Notes: env.Description, AuditFields: audit},
	}
	if err := accounting.ValidateJournalBalance(lines); err != nil {
		return nil, journalValidationError(err)
	}

	values := map[string]string{
		"reference":   env.Reference,
		"description": env.Description,
		"method":      env.Method,
		"source_id":   env.SourceID,
	}
	for k, v := range env.Attributes {
		values[k] = v
	}
	description := rule.RenderDescription(values)
	if description == "" {
		description = env.Description
	}

	return &domain.Journal{
		JournalID:     journalID,
		JournalNumber: number,
		JournalDate:   domain.DateOnly(env.OccurredAt),
		Description:   description,
		Reference:     env.Reference,
		SourceType:    rule.SourceType,
		SourceID:      &sourceID,
		CurrencyCode:  s.currency,
		Status:        domain.Posted,
		Amount:        env.Amount,
		PostedAt:      &now,
		PostedBy:      &actor,
		Transactions:  lines,
		AuditFields:   audit,
	}, nil
}

// Replay rebuilds the business event of a stored record and posts its journal if missing.
func (s *AutoPostingService) Replay(ctx context.Context, req dto.ReplayAutoPostingRequest, actorID string) (*domain.Journal, bool, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAccountingPost); err != nil {
		return nil, false, err
	}
	env, err := s.rebuildEvent(ctx, req.SourceType, req.SourceID, actorID)
	if err != nil {
		return nil, false, err
	}
	if !env.Amount.IsPositive() {
		return nil, false, apperrors.NewValidationFailedError("the source has a zero amount, nothing to post")
	}
	journal, created, err := s.post(ctx, env)
	if err != nil {
		return nil, false, err
	}
	if journal == nil {
		return nil, false, apperrors.NewValidationFailedError(fmt.Sprintf("no posting rule for source type %s", req.SourceType))
	}
	s.LogInfo(ctx, "Automatic posting replayed",
		slog.String("source_type", string(req.SourceType)),
		slog.String("source_id", req.SourceID),
		slog.Bool("created", created))
	return journal, created, nil
}

func (s *AutoPostingService) rebuildEvent(ctx context.Context, sourceType domain.JournalSourceType, sourceID, actorID string) (events.Envelope, error) {
	switch sourceType {
	case domain.SourceContractInvoice:
		c, err := s.repos.Contracts.FindContractByID(ctx, sourceID)
		if err != nil {
			return events.Envelope{}, err
		}
		if c.InvoiceNumber == nil {
			return events.Envelope{}, transitionError("contract", "replay the invoice of", c.Status)
		}
		return contractInvoicedEvent(*c, actorID), nil

	case domain.SourcePayment:
		p, err := s.repos.Contracts.FindPaymentByID(ctx, sourceID)
		if err != nil {
			return events.Envelope{}, err
		}
		c, err := s.repos.Contracts.FindContractByID(ctx, p.ContractID)
		if err != nil {
			return events.Envelope{}, err
		}
		return paymentReceivedEvent(*p, *c), nil

	case domain.SourcePurchase:
		p, err := s.repos.Purchases.FindPurchaseByID(ctx, sourceID)
		if err != nil {
			return events.Envelope{}, err
		}
		if p.Status != domain.PurchaseCompleted {
			return events.Envelope{}, transitionError("purchase", "replay", p.Status)
		}
		return purchaseCompletedEvent(*p, actorID), nil

	case domain.SourceSalary:
		sal, err := s.repos.Salaries.FindSalaryByID(ctx, sourceID)
		if err != nil {
			return events.Envelope{}, err
		}
		if sal.Status != domain.SalaryPaid {
			return events.Envelope{}, transitionError("salary", "replay", sal.Status)
		}
		e, err := s.repos.Employees.FindEmployeeByID(ctx, sal.EmployeeID)
		if err != nil {
			return events.Envelope{}, err
		}
		return salaryPaidEvent(*sal, *e, actorID), nil

	case domain.SourceSaleCost:
		c, err := s.repos.Contracts.FindContractByID(ctx, sourceID)
		if err != nil {
			return events.Envelope{}, err
		}
		if c.ContractType != domain.ContractSale || c.Status != domain.ContractCompleted {
			return events.Envelope{}, transitionError("contract", "replay the sale cost of", c.Status)
		}
		ids := make([]string, 0, len(c.Items))
		for _, it := range c.Items {
			ids = append(ids, it.ScaffoldID)
		}
		scaffolds, err := s.repos.Scaffolds.FindScaffoldsByIDs(ctx, ids)
		if err != nil {
			return events.Envelope{}, err
		}
		return saleDeliveredEvent(*c, saleCost(c.Items, scaffolds), actorID), nil
	}
	return events.Envelope{}, apperrors.NewValidationFailedError(fmt.Sprintf("source type %s cannot be replayed", sourceType))
}
