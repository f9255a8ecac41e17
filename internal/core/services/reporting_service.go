package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
)

// ReportingService builds the financial reports. Only POSTED and REVERSED journals count.
type ReportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader, opts ...BaseOption) *ReportingService {
	return &ReportingService{
		BaseService:   newBaseService(opts),
		reportingRepo: repo,
		accountRepo:   accountRepo,
	}
}

var (
	_ portssvc.ReportingSvc       = (*ReportingService)(nil)
	_ portssvc.SystemReportingSvc = (*ReportingService)(nil)
)

func validRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return apperrors.NewValidationFailedError("both 'from' and 'to' dates are required")
	}
	if to.Before(from) {
		return apperrors.NewValidationFailedError("'to' must not be before 'from'")
	}
	return nil
}

func sortActivity(rows []domain.AccountActivity) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
}

// TrialBalance generates a trial balance report as of a specific date
func (s *ReportingService) TrialBalance(ctx context.Context, asOf time.Time, actorID string) (*domain.TrialBalanceReport, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermReportsRead); err != nil {
		return nil, err
	}
	return s.SystemTrialBalance(ctx, asOf)
}

// SystemTrialBalance is TrialBalance without a permission check.
func (s *ReportingService) SystemTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	asOf = domain.DateOnly(asOf)
	activity, err := s.reportingRepo.GetAccountActivity(ctx, nil, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to get trial balance data", slog.Time("as_of", asOf))
		return nil, err
	}
	return buildTrialBalance(asOf, activity), nil
}

func buildTrialBalance(asOf time.Time, activity []domain.AccountActivity) *domain.TrialBalanceReport {
	sortActivity(activity)
	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        make([]domain.TrialBalanceRow, 0, len(activity)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, a := range activity {
		row := domain.TrialBalanceRow{
			AccountID:   a.AccountID,
			Code:        a.Code,
			AccountName: a.AccountName,
			AccountType: a.AccountType,
			TotalDebit:  a.TotalDebit,
			TotalCredit: a.TotalCredit,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		net := a.TotalDebit.Sub(a.TotalCredit)
		if net.IsPositive() {
			row.Debit = net
		} else {
			row.Credit = net.Neg()
		}
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
		report.Rows = append(report.Rows, row)
	}
	report.IsBalanced = report.TotalDebit.Equal(report.TotalCredit)
	return report
}

// BalanceSheet reports assets, liabilities and equity as of a date. Revenue minus expense
// to date is shown inside equity as current earnings.
func (s *ReportingService) BalanceSheet(ctx context.Context, asOf time.Time, actorID string) (*domain.BalanceSheetReport, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermReportsRead); err != nil {
		return nil, err
	}
	asOf = domain.DateOnly(asOf)
	activity, err := s.reportingRepo.GetAccountActivity(ctx, nil, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to get balance sheet data", slog.Time("as_of", asOf))
		return nil, err
	}
	sortActivity(activity)

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		CurrentEarnings:  decimal.Zero,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, a := range activity {
		amount := domain.AccountAmount{AccountID: a.AccountID, Code: a.Code, Name: a.AccountName, NetAmount: a.SignedBalance()}
		switch a.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, amount)
			report.TotalAssets = report.TotalAssets.Add(amount.NetAmount)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, amount)
			report.TotalLiabilities = report.TotalLiabilities.Add(amount.NetAmount)
		case domain.Equity:
			report.Equity = append(report.Equity, amount)
			report.TotalEquity = report.TotalEquity.Add(amount.NetAmount)
		case domain.Revenue:
			report.CurrentEarnings = report.CurrentEarnings.Add(amount.NetAmount)
		case domain.Expense:
			report.CurrentEarnings = report.CurrentEarnings.Sub(amount.NetAmount)
		}
	}
	report.TotalEquity = report.TotalEquity.Add(report.CurrentEarnings)
	report.IsBalanced = report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity))
	return report, nil
}

func (s *ReportingService) IncomeStatement(ctx context.Context, from, to time.Time, actorID string) (*domain.IncomeStatementReport, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermReportsRead); err != nil {
		return nil, err
	}
	if err := validRange(from, to); err != nil {
		return nil, err
	}
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	activity, err := s.reportingRepo.GetAccountActivity(ctx, &from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to get income statement data", slog.Time("from", from), slog.Time("to", to))
		return nil, err
	}
	sortActivity(activity)

	report := &domain.IncomeStatementReport{
		From:          from,
		To:            to,
		Revenue:       []domain.AccountAmount{},
		Expenses:      []domain.AccountAmount{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, a := range activity {
		amount := domain.AccountAmount{AccountID: a.AccountID, Code: a.Code, Name: a.AccountName, NetAmount: a.SignedBalance()}
		switch a.AccountType {
		case domain.Revenue:
			report.Revenue = append(report.Revenue, amount)
			report.TotalRevenue = report.TotalRevenue.Add(amount.NetAmount)
		case domain.Expense:
			report.Expenses = append(report.Expenses, amount)
			report.TotalExpenses = report.TotalExpenses.Add(amount.NetAmount)
		}
	}
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)
	return report, nil
}

func (s *ReportingService) GeneralLedger(ctx context.Context, from, to time.Time, accountID *string, actorID string) (*domain.GeneralLedgerReport, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermReportsRead); err != nil {
		return nil, err
	}
	if err := validRange(from, to); err != nil {
		return nil, err
	}
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	ledgers, err := s.ledgers(ctx, from, to, accountID)
	if err != nil {
		return nil, err
	}
	return &domain.GeneralLedgerReport{From: from, To: to, Accounts: ledgers}, nil
}

func (s *ReportingService) AccountStatement(ctx context.Context, accountID string, from, to time.Time, actorID string) (*domain.AccountStatement, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermReportsRead); err != nil {
		return nil, err
	}
	if err := validRange(from, to); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find account for statement", slog.String("account_id", accountID))
		return nil, err
	}
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	ledgers, err := s.ledgers(ctx, from, to, &accountID)
	if err != nil {
		return nil, err
	}

	statement := &domain.AccountStatement{From: from, To: to}
	if len(ledgers) > 0 {
		statement.AccountLedger = ledgers[0]
	} else {
		statement.AccountLedger = domain.AccountLedger{
			AccountID:      account.AccountID,
			Code:           account.Code,
			AccountName:    account.Name,
			AccountType:    account.AccountType,
			OpeningBalance: decimal.Zero,
			TotalDebit:     decimal.Zero,
			TotalCredit:    decimal.Zero,
			ClosingBalance: decimal.Zero,
			Lines:          []domain.LedgerLine{},
		}
	}
	return statement, nil
}

// ledgers builds per-account ledgers for [from, to]. The opening balance is the signed
// activity before from; accounts with neither opening balance nor lines are left out.
func (s *ReportingService) ledgers(ctx context.Context, from, to time.Time, accountID *string) ([]domain.AccountLedger, error) {
	dayBefore := from.AddDate(0, 0, -1)
	opening, err := s.reportingRepo.GetAccountActivity(ctx, nil, dayBefore)
	if err != nil {
		s.LogError(ctx, err, "Failed to get opening balances", slog.Time("from", from))
		return nil, err
	}
	rows, err := s.reportingRepo.GetLedgerLines(ctx, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to get ledger lines", slog.Time("from", from), slog.Time("to", to))
		return nil, err
	}

	byAccount := map[string]*domain.AccountLedger{}
	for _, a := range opening {
		if accountID != nil && a.AccountID != *accountID {
			continue
		}
		byAccount[a.AccountID] = &domain.AccountLedger{
			AccountID:      a.AccountID,
			Code:           a.Code,
			AccountName:    a.AccountName,
			AccountType:    a.AccountType,
			OpeningBalance: a.SignedBalance(),
		}
	}

	var missing []string
	for _, r := range rows {
		if _, ok := byAccount[r.AccountID]; !ok {
			byAccount[r.AccountID] = &domain.AccountLedger{AccountID: r.AccountID, OpeningBalance: decimal.Zero}
			missing = append(missing, r.AccountID)
		}
	}
	if len(missing) > 0 {
		accounts, err := s.accountRepo.FindAccountsByIDs(ctx, missing)
		if err != nil {
			s.LogError(ctx, err, "Failed to load ledger accounts")
			return nil, err
		}
		for _, id := range missing {
			acc := accounts[id]
			l := byAccount[id]
			l.Code, l.AccountName, l.AccountType = acc.Code, acc.Name, acc.AccountType
		}
	}

	for _, l := range byAccount {
		l.TotalDebit, l.TotalCredit = decimal.Zero, decimal.Zero
		l.ClosingBalance = l.OpeningBalance
		l.Lines = []domain.LedgerLine{}
	}
	for _, r := range rows {
		l := byAccount[r.AccountID]
		line := r.LedgerLine
		delta := line.Debit.Sub(line.Credit)
		if !l.AccountType.IsDebitNormal() {
			delta = delta.Neg()
		}
		l.ClosingBalance = l.ClosingBalance.Add(delta)
		l.TotalDebit = l.TotalDebit.Add(line.Debit)
		l.TotalCredit = l.TotalCredit.Add(line.Credit)
		line.RunningBalance = l.ClosingBalance
		l.Lines = append(l.Lines, line)
	}

	out := make([]domain.AccountLedger, 0, len(byAccount))
	for _, l := range byAccount {
		if len(l.Lines) == 0 && l.OpeningBalance.IsZero() {
			continue
		}
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
