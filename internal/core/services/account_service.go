package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/platform/ledgerconfig"
)

// AccountService maintains the chart of accounts.
type AccountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	chart       *ledgerconfig.Chart
}

// NewAccountService creates the account service. chart is the default chart used by
// SeedChartOfAccounts.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, chart *ledgerconfig.Chart, opts ...BaseOption) *AccountService {
	return &AccountService{
		BaseService: newBaseService(opts),
		accountRepo: repo,
		chart:       chart,
	}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAccountingWrite); err != nil {
		return nil, err
	}
	if !req.AccountType.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown account type %q", req.AccountType))
	}
	code := strings.TrimSpace(req.Code)
	if code == "" || strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationFailedError("account code and name are required")
	}

	if req.ParentAccountID != nil {
		if err := s.checkParent(ctx, *req.ParentAccountID, req.AccountType, ""); err != nil {
			return nil, err
		}
	}

	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            code,
		Name:            strings.TrimSpace(req.Name),
		AccountType:     req.AccountType,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsActive:        true,
		Balance:         decimal.Zero,
		AuditFields:     domain.NewAuditFields(actorID, s.now()),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", code))
	return &account, nil
}

// checkParent verifies that parentID names an existing account of the same type other than self.
func (s *AccountService) checkParent(ctx context.Context, parentID string, accountType domain.AccountType, selfID string) error {
	if parentID == selfID {
		return apperrors.NewValidationFailedError("an account cannot be its own parent")
	}
	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find parent account", slog.String("parent_id", parentID))
		return apperrors.NewValidationFailedError("parent account not found")
	}
	if parent.AccountType != accountType {
		return apperrors.NewValidationFailedError(fmt.Sprintf(
			"parent account %s is %s, expected %s", parent.Code, parent.AccountType, accountType))
	}
	return nil
}

func (s *AccountService) GetAccountByID(ctx context.Context, accountID string, actorID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAccountingRead); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogDebug(ctx, "Account retrieved successfully", slog.String("account_id", account.AccountID))
	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams, actorID string) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAccountingRead); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.AccountFilter{
		AccountType: params.AccountType,
		IsActive:    params.IsActive,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}

	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount changes name, description and parent. The type may only change while
// no journal line references the account.
func (s *AccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAccountingWrite); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find account for update", slog.String("account_id", accountID))
		return nil, err
	}

	if req.AccountType != nil && *req.AccountType != account.AccountType {
		if !req.AccountType.IsValid() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown account type %q", *req.AccountType))
		}
		if account.IsSystem {
			return nil, apperrors.NewConflictError("the type of a system account cannot change")
		}
		used, err := s.accountRepo.HasTransactions(ctx, accountID)
		if err != nil {
			s.LogError(ctx, err, "Failed to check account usage", slog.String("account_id", accountID))
			return nil, err
		}
		if used {
			return nil, apperrors.NewConflictError("account type cannot change once journal lines reference it")
		}
		account.AccountType = *req.AccountType
	}

	setIfPresent(&account.Name, req.Name)
	setIfPresent(&account.Description, req.Description)
	if account.Name == "" {
		return nil, apperrors.NewValidationFailedError("account name cannot be empty")
	}
	if req.ParentAccountID != nil {
		account.ParentAccountID = req.ParentAccountID
	}
	if account.ParentAccountID != nil {
		if err := s.checkParent(ctx, *account.ParentAccountID, account.AccountType, account.AccountID); err != nil {
			return nil, err
		}
	}
	account.Touch(actorID, s.now())

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", account.AccountID))
	return account, nil
}

func (s *AccountService) DeactivateAccount(ctx context.Context, accountID string, actorID string) error {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAccountingWrite); err != nil {
		return err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find account for deactivation", slog.String("account_id", accountID))
		return err
	}
	if account.IsSystem {
		return apperrors.NewConflictError(fmt.Sprintf("account %s is used by automatic postings and cannot be deactivated", account.Code))
	}
	if !account.Balance.IsZero() {
		return apperrors.NewConflictError(fmt.Sprintf("account %s has balance %s", account.Code, account.Balance.String()))
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, actorID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

// SeedChartOfAccounts inserts the chart accounts whose code does not exist yet.
// Running it again is a no-op.
func (s *AccountService) SeedChartOfAccounts(ctx context.Context, actorID string) (*dto.SeedAccountsResponse, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermAccountingWrite); err != nil {
		return nil, err
	}
	if s.chart == nil {
		return nil, apperrors.NewAppError(500, "no chart of accounts configured", nil)
	}

	codes := make([]string, 0, len(s.chart.Accounts))
	for _, a := range s.chart.Accounts {
		codes = append(codes, a.Code)
	}
	existing, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		s.LogError(ctx, err, "Failed to load existing chart accounts")
		return nil, err
	}

	accounts := chartAccounts(s.chart, existing, actorID, s.now())
	inserted, err := s.accountRepo.SeedAccounts(ctx, accounts)
	if err != nil {
		s.LogError(ctx, err, "Failed to seed chart of accounts")
		return nil, err
	}

	s.LogInfo(ctx, "Chart of accounts seeded", slog.Int("inserted", inserted), slog.Int("total", len(s.chart.Accounts)))
	return &dto.SeedAccountsResponse{Inserted: inserted, Total: len(s.chart.Accounts)}, nil
}
