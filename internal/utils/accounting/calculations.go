package accounting

import (
	"errors"
	"fmt"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrTooFewLines      = errors.New("journal must have at least two transaction entries")
	ErrSingleAccount    = errors.New("journal must touch at least two distinct accounts")
	ErrNonPositive      = errors.New("transaction amount must be positive")
	ErrUnbalanced       = errors.New("total debits do not equal total credits")
	ErrUnknownEntryType = errors.New("transaction type must be DEBIT or CREDIT")
)

// CalculateSignedAmount applies the correct sign to a transaction amount based on account type and transaction type.
// Used by services (validation, reports) and repositories (balances, running balances).
func CalculateSignedAmount(txn domain.Transaction, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := txn.Amount
	isDebit := txn.TransactionType == domain.Debit

	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, txn.AccountID)
	}
	return signedAmount, nil
}

// Totals returns the sum of debit and credit amounts.
func Totals(transactions []domain.Transaction) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, txn := range transactions {
		switch txn.TransactionType {
		case domain.Debit:
			debits = debits.Add(txn.Amount)
		case domain.Credit:
			credits = credits.Add(txn.Amount)
		}
	}
	return debits, credits
}

// ValidateJournalBalance checks the double-entry rules of a set of journal lines:
// at least two lines on at least two accounts, positive amounts, debits == credits.
func ValidateJournalBalance(transactions []domain.Transaction) error {
	if len(transactions) < 2 {
		return ErrTooFewLines
	}

	accounts := make(map[string]struct{}, len(transactions))
	for _, txn := range transactions {
		if txn.TransactionType != domain.Debit && txn.TransactionType != domain.Credit {
			return fmt.Errorf("%w: got %q on account %s", ErrUnknownEntryType, txn.TransactionType, txn.AccountID)
		}
		if !txn.Amount.IsPositive() {
			return fmt.Errorf("%w: account %s has %s", ErrNonPositive, txn.AccountID, txn.Amount.String())
		}
		accounts[txn.AccountID] = struct{}{}
	}
	if len(accounts) < 2 {
		return ErrSingleAccount
	}

	debits, credits := Totals(transactions)
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits %s, credits %s", ErrUnbalanced, debits.String(), credits.String())
	}
	return nil
}

// BalanceChanges computes the signed change per account that posting the lines causes.
func BalanceChanges(transactions []domain.Transaction, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal)
	for _, txn := range transactions {
		accountType, ok := accountTypes[txn.AccountID]
		if !ok {
			return nil, fmt.Errorf("account type not found for account ID %s", txn.AccountID)
		}
		signed, err := CalculateSignedAmount(txn, accountType)
		if err != nil {
			return nil, err
		}
		changes[txn.AccountID] = changes[txn.AccountID].Add(signed)
	}
	return changes, nil
}

// ReverseLines returns copies of the lines with debit and credit flipped.
func ReverseLines(transactions []domain.Transaction) []domain.Transaction {
	reversed := make([]domain.Transaction, len(transactions))
	for i, txn := range transactions {
		reversed[i] = txn
		reversed[i].TransactionType = txn.TransactionType.Opposite()
		reversed[i].RunningBalance = nil
	}
	return reversed
}
