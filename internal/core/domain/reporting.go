package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountActivity is the raw debit/credit aggregate of one account over a range.
// Repositories produce it; services turn it into report rows.
type AccountActivity struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}

// SignedBalance is the activity expressed on the account's normal side.
func (a AccountActivity) SignedBalance() decimal.Decimal {
	if a.AccountType.IsDebitNormal() {
		return a.TotalDebit.Sub(a.TotalCredit)
	}
	return a.TotalCredit.Sub(a.TotalDebit)
}

// TrialBalanceRow represents a single row in a trial balance report.
// Debit and Credit hold the net balance on whichever side it falls.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}

// AccountAmount represents an account with its net amount for financial reports
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// IncomeStatementReport covers revenue and expenses over a period.
type IncomeStatementReport struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// BalanceSheetReport represents a balance sheet report. CurrentEarnings is
// revenue minus expenses up to AsOf, shown inside equity.
type BalanceSheetReport struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	CurrentEarnings  decimal.Decimal `json:"currentEarnings"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	IsBalanced       bool            `json:"isBalanced"`
}

// LedgerLine is one posted transaction line as it appears in a ledger.
type LedgerLine struct {
	TransactionID  string          `json:"transactionID"`
	JournalID      string          `json:"journalID"`
	JournalNumber  string          `json:"journalNumber"`
	JournalDate    time.Time       `json:"journalDate"`
	Description    string          `json:"description"`
	Reference      string          `json:"reference"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	CreatedAt      time.Time       `json:"-"`
}

// AccountLedger is the ledger of a single account over a period.
type AccountLedger struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"`
	AccountName    string          `json:"accountName"`
	AccountType    AccountType     `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Lines          []LedgerLine    `json:"lines"`
}

type GeneralLedgerReport struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Accounts []AccountLedger `json:"accounts"`
}

// AccountStatement is a single account ledger with the period it covers.
type AccountStatement struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
	AccountLedger
}
