package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

func TestParseReportDate(t *testing.T) {
	fallback := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	got, err := parseReportDate("", fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, got)

	got, err = parseReportDate("2024-12-31", fallback)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), got)

	_, err = parseReportDate("31/12/2024", fallback)
	assert.ErrorContains(t, err, "expected YYYY-MM-DD")
}

func TestWriteTrialBalance(t *testing.T) {
	report := &domain.TrialBalanceReport{
		AsOf: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Rows: []domain.TrialBalanceRow{
			{Code: "1100", AccountName: "Cash", Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
			{Code: "4100", AccountName: "Rental Revenue", Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
		},
		TotalDebit:  decimal.NewFromInt(500),
		TotalCredit: decimal.NewFromInt(500),
		IsBalanced:  true,
	}

	var buf bytes.Buffer
	require.NoError(t, writeTrialBalance(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "Trial balance as of 2024-12-31")
	assert.Contains(t, out, "Rental Revenue")
	assert.Contains(t, out, "500.00")
	assert.NotContains(t, out, "OUT OF BALANCE")
}

func TestWriteTrialBalanceFlagsImbalance(t *testing.T) {
	report := &domain.TrialBalanceReport{
		TotalDebit:  decimal.NewFromInt(10),
		TotalCredit: decimal.NewFromInt(7),
	}

	var buf bytes.Buffer
	require.NoError(t, writeTrialBalance(&buf, report))
	assert.Contains(t, buf.String(), "OUT OF BALANCE")
}

func TestMigrateDownRejectsBadSteps(t *testing.T) {
	err := migrateDownCmd.RunE(migrateDownCmd, []string{"zero"})
	assert.ErrorContains(t, err, "positive integer")

	err = migrateDownCmd.RunE(migrateDownCmd, []string{"-2"})
	assert.ErrorContains(t, err, "positive integer")
}
