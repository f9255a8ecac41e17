package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/core/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
)

var (
	reportAsOf string
	reportFrom string
	reportTo   string
	reportJSON bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print financial reports from posted journals",
}

var trialBalanceCmd = &cobra.Command{
	Use:   "trial-balance",
	Short: "Debit and credit totals per account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asOf, err := parseReportDate(reportAsOf, domain.DateOnly(time.Now()))
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		report, err := services.NewReportingService(s.repos.ReportingRepo, s.repos.AccountRepo).SystemTrialBalance(ctx, asOf)
		if err != nil {
			return err
		}
		if reportJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		return writeTrialBalance(cmd.OutOrStdout(), report)
	},
}

var balanceSheetCmd = &cobra.Command{
	Use:   "balance-sheet",
	Short: "Assets, liabilities and equity as of a date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asOf, err := parseReportDate(reportAsOf, domain.DateOnly(time.Now()))
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		report, err := services.NewReportingService(s.repos.ReportingRepo, s.repos.AccountRepo).BalanceSheet(ctx, asOf, operatorActor)
		if err != nil {
			return err
		}
		if reportJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		return writeBalanceSheet(cmd.OutOrStdout(), report)
	},
}

var incomeStatementCmd = &cobra.Command{
	Use:   "income-statement",
	Short: "Revenue and expenses over a period",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		today := domain.DateOnly(time.Now())
		from, err := parseReportDate(reportFrom, time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC))
		if err != nil {
			return err
		}
		to, err := parseReportDate(reportTo, today)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		report, err := services.NewReportingService(s.repos.ReportingRepo, s.repos.AccountRepo).IncomeStatement(ctx, from, to, operatorActor)
		if err != nil {
			return err
		}
		if reportJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		return writeIncomeStatement(cmd.OutOrStdout(), report)
	},
}

func init() {
	reportCmd.PersistentFlags().BoolVar(&reportJSON, "json", false, "print the report as JSON")
	trialBalanceCmd.Flags().StringVar(&reportAsOf, "as-of", "", "report date (YYYY-MM-DD), default today")
	balanceSheetCmd.Flags().StringVar(&reportAsOf, "as-of", "", "report date (YYYY-MM-DD), default today")
	incomeStatementCmd.Flags().StringVar(&reportFrom, "from", "", "first day (YYYY-MM-DD), default start of month")
	incomeStatementCmd.Flags().StringVar(&reportTo, "to", "", "last day (YYYY-MM-DD), default today")
	reportCmd.AddCommand(trialBalanceCmd, balanceSheetCmd, incomeStatementCmd)
}

func parseReportDate(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrialBalance(out io.Writer, r *domain.TrialBalanceReport) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Trial balance as of %s\t\t\t\n", r.AsOf.Format(dto.DateLayout))
	fmt.Fprintln(w, "CODE\tACCOUNT\tDEBIT\tCREDIT\t")
	for _, row := range r.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", row.Code, row.AccountName, row.Debit.StringFixed(2), row.Credit.StringFixed(2))
	}
	fmt.Fprintf(w, "\tTOTAL\t%s\t%s\t\n", r.TotalDebit.StringFixed(2), r.TotalCredit.StringFixed(2))
	if !r.IsBalanced {
		fmt.Fprintln(w, "\tOUT OF BALANCE\t\t\t")
	}
	return w.Flush()
}

func writeAmounts(w io.Writer, title string, rows []domain.AccountAmount) {
	fmt.Fprintf(w, "%s\t\t\t\n", title)
	for _, a := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t\n", a.Code, a.Name, a.NetAmount.StringFixed(2))
	}
}

func writeBalanceSheet(out io.Writer, r *domain.BalanceSheetReport) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Balance sheet as of %s\t\t\t\n", r.AsOf.Format(dto.DateLayout))
	writeAmounts(w, "ASSETS", r.Assets)
	fmt.Fprintf(w, "\tTotal assets\t%s\t\n", r.TotalAssets.StringFixed(2))
	writeAmounts(w, "LIABILITIES", r.Liabilities)
	fmt.Fprintf(w, "\tTotal liabilities\t%s\t\n", r.TotalLiabilities.StringFixed(2))
	writeAmounts(w, "EQUITY", r.Equity)
	fmt.Fprintf(w, "\tCurrent earnings\t%s\t\n", r.CurrentEarnings.StringFixed(2))
	fmt.Fprintf(w, "\tTotal equity\t%s\t\n", r.TotalEquity.StringFixed(2))
	if !r.IsBalanced {
		fmt.Fprintln(w, "\tOUT OF BALANCE\t\t")
	}
	return w.Flush()
}

func writeIncomeStatement(out io.Writer, r *domain.IncomeStatementReport) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Income statement %s to %s\t\t\t\n", r.From.Format(dto.DateLayout), r.To.Format(dto.DateLayout))
	writeAmounts(w, "REVENUE", r.Revenue)
	fmt.Fprintf(w, "\tTotal revenue\t%s\t\n", r.TotalRevenue.StringFixed(2))
	writeAmounts(w, "EXPENSES", r.Expenses)
	fmt.Fprintf(w, "\tTotal expenses\t%s\t\n", r.TotalExpenses.StringFixed(2))
	fmt.Fprintf(w, "\tNet income\t%s\t\n", r.NetIncome.StringFixed(2))
	return w.Flush()
}
