package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SscSPs/scaffold_erp/internal/core/services"
	"github.com/SscSPs/scaffold_erp/internal/platform/ledgerconfig"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data",
}

var seedAccountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Insert the built-in chart of accounts",
	Long: `Inserts every account of the built-in chart whose code is missing.
Existing accounts are left untouched, so the command can be rerun.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		chart, err := ledgerconfig.DefaultChart()
		if err != nil {
			return err
		}
		resp, err := services.NewAccountService(s.repos.AccountRepo, chart).SeedChartOfAccounts(ctx, operatorActor)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "inserted %d of %d chart accounts\n", resp.Inserted, resp.Total)
		return nil
	},
}

func init() {
	seedCmd.AddCommand(seedAccountsCmd)
}
