package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/core/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/platform/ledgerconfig"
)

var postingsCmd = &cobra.Command{
	Use:   "postings",
	Short: "Maintain automatic journals",
}

var postingsReplayCmd = &cobra.Command{
	Use:   "replay <source-type> <source-id>",
	Short: "Post the journal of a business record if it is missing",
	Long: `Rebuilds the business event of a stored record and posts its journal.
Source types: CONTRACT_INVOICE, PAYMENT, PURCHASE, SALARY, CONTRACT_SALE_COST.
A record that already has its journal is left alone.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		rules, err := ledgerconfig.LoadPostingRules(s.cfg.PostingRulesFile)
		if err != nil {
			return err
		}
		svc := services.NewAutoPostingService(rules, services.AutoPostingRepos{
			Accounts:  s.repos.AccountRepo,
			Journals:  s.repos.JournalRepo,
			Contracts: s.repos.ContractRepo,
			Purchases: s.repos.PurchaseRepo,
			Salaries:  s.repos.SalaryRepo,
			Employees: s.repos.EmployeeRepo,
			Scaffolds: s.repos.ScaffoldRepo,
		}, s.cfg.CompanyCurrency)

		req := dto.ReplayAutoPostingRequest{
			SourceType: domain.JournalSourceType(strings.ToUpper(args[0])),
			SourceID:   args[1],
		}
		journal, created, err := svc.Replay(ctx, req, operatorActor)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "posted journal %s\n", journal.JournalNumber)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "journal %s already exists\n", journal.JournalNumber)
		}
		return nil
	},
}

func init() {
	postingsCmd.AddCommand(postingsReplayCmd)
}
