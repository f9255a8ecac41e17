package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SscSPs/scaffold_erp/internal/core/services"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Inspect roles and grant them to users",
}

var rolesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roles with their permissions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		roles, err := s.repos.RoleRepo.ListRoles(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPERMISSIONS")
		for _, r := range roles {
			perms := make([]string, 0, len(r.Permissions))
			for _, p := range r.Permissions {
				perms = append(perms, string(p))
			}
			fmt.Fprintf(w, "%s\t%s\n", r.Name, strings.Join(perms, ","))
		}
		return w.Flush()
	},
}

var rolesAssignCmd = &cobra.Command{
	Use:   "assign <username> <role>",
	Short: "Grant a role to a user",
	Long: `Grants a role by name. This is how the first administrator is created:
register through the API, then run "erpctl roles assign <username> ADMIN".`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := services.NewRoleService(s.repos.RoleRepo, s.repos.UserRepo).AssignRoleByName(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "role %s granted to %s\n", strings.ToUpper(args[1]), args[0])
		return nil
	},
}

func init() {
	rolesCmd.AddCommand(rolesListCmd, rolesAssignCmd)
}
