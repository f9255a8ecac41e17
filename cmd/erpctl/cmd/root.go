// Package cmd provides the erpctl commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
	"github.com/SscSPs/scaffold_erp/internal/platform/config"
	"github.com/SscSPs/scaffold_erp/internal/repositories/database/pgsql"
	"github.com/SscSPs/scaffold_erp/pkg/database"
)

// operatorActor is recorded as creator of rows written by erpctl.
const operatorActor = "system"

var (
	envFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "erpctl",
	Short: "Operator tasks for the scaffold ERP",
	Long: `erpctl runs administrative tasks directly against the database,
bypassing the HTTP API and its permission checks.

Example:
  erpctl migrate up
  erpctl seed accounts
  erpctl roles assign alice ADMIN
  erpctl report trial-balance --as-of 2024-12-31`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("load env file %s: %w", envFile, err)
			}
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file loaded before .env")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL URL (overrides PGSQL_URL)")
	rootCmd.PersistentFlags().String("migrations", "", "migration source URL (overrides MIGRATIONS_PATH)")
	_ = viper.BindPFlag("PGSQL_URL", rootCmd.PersistentFlags().Lookup("database-url"))
	_ = viper.BindPFlag("MIGRATIONS_PATH", rootCmd.PersistentFlags().Lookup("migrations"))

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(postingsCmd)
}

// session is the database side of a command run.
type session struct {
	cfg   *config.Config
	pool  *pgxpool.Pool
	repos portsrepo.RepositoryProvider
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, pool: pool, repos: pgsql.NewRepositoryProvider(pool)}, nil
}

func (s *session) Close() {
	database.ClosePgxPool(s.pool)
}
