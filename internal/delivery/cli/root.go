// Package cli is the command line delivery of the account core.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "habit",
		Short: "Account management for the habit tracker",
		Long: `habit manages habit tracker accounts: registration, login, profile edits,
password changes and account deletion.

Configuration is read from config/config.yaml; any key can be overridden with an
environment variable such as STORE_DRIVER=postgres or AUTH_ALGORITHM=argon2id.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newShellCmd())
	rootCmd.AddCommand(newUsersCmd())
	rootCmd.AddCommand(newMigrateCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
