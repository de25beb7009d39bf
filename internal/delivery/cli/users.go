package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	deliverycontext "habit/internal/delivery/context"
	domainerrors "habit/internal/domain/errors"
	"habit/internal/errors"

	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Account administration commands",
	}

	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersDeleteCmd())

	return cmd
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts ordered by username",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd.Context(), func(ctx context.Context, d deps) error {
				ctx = deliverycontext.StartOperation(ctx, d.Logger, "users.list")

				users, err := d.Credentials.ListUsers(ctx)
				if err != nil {
					return errors.New(domainerrors.MessageOf(err))
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "USERNAME\tEMAIL\tNAME\tCREATED")
				for _, u := range users {
					created := ""
					if !u.CreatedAt.IsZero() {
						created = u.CreatedAt.Format("2006-01-02 15:04")
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Username, u.Email, u.FullName(), created)
				}

				return w.Flush()
			})
		},
	}
}

func newUsersDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			if !force {
				p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), -1)
				ok, err := p.confirm(fmt.Sprintf("Delete account %s? This cannot be undone", username))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")

					return nil
				}
			}

			return runWithApp(cmd.Context(), func(ctx context.Context, d deps) error {
				ctx = deliverycontext.StartOperation(ctx, d.Logger, "users.delete")

				if err := d.Credentials.DeleteAccount(ctx, username); err != nil {
					return errors.New(domainerrors.MessageOf(err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Account %s deleted.\n", username)

				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}
