package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DhavalSuthar-24/squadup/config"
	"github.com/DhavalSuthar-24/squadup/internal/user"
)

func newCreateAdminCommand() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account unless the username exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			if _, _, err := bootstrap(ctx); err != nil {
				return err
			}
			defer config.CloseDB(config.DB)

			u, created, err := user.EnsureAdmin(ctx, user.NewUserRepository(config.DB), username, email, password)
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "user %q already exists (id %d)\n", u.Username, u.ID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %q created (id %d)\n", u.Username, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Admin username")
	cmd.Flags().StringVar(&email, "email", "", "Admin e-mail (defaults to <username>@squadup.local)")
	cmd.Flags().StringVar(&password, "password", "", "Admin password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
