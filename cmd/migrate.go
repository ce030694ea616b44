package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DhavalSuthar-24/squadup/config"
	"github.com/DhavalSuthar-24/squadup/internal/migrations"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			_, log, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer config.CloseDB(config.DB)
			return migrations.Migrate(ctx, config.DB, log)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			if _, _, err := bootstrap(ctx); err != nil {
				return err
			}
			defer config.CloseDB(config.DB)
			return migrations.Down(ctx, config.DB)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			if _, _, err := bootstrap(ctx); err != nil {
				return err
			}
			defer config.CloseDB(config.DB)
			v, err := migrations.Version(ctx, config.DB)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	})
	return cmd
}
