package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/squadup/config"
	"github.com/DhavalSuthar-24/squadup/pkg/logger"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "squadup",
		Short:         "Team management backend: events, RSVPs and invites",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newCreateAdminCommand())
	return cmd
}

// bootstrap loads the configuration, connects the database and builds the logger.
func bootstrap(ctx context.Context) (*config.Config, *zap.Logger, error) {
	if err := config.Initialize(ctx); err != nil {
		return nil, nil, err
	}
	cfg := config.GetConfig()
	log := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.IsDevelopment(),
	})
	return cfg, log, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
