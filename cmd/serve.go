package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/squadup/config"
	"github.com/DhavalSuthar-24/squadup/internal/migrations"
	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/mailer"
	"github.com/DhavalSuthar-24/squadup/pkg/notify"
	"github.com/DhavalSuthar-24/squadup/pkg/telemetry"
	"github.com/DhavalSuthar-24/squadup/routes"
)

func newServeCommand() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, skipMigrations)
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply pending migrations on startup")
	return cmd
}

func serve(ctx context.Context, skipMigrations bool) error {
	cfg, log, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	defer func() {
		if err := config.CloseDB(config.DB); err != nil {
			log.Error("close database", zap.Error(err))
		}
	}()

	cleanup, err := telemetry.Init(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cleanup(shutdownCtx); err != nil {
			log.Error("shutdown telemetry", zap.Error(err))
		}
	}()

	if !skipMigrations {
		if err := migrations.Migrate(ctx, config.DB, log); err != nil {
			return err
		}
	}

	admin, created, err := user.EnsureAdmin(ctx, user.NewUserRepository(config.DB), cfg.App.AdminUsername, cfg.App.AdminEmail, cfg.App.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		log.Info("bootstrap admin created", zap.Uint("user_id", admin.ID), zap.String("username", admin.Username))
	}

	publisher, err := notify.New(cfg.NATS.URL, log)
	if err != nil {
		return err
	}
	defer publisher.Close()

	engine := routes.SetupRoutes(routes.Deps{
		DB:        config.DB,
		Config:    cfg,
		Log:       log,
		Publisher: publisher,
		Mailer:    mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From, log),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           telemetry.Handler(engine, cfg.Telemetry.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
