package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"invite-quiz-service/internal/app"
	"invite-quiz-service/internal/config"
	"invite-quiz-service/internal/lib/logger"
	"invite-quiz-service/internal/lib/sl"
	transport "invite-quiz-service/internal/transport/http"

	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.Setup(cfg.Env, cfg.Log.Path)
	if err != nil {
		return err
	}
	log.Info("starting invite quiz", slog.String("env", cfg.Env))

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = config.DefaultPort
	}

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	invites, err := b.inviteService(ctx, log)
	if err != nil {
		return err
	}
	bank := app.NewQuestionBank(cfg.Quiz.ID, b.quizzes, log)
	ctrl := app.NewController(invites, bank, app.NewAdminSession(cfg.Admin.Password), log)
	defer ctrl.Close()

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(log, ctrl),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error("server failed", sl.Err(err))
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
