package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"invite-quiz-service/internal/app"
	"invite-quiz-service/internal/config"
	"invite-quiz-service/internal/infra/memory"
	"invite-quiz-service/internal/lib/logger"
	"invite-quiz-service/internal/lib/sl"

	"github.com/spf13/cobra"
)

// NewQuestionsCmd inspects and restores the stored question bank.
func NewQuestionsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Inspect or restore the question bank",
	}
	cmd.AddCommand(newQuestionsListCmd(configPath), newQuestionsResetCmd(configPath))
	return cmd
}

func newQuestionsListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the question bank in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := logger.Setup(cfg.Env, cfg.Log.Path)
			if err != nil {
				return err
			}
			b, err := openBackends(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer b.Close()

			questions, err := app.NewQuestionBank(cfg.Quiz.ID, b.quizzes, log).Questions(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, q := range questions {
				fmt.Fprintf(out, "%d. %s [%s]\n", i+1, q.Question, q.ID)
				for j, opt := range q.Options {
					marker := " "
					if j == q.Correct {
						marker = "*"
					}
					fmt.Fprintf(out, "   %s %s\n", marker, opt)
				}
			}
			return nil
		},
	}
}

// newQuestionsResetCmd overwrites the stored bank with the built-in questions
// and drops the cached copy so running servers reload it.
func newQuestionsResetCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the stored question bank with the built-in questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Postgres.URL) == "" {
				return errPostgresNotConfigured
			}
			log, err := logger.Setup(cfg.Env, cfg.Log.Path)
			if err != nil {
				return err
			}
			log = log.With(sl.Module("cli.questions"))

			b, err := openBackends(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer b.Close()

			quiz := memory.DefaultQuiz(cfg.Quiz.ID)
			if err := b.store.SaveQuiz(cmd.Context(), quiz); err != nil {
				return err
			}
			if b.cache != nil {
				if err := b.cache.Invalidate(cmd.Context(), cfg.Quiz.ID); err != nil {
					return fmt.Errorf("invalidate cached bank: %w", err)
				}
			}
			log.Info("question bank reset", slog.Int("questions", len(quiz.Questions)))
			return nil
		},
	}
}
