package cli

import (
	"errors"
	"io/fs"
	"os"

	"invite-quiz-service/internal/infra/clipboard"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Execute runs the CLI.
func Execute() error {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return newRootCmd(clipboard.System{}).Execute()
}

func newRootCmd(clip clipboard.Writer) *cobra.Command {
	var port, configPath string
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:          "invite-quiz",
		Short:        "Invite-gated timed quiz with an admin console",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&port, "port", os.Getenv("PORT"), "port to listen on (overrides server.port)")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewStartCmd(&configPath, &port))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewCodesCmd(&configPath, clip))
	cmd.AddCommand(NewQuestionsCmd(&configPath))
	return cmd
}
