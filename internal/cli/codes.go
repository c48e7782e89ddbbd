package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"invite-quiz-service/internal/app"
	"invite-quiz-service/internal/config"
	"invite-quiz-service/internal/infra/clipboard"
	"invite-quiz-service/internal/infra/xlsx"
	"invite-quiz-service/internal/lib/logger"

	"github.com/spf13/cobra"
)

// NewCodesCmd manages invite codes against the configured store without the server.
func NewCodesCmd(configPath *string, clip clipboard.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Manage invite codes",
	}
	cmd.AddCommand(
		newCodesGenerateCmd(configPath),
		newCodesListCmd(configPath),
		newCodesDeleteCmd(configPath),
		newCodesExportCmd(configPath),
		newCodesCopyCmd(configPath, clip),
	)
	return cmd
}

// withInvites opens the configured invite store for the duration of fn.
func withInvites(ctx context.Context, configPath string, fn func(*app.InviteService) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.Setup(cfg.Env, cfg.Log.Path)
	if err != nil {
		return err
	}
	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	svc, err := b.inviteService(ctx, log)
	if err != nil {
		return err
	}
	return fn(svc)
}

func newCodesGenerateCmd(configPath *string) *cobra.Command {
	var (
		prefix string
		count  int
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a batch of invite codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInvites(cmd.Context(), *configPath, func(svc *app.InviteService) error {
				created, err := svc.Create(cmd.Context(), prefix, count)
				if err != nil {
					return err
				}
				for _, c := range created {
					fmt.Fprintln(cmd.OutOrStdout(), c.Code)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "code prefix (letters and digits, up to 10)")
	cmd.Flags().IntVar(&count, "count", 1, "number of codes (1-100)")
	return cmd
}

func newCodesListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List invite codes with status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInvites(cmd.Context(), *configPath, func(svc *app.InviteService) error {
				codes := svc.List()
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tCODE\tCREATED\tSTATUS")
				for _, row := range codes {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.ID, row.Code, row.CreatedAt.Format("2006-01-02"), row.Status())
				}
				stats := svc.Stats()
				fmt.Fprintf(w, "\ntotal %d\tused %d\tavailable %d\t\n", stats.Total, stats.Used, stats.Available)
				return w.Flush()
			})
		},
	}
}

func newCodesDeleteCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete invite codes by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInvites(cmd.Context(), *configPath, func(svc *app.InviteService) error {
				for _, id := range args {
					if err := svc.Delete(cmd.Context(), id); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newCodesExportCmd(configPath *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export invite codes to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInvites(cmd.Context(), *configPath, func(svc *app.InviteService) error {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				if err := xlsx.WriteInviteCodes(f, app.ExportRows(svc.List())); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", xlsx.FileName, "output file")
	return cmd
}

func newCodesCopyCmd(configPath *string, clip clipboard.Writer) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "copy [id]",
		Short: "Copy one code, or all codes with --all, to the clipboard",
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInvites(cmd.Context(), *configPath, func(svc *app.InviteService) error {
				var text string
				if all {
					text = app.CodesText(svc.List())
				} else {
					code, ok := svc.Get(args[0])
					if !ok {
						return fmt.Errorf("invite code %q not found", args[0])
					}
					text = code.Code
				}
				if err := clip.WriteAll(text); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "copied")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "copy every code, one per line")
	return cmd
}
