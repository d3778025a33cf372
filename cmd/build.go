package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	slogctx "github.com/veqryn/slog-context"
)

var buildOutput string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	Long: `build fetches every page and post from the CMS, renders all routes and
writes them to outputDir. The previous export is replaced only once the new one
is complete.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if out := strings.TrimSpace(buildOutput); out != "" {
			cfg.OutputDir = out
		}
		cfg.Live = false

		svc, _, err := newSiteService(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = slogctx.NewCtx(ctx, logger)

		return svc.BuildStatic(ctx)
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output directory, overrides the configuration")
	rootCmd.AddCommand(buildCmd)
}
