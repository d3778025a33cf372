package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	slogctx "github.com/veqryn/slog-context"

	"github.com/syncronet/athletos-web/server"
	"github.com/syncronet/athletos-web/site"
)

var (
	serveListen string
	serveWatch  bool
	serveStatic bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	Long: `serve renders every request against the CMS. With --static (or "live": false
in the configuration) the site is exported to outputDir once at start-up and
the exported files are served instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if l := strings.TrimSpace(serveListen); l != "" {
			cfg.Listen = l
		}
		if serveWatch {
			cfg.WatchTemplates = true
		}
		if serveStatic {
			cfg.Live = false
		}

		svc, templates, err := newSiteService(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = slogctx.NewCtx(ctx, logger)

		logger.Info("starting", "live", cfg.Live, "cms", cfg.WordPress.BaseURL)

		if cfg.WatchTemplates {
			go func() {
				if err := templates.Watch(ctx, logger); err != nil {
					logger.Error("template watcher", "error", err)
				}
			}()
		}
		go rebuildLoop(ctx, svc, cfg.RebuildInterval, logger)

		srv := server.New(cfg, svc, logger, serverSignature)
		return srv.Start(ctx)
	},
}

// rebuildLoop refreshes the static export every interval until ctx is done.
func rebuildLoop(ctx context.Context, svc *site.Service, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.Rebuild(ctx); err != nil {
				logger.Warn("rebuild", "error", err)
			}
		}
	}
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address, overrides the configuration (host:port or unix:/path)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload templates from templateDir when they change")
	serveCmd.Flags().BoolVar(&serveStatic, "static", false, "export once and serve the static output")
	rootCmd.AddCommand(serveCmd)
}
