package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syncronet/athletos-web/config"
	"github.com/syncronet/athletos-web/site"
	"github.com/syncronet/athletos-web/templatex"
	"github.com/syncronet/athletos-web/wpapi"
)

var (
	cfgFile         string
	logLevel        string
	serverSignature string

	appConfig *config.Config
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "athletos",
	Short: "Athletos marketing site backed by a headless WordPress",
	Long: `athletos renders the Athletos marketing site. Page and post content comes
from the WordPress REST API configured by WP_API_URL; when the CMS is
unreachable the built-in Danish copy is served instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute runs the root command. signature is reported by the version
// command and sent as the Server header.
func Execute(signature string) {
	serverSignature = signature
	rootCmd.Version = signature
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.json", "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug|info|warn|error)")
}

func initializeConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	appConfig = cfg
	logger = newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if cfg.UsesPlaceholderCMS() {
		logger.Warn("no CMS configured, serving built-in copy", "env", config.WordPressEnv, "baseUrl", cfg.WordPress.BaseURL)
	}
	return nil
}

func newContentClient(cfg *config.Config) *wpapi.Client {
	opts := []wpapi.Option{wpapi.WithTimeout(cfg.WordPress.Timeout)}
	if cfg.WordPress.UserAgent != "" {
		opts = append(opts, wpapi.WithUserAgent(cfg.WordPress.UserAgent))
	}
	return wpapi.New(cfg.WordPress.BaseURL, opts...)
}

func newSiteService(cfg *config.Config) (*site.Service, *templatex.Engine, error) {
	templates, err := templatex.Load(cfg.TemplateDir)
	if err != nil {
		return nil, nil, fmt.Errorf("templates: %w", err)
	}
	svc, err := site.NewService(cfg, newContentClient(cfg), templates)
	if err != nil {
		return nil, nil, err
	}
	return svc, templates, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
