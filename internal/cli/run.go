package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vitaliiserbynassisterr/bug-report-bot/internal/bot"
	"github.com/vitaliiserbynassisterr/bug-report-bot/internal/metrics"
	"github.com/vitaliiserbynassisterr/bug-report-bot/internal/telegram"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/backend"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/config"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/tags"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/triage"
)

const sessionSweepInterval = 5 * time.Minute

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bot until interrupted",
	Long: `Run the bug reporting bot.

Configuration is read from the environment (a .env file in the working
directory is loaded if present). The bot long-polls Telegram for
updates and serves Prometheus metrics and a health probe on
METRICS_ADDR until SIGINT or SIGTERM.`,
	Example: `  # Run with configuration from .env
  bugbot run

  # Run with debug logging
  bugbot run --log-level=debug`,
	RunE: runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewDotEnvLoader().Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := configureLogging(cmd, cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	botMetrics := metrics.New()
	client := backend.NewClientWithObserver(cfg, botMetrics)

	opts := bot.Options{Metrics: botMetrics}

	if cfg.AIAgentEnabled {
		classifier, err := triage.NewAnthropicClassifier(cfg.AnthropicAPIKey)
		if err != nil {
			return fmt.Errorf("failed to initialize triage classifier: %w", err)
		}
		opts.Classifier = classifier
		log.Info("AI triage enabled")
	}

	if cfg.TagsFile != "" {
		catalog, err := tags.Load(cfg.TagsFile)
		if err != nil {
			return fmt.Errorf("failed to load tag catalog: %w", err)
		}
		opts.Catalog = catalog
		log.WithField("tags_file", cfg.TagsFile).Info("Tag catalog loaded")
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	log.WithField("bot_username", api.Self.UserName).Info("Connected to Telegram")

	core := bot.New(cfg, client, telegram.NewSender(api), opts)
	core.Sessions().StartSweeper(ctx, sessionSweepInterval)

	if cfg.MetricsAddr != "" {
		go func() {
			if err := botMetrics.Serve(ctx, cfg.MetricsAddr); err != nil {
				log.WithError(err).Error("Metrics listener failed")
			}
		}()
	}

	poller := telegram.NewPoller(api, core)
	if err := poller.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("poller failed: %w", err)
	}

	log.Info("Shutdown complete")
	return nil
}

// configureLogging applies log level and format from config, with
// command-line flags taking precedence
func configureLogging(cmd *cobra.Command, cfg *config.Config) error {
	levelArg := cfg.LogLevel
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		levelArg = flagLevel
	}

	level, err := log.ParseLevel(levelArg)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelArg, err)
	}
	log.SetLevel(level)

	formatArg := cfg.LogFormat
	if flagFormat, _ := cmd.Flags().GetString("log-format"); flagFormat != "" {
		formatArg = flagFormat
	}

	switch formatArg {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid log format %q (expected text or json)", formatArg)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
}
