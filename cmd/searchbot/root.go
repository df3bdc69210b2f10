package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"searchbot/internal/config"
	"searchbot/internal/domain"
	"searchbot/internal/logger"
	"searchbot/internal/service"
	"searchbot/internal/tui"
)

var (
	cfgPath  string
	logLevel string
)

// openBot builds the bot from a loaded config. Tests replace it.
var openBot = func(cfg *config.AppConfig, log *zap.Logger) (tui.BotPort, error) {
	bot, err := service.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	return bot, nil
}

var rootCmd = &cobra.Command{
	Use:   "searchbot",
	Short: "Retrieval chatbot over question/answer and context/response corpora",
	Long: `searchbot answers questions by ranking a fixed corpus with BM25,
TF-IDF, one-hot or dense vector similarity and returning the response
of the best match, or a fixed fallback when nothing scores high enough.

Without a subcommand it starts the interactive chat.`,
	SilenceUsage: true,
	RunE:         runChat,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config (default ./config.yaml or ~/.config/searchbot/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.Flags().StringVarP(&chatMode, "mode", "m", string(domain.ModeQA), "initial answer mode: qa or cr")
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath == "" {
		cfg, _, err := config.LoadDefault()
		return cfg, err
	}
	return config.Load(cfgPath)
}

// setup loads config, builds the logger and opens the bot.
func setup() (tui.BotPort, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	log, err := logger.New(level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}
	bot, err := openBot(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}
	return bot, log, nil
}

func parseMode(s string) (domain.Mode, error) {
	switch domain.Mode(s) {
	case domain.ModeQA, domain.ModeCR:
		return domain.Mode(s), nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q (want qa or cr)", domain.ErrConfiguration, s)
	}
}
