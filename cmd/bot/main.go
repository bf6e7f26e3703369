package main

import (
	"github.com/xaenox/gatekeeper-bot/internal/agent"
	"github.com/xaenox/gatekeeper-bot/internal/bot"
	"github.com/xaenox/gatekeeper-bot/internal/filter"
	"github.com/xaenox/gatekeeper-bot/internal/storage"
	"github.com/xaenox/gatekeeper-bot/pkg/config"
	"go.uber.org/zap"
)

const configPath = "config.yaml"

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", configPath))
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		dbConfig := storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		}
		store, err = storage.NewPostgresStorage(dbConfig, logger)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Initialize the responder
	responder := agent.NewResponder(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.MaxTokens,
		cfg.OpenAI.Temperature,
		cfg.OpenAI.SystemPrompt,
		logger,
	)

	// The keyword pattern list is re-read from the primary configuration
	// on every evaluation; only the compiled matchers are cached.
	patterns := func() []string {
		fresh, err := config.LoadConfig(configPath)
		if err != nil {
			logger.Warn("Failed to reload config for keyword patterns", zap.Error(err))
			return nil
		}
		return fresh.Messaging.GroupChat.MentionPatterns
	}

	// Initialize the admission filter
	engine := filter.NewEngine(
		cfg.Filter.Platform,
		cfg.Filter.DomainSuffix,
		patterns,
		filter.NewPolicyCache(cfg.Filter.AdminPolicyPath, logger),
		logger,
	)

	// Initialize bot
	b, err := bot.New(cfg.Telegram.Token, store, responder, engine, cfg.Filter.HistoryLimit, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// Start the bot
	if err := b.Start(); err != nil {
		logger.Fatal("Bot error", zap.Error(err))
	}
}
