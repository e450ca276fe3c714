package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/windoze95/speakify-bot/internal/ai"
	"github.com/windoze95/speakify-bot/internal/config"
	"github.com/windoze95/speakify-bot/internal/db"
	"github.com/windoze95/speakify-bot/internal/dialog"
	"github.com/windoze95/speakify-bot/internal/logger"
	"github.com/windoze95/speakify-bot/internal/repository"
	"github.com/windoze95/speakify-bot/internal/service"
	"github.com/windoze95/speakify-bot/internal/session"
	"github.com/windoze95/speakify-bot/internal/transport"
	"go.uber.org/zap"
)

// init is called before the main function.
func init() {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Initialize structured logger (dev mode if GIN_MODE != release)
	isDev := os.Getenv("GIN_MODE") != "release"
	logger.Init(isDev)
}

// Entry point for the bot.
func main() {
	defer logger.Sync()

	// Load the config
	var cfg *config.Config
	if c, err := config.LoadConfig(); err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	} else {
		cfg = c
	}

	// Check that all ENV variables are set
	if err := cfg.CheckConfigEnvFields(); err != nil {
		logger.Get().Fatal("missing required config fields", zap.Error(err))
	}

	// Load prompts from YAML
	prompts, err := config.LoadPrompts("configs/prompts.yaml")
	if err != nil {
		logger.Get().Fatal("failed to load prompts", zap.Error(err))
	}
	cfg.Prompts = prompts

	// Connect to the database
	database, err := db.New(cfg)
	if err != nil {
		logger.Get().Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := database.DB()
	if err != nil {
		logger.Get().Fatal("failed to get underlying sql.DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := db.SeedSampleQuestions(database); err != nil {
		logger.Get().Fatal("failed to seed sample questions", zap.Error(err))
	}

	// Repositories
	questionRepo := repository.NewQuestionRepository(database)
	userRepo := repository.NewUserRepository(database)

	// Transport
	client := transport.NewTelegramClient(cfg.EnvVars.BotToken, cfg.EnvVars.SendTimeout)

	// AI provider setup
	speechProvider := ai.NewWhisperProvider(cfg.EnvVars.OpenAIAPIKey)
	var feedbackProvider ai.FeedbackProvider
	if cfg.EnvVars.FeedbackProvider == "anthropic" {
		if cfg.EnvVars.AnthropicAPIKey == "" {
			logger.Get().Fatal("$AnthropicAPIKey must be set when FEEDBACK_PROVIDER=anthropic")
		}
		feedbackProvider = ai.NewAnthropicFeedbackProvider(cfg.EnvVars.AnthropicAPIKey, cfg.Prompts)
	} else {
		feedbackProvider = ai.NewOpenAIFeedbackProvider(cfg.EnvVars.OpenAIAPIKey, cfg.Prompts)
	}

	// Services
	questionService := service.NewQuestionService(cfg, questionRepo)
	userService := service.NewUserService(cfg, userRepo)
	broadcastService := service.NewBroadcastService(cfg, userRepo, client)
	evaluationService := service.NewEvaluationService(cfg, speechProvider, feedbackProvider, client)

	// Dialog router
	router := dialog.NewRouter(
		cfg,
		session.NewTable(),
		session.NewLocks(),
		dialog.NewGuard(cfg.AdminIDs()),
		questionService,
		userService,
		broadcastService,
		evaluationService,
		client,
	)

	// Webhook server
	gin.SetMode(gin.ReleaseMode)
	engine := gin.Default()
	engine.Use(logger.RequestIDMiddleware())
	webhook := transport.NewWebhook(cfg.EnvVars.WebhookSecret, client, router)
	webhook.Register(engine)

	logger.Get().Info("starting webhook server", zap.String("port", cfg.EnvVars.Port))
	if err := engine.Run(":" + cfg.EnvVars.Port); err != nil {
		logger.Get().Fatal("server exited", zap.Error(err))
	}
}
