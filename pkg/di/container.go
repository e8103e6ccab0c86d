package di

import (
	"context"
	"time"

	"medagent/backend/internal/llm"
	"medagent/backend/internal/repository"
	"medagent/backend/internal/service"
	"medagent/backend/internal/triage"
	"medagent/backend/pkg/cache"
	"medagent/backend/pkg/config"
	"medagent/backend/pkg/health"
	"medagent/backend/pkg/logger"
	"medagent/backend/pkg/secrets"

	"gorm.io/gorm"
)

// Container holds all the dependencies for the application
type Container struct {
	DB     *gorm.DB
	Logger *logger.Logger
	Cache  cache.Store
	Health *health.Checker

	Secrets secrets.Manager
	Gateway llm.Client

	SessionService *service.SessionService
	ProfileService *service.ProfileService
	ChatService    *service.ChatService
}

// Config holds the configuration for the container
type Config struct {
	LoggerConfig logger.Config
	ModelConfig  llm.Config
	TriageConfig triage.Config
	// Gateway overrides the OpenAI client, used by tests
	Gateway llm.Client
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		LoggerConfig: logger.DefaultConfig(),
		ModelConfig:  llm.DefaultConfig(),
		TriageConfig: triage.DefaultConfig(),
	}
}

// New creates a new dependency injection container
func New(db *gorm.DB, cfg *Config) (*Container, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	log := logger.New(cfg.LoggerConfig)
	appCfg := config.Get()

	// Cache backend: in-process by default, Redis for multi-replica runs
	var store cache.Store
	if appCfg.Cache.Enabled {
		if appCfg.Cache.Backend == "redis" {
			store = cache.NewRedis(appCfg.Cache.RedisAddr)
		} else {
			store = cache.NewMemory(appCfg.Cache.MaxSize, appCfg.Cache.PurgeWindow)
		}
	}

	secretsMgr, err := secrets.NewVaultManager(log)
	if err != nil {
		return nil, err
	}

	apiKey := secretsMgr.GetSecretWithDefault(context.Background(), "openai-api-key", "")
	if apiKey == "" {
		log.Warn("No model API key configured; chat turns will fail until one is provided")
	}

	gateway := cfg.Gateway
	if gateway == nil {
		gateway = llm.NewOpenAIClient(apiKey, cfg.ModelConfig)
	}

	sessionRepo := repository.NewGormSessionRepository(db)
	profileRepo := repository.NewGormProfileRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)

	sessionService := service.NewSessionService(sessionRepo, profileRepo, messageRepo, store, appCfg.Cache.TTL, log)
	profileService := service.NewProfileService(sessionRepo, profileRepo, log)
	chatService := service.NewChatService(sessionRepo, profileRepo, messageRepo, gateway, cfg.TriageConfig, log)

	checker := health.NewChecker(log, 30*time.Second)
	checker.RegisterDatabaseCheck(func() error {
		return config.TestConnection(db)
	})
	checker.RegisterModelGatewayCheck(func() bool {
		return apiKey != ""
	})
	checker.Start()

	return &Container{
		DB:             db,
		Logger:         log,
		Cache:          store,
		Health:         checker,
		Secrets:        secretsMgr,
		Gateway:        gateway,
		SessionService: sessionService,
		ProfileService: profileService,
		ChatService:    chatService,
	}, nil
}
