package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	authapi "github.com/voxnotes/scribe-api/api/auth"
	"github.com/voxnotes/scribe-api/api/health"
	"github.com/voxnotes/scribe-api/api/history"
	suggestapi "github.com/voxnotes/scribe-api/api/suggest"
	"github.com/voxnotes/scribe-api/api/transcribe"
	"github.com/voxnotes/scribe-api/api/types"
	"github.com/voxnotes/scribe-api/api/version"
	_ "github.com/voxnotes/scribe-api/docs/swagger"
	"github.com/voxnotes/scribe-api/internal/services/auth"
	"github.com/voxnotes/scribe-api/internal/services/engines"
	"github.com/voxnotes/scribe-api/internal/services/ingest"
	"github.com/voxnotes/scribe-api/internal/services/suggest"
	"github.com/voxnotes/scribe-api/internal/services/transcription"
	"github.com/voxnotes/scribe-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if deps == nil {
		deps = &types.Dependencies{}
	}

	if deps.AuthService == nil {
		deps.AuthService, err = auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		if err != nil {
			return fmt.Errorf("failed to initialize auth service: %w", err)
		}
	}

	if deps.DB != nil && deps.DB.DB != nil {
		if deps.TranscriptionService == nil {
			initializeTranscriptionService(deps, cfg)
		}
		if deps.SuggestionService == nil && cfg.Features.EnableSuggestions {
			if err := initializeSuggestionService(deps, cfg); err != nil {
				return err
			}
		}
	}

	defaultLimit := PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized,
		cfg.RateLimiting.DefaultRPS, cfg.RateLimiting.DefaultBurst)

	// Registration and login are public
	authGroup := engine.Group("/")
	authGroup.Use(defaultLimit)
	authapi.RegisterRoutes(authGroup, deps)

	requireAuth := authapi.AuthMiddleware(deps)

	// Transcription is the expensive path: strict rate limit plus auth
	transcribeGroup := engine.Group("/transcribe")
	transcribeGroup.Use(requireAuth)
	transcribeGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized,
		cfg.RateLimiting.TranscribeRPS, cfg.RateLimiting.TranscribeBurst))
	transcribe.RegisterRoutes(transcribeGroup, deps)

	historyGroup := engine.Group("/history")
	historyGroup.Use(requireAuth)
	historyGroup.Use(defaultLimit)
	history.RegisterRoutes(historyGroup, deps)

	suggestGroup := engine.Group("/suggest-titles")
	suggestGroup.Use(requireAuth)
	suggestGroup.Use(defaultLimit)
	suggestapi.RegisterRoutes(suggestGroup, deps)

	return nil
}

// initializeTranscriptionService creates and wires the orchestration pipeline
func initializeTranscriptionService(deps *types.Dependencies, cfg *config.Config) {
	registry := engines.NewRegistry(cfg)
	store := ingest.NewStore(cfg.Storage.TempDir, cfg.Storage.MaxUploadSize)
	repo := transcription.NewRepository(deps.DB.DB)

	deps.TranscriptionService = transcription.NewService(
		registry,
		store,
		repo,
		transcription.WithLanguage(cfg.Whisper.Language),
		transcription.WithStrictPersistence(cfg.Features.StrictPersistence),
	)
}

// initializeSuggestionService creates and wires the title suggestion service
func initializeSuggestionService(deps *types.Dependencies, cfg *config.Config) error {
	if cfg.Suggest.APIURL == "" {
		// Suggestions stay disabled when no endpoint is configured
		return nil
	}

	client, err := suggest.NewClient(suggest.ClientConfig{
		APIURL:  cfg.Suggest.APIURL,
		APIKey:  cfg.Suggest.APIKey,
		Model:   cfg.Suggest.Model,
		Count:   cfg.Suggest.Count,
		Timeout: cfg.Suggest.Timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize suggestion client: %w", err)
	}

	deps.SuggestionService = suggest.NewService(client, deps.DB.DB)
	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
