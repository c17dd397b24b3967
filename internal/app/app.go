package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/nzoschke/healthmate"
	"github.com/nzoschke/healthmate/internal/ai"
	"github.com/nzoschke/healthmate/internal/config"
	"github.com/nzoschke/healthmate/internal/db"
	"github.com/nzoschke/healthmate/internal/markdown"
	"github.com/nzoschke/healthmate/internal/middleware"
	"github.com/nzoschke/healthmate/internal/repository"
	"github.com/nzoschke/healthmate/internal/service"
	"github.com/nzoschke/healthmate/internal/storage"
)

type App struct {
	Cfg         *config.Config
	DB          *sqlx.DB
	AILimiter   *middleware.RateLimiter
	AuthService *service.AuthService

	BMIService         *service.BMIService
	InsightService     *service.InsightService
	MealService        *service.MealService
	HabitService       *service.HabitService
	TodoService        *service.TodoService
	TrackingService    *service.TrackingService
	ProfileService     *service.ProfileService
	AffirmationService *service.AffirmationService
	ChatService        *service.ChatService
	PreferenceService  *service.PreferenceService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database and run migrations
	database, err := db.Open(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Repositories
	bmiRepository := repository.NewBMIRepository(database)
	mealRepository := repository.NewMealRepository(database)
	habitRepository := repository.NewHabitRepository(database)
	habitCompletionRepository := repository.NewHabitCompletionRepository(database)
	todoRepository := repository.NewTodoRepository(database)
	trackingRepository := repository.NewTrackingRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	preferenceRepository := repository.NewPreferenceRepository(database)

	// AI backends
	gateway := newGateway(cfg)
	labeler, err := newLabeler(ctx, cfg)
	if err != nil {
		database.Close()
		return nil, err
	}

	// Storage (optional)
	imageStorage, err := newStorage(ctx, cfg)
	if err != nil {
		database.Close()
		return nil, err
	}

	loc := cfg.Location()
	parser := markdown.NewParser()

	return &App{
		Cfg:         cfg,
		DB:          database,
		AILimiter:   middleware.NewRateLimiter(cfg.AIRateLimit, cfg.AIRateWindow),
		AuthService: service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry),

		BMIService:         service.NewBMIService(bmiRepository),
		InsightService:     service.NewInsightService(gateway, bmiRepository, profileRepository, parser, cfg.AITemperature),
		MealService:        service.NewMealService(mealRepository, gateway, labeler, imageStorage, cfg.AITemperature, loc),
		HabitService:       service.NewHabitService(habitRepository, habitCompletionRepository, loc),
		TodoService:        service.NewTodoService(todoRepository),
		TrackingService:    service.NewTrackingService(trackingRepository),
		ProfileService:     service.NewProfileService(profileRepository),
		AffirmationService: service.NewAffirmationService(contentFS(cfg.ContentPath), parser, loc),
		ChatService:        service.NewChatService(gateway, parser, cfg.AITemperature),
		PreferenceService:  service.NewPreferenceService(preferenceRepository),
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}

func newGateway(cfg *config.Config) ai.Gateway {
	if cfg.AIAPIKey == "" {
		slog.Warn("AI_API_KEY not set, AI features will report an error")
		return ai.Unconfigured{}
	}
	return ai.NewGemini(ai.GeminiConfig{
		APIKey:  cfg.AIAPIKey,
		Model:   cfg.AIModel,
		BaseURL: cfg.AIBaseURL,
		Timeout: cfg.AITimeout,
	})
}

// newLabeler returns nil when Rekognition hints are disabled.
func newLabeler(ctx context.Context, cfg *config.Config) (ai.Labeler, error) {
	if !cfg.RekognitionEnabled {
		return nil, nil
	}
	labeler, err := ai.NewRekognition(ctx, cfg.RekognitionRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rekognition: %w", err)
	}
	return labeler, nil
}

// newStorage returns a nil interface, not a nil *S3Storage, when S3 is not configured.
func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if !cfg.HasStorage() {
		slog.Info("S3 storage not configured, scanned meals keep no photo")
		return nil, nil
	}
	s, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return s, nil
}

// contentFS prefers an on-disk content directory and falls back to the embedded copy.
func contentFS(path string) fs.FS {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return os.DirFS(path)
	}
	sub, err := fs.Sub(healthmate.ContentFS, "content")
	if err != nil {
		slog.Error("failed to open embedded content", "error", err)
		return os.DirFS(path)
	}
	return sub
}
