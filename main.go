package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/latefee/latefee/pkg/config"
	"github.com/latefee/latefee/pkg/database"
	"github.com/latefee/latefee/pkg/handlers"
	"github.com/latefee/latefee/pkg/llm"
	"github.com/latefee/latefee/pkg/logging"
	"github.com/latefee/latefee/pkg/middleware"
	"github.com/latefee/latefee/pkg/omdb"
	"github.com/latefee/latefee/pkg/repositories"
	"github.com/latefee/latefee/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.URL())),
		zap.String("omdb_base_url", cfg.OMDB.BaseURL),
		zap.String("llm_provider", cfg.LLM.Provider),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Database and schema
	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.URL(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(cfg.Database.URL(), cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	movieRepo := repositories.NewMovieRepository(db)

	// External clients
	metadataClient, err := omdb.NewClient(&omdb.Config{
		BaseURL:      cfg.OMDB.BaseURL,
		APIKey:       cfg.OMDB.APIKey,
		MaxRetries:   cfg.OMDB.MaxRetries,
		Timeout:      cfg.OMDB.Timeout(),
		SnapshotPath: cfg.OMDB.SnapshotPath,
	}, nil, logger)
	if err != nil {
		logger.Fatal("Failed to create metadata client", zap.Error(err))
	}

	llmClient, err := llm.NewProvider(&cfg.LLM, logger)
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	// Services
	libraryService := services.NewLibraryService(userRepo, movieRepo, metadataClient, logger)
	narrativeService := services.NewNarrativeService(llmClient, logger)

	// HTTP surface
	renderer, err := handlers.NewRenderer(logger)
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}
	flashStore := handlers.NewFlashStore(cfg.SessionSecret, logger)

	mux := http.NewServeMux()
	handlers.NewLibraryHandler(libraryService, renderer, flashStore, logger).RegisterRoutes(mux)
	handlers.NewNarrativeHandler(libraryService, narrativeService, renderer, flashStore, logger).RegisterRoutes(mux)
	handlers.NewHealthHandler(cfg).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(
		middleware.Recovery(logger, renderer.ErrorPage)(
			middleware.ErrorPages(renderer.ErrorPage)(mux)))

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting latefee",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds the root zap logger: production config with the level
// taken from configuration, development config for local runs.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	var zapCfg zap.Config
	if cfg.Env == "local" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
