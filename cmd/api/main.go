package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/meetscribe-team/meetscribe/pkg/validator"

	_ "github.com/meetscribe-team/meetscribe/docs"
	"github.com/meetscribe-team/meetscribe/internal/adapter/handler"
	"github.com/meetscribe-team/meetscribe/internal/adapter/repository"
	"github.com/meetscribe-team/meetscribe/internal/domain/repositories"
	"github.com/meetscribe-team/meetscribe/internal/infrastructure/cache"
	"github.com/meetscribe-team/meetscribe/internal/infrastructure/database"
	"github.com/meetscribe-team/meetscribe/internal/infrastructure/external/botservice"
	"github.com/meetscribe-team/meetscribe/internal/infrastructure/external/oauth"
	"github.com/meetscribe-team/meetscribe/internal/infrastructure/storage"
	actionItemUsecase "github.com/meetscribe-team/meetscribe/internal/usecase/actionitem"
	"github.com/meetscribe-team/meetscribe/internal/usecase/auth"
	meetingUsecase "github.com/meetscribe-team/meetscribe/internal/usecase/meeting"
	"github.com/meetscribe-team/meetscribe/pkg/config"
	"github.com/meetscribe-team/meetscribe/pkg/jwt"
)

// @title           MeetScribe API
// @version         1.0
// @description     Meeting management backend with bot recordings, transcripts, summaries and action items

// @license.name  MIT

// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

type repoSet struct {
	users       repositories.UserRepository
	meetings    repositories.MeetingRepository
	transcripts repositories.TranscriptRepository
	summaries   repositories.SummaryRepository
	actionItems repositories.ActionItemRepository
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Storage backend: Postgres for real deployments, in-memory for
	// local development without a database
	var repos repoSet
	switch cfg.Database.Driver {
	case "memory":
		log.Println("📦 Using in-memory storage (development only)")
		store := repository.NewMemoryStore()
		repos = repoSet{
			users:       store.Users(),
			meetings:    store.Meetings(),
			transcripts: store.Transcripts(),
			summaries:   store.Summaries(),
			actionItems: store.ActionItems(),
		}
	default:
		log.Println("📦 Connecting to database...")
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)

		if cfg.Database.AutoMigrate {
			if cfg.Server.Environment == "production" {
				log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
			}
			if err := database.Migrate(db); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		}

		repos = repoSet{
			users:       repository.NewUserRepository(db),
			meetings:    repository.NewMeetingRepository(db),
			transcripts: repository.NewTranscriptRepository(db),
			summaries:   repository.NewSummaryRepository(db),
			actionItems: repository.NewActionItemRepository(db),
		}
	}

	// Cache backend for dashboard stats and OAuth state
	var cacheStore cache.Store
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		cacheStore = redisStore
	} else {
		log.Println("📦 Using in-memory cache")
		cacheStore = cache.NewMemoryStore()
	}

	// Recording object storage, optional
	var objectStorage meetingUsecase.ObjectStorage
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		objectStorage = minioClient
	}

	// OAuth provider, optional
	var googleProvider auth.OAuthProvider
	var stateManager auth.StateManager
	if cfg.OAuth.Google.Enabled {
		log.Println("🔐 Initializing OAuth provider...")
		googleProvider = oauth.NewGoogleProvider(&cfg.OAuth.Google)
		stateManager = oauth.NewStateManager(cacheStore)
	}

	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	log.Println("🤖 Initializing bot service client...")
	botClient := botservice.NewClient(&cfg.Bot)

	// Services
	authService := auth.NewService(repos.users, jwtManager, googleProvider, stateManager)
	meetingService := meetingUsecase.NewService(
		repos.meetings,
		repos.transcripts,
		repos.summaries,
		repos.actionItems,
		botClient,
		objectStorage,
		cacheStore,
	)
	actionItemService := actionItemUsecase.NewService(repos.actionItems, repos.meetings, meetingService.InvalidateStats)

	// Handlers
	log.Println("🛣️  Setting up routes...")
	authHandler := handler.NewAuthHandler(authService, jwtManager, logger)
	meetingHandler := handler.NewMeetingHandler(meetingService, logger)
	actionItemHandler := handler.NewActionItemHandler(actionItemService, logger)
	dashboardHandler := handler.NewDashboardHandler(meetingService, logger)

	router := handler.NewRouter(cfg, authService, authHandler, meetingHandler, actionItemHandler, dashboardHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
