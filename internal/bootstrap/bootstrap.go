package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/akwareg/akwareg-backend/docs" // Import generated swagger docs
	appControllers "github.com/akwareg/akwareg-backend/internal/app/controllers"
	appMigrations "github.com/akwareg/akwareg-backend/internal/app/migrations"
	appRepos "github.com/akwareg/akwareg-backend/internal/app/repositories"
	appRoutes "github.com/akwareg/akwareg-backend/internal/app/routes"
	appServices "github.com/akwareg/akwareg-backend/internal/app/services"
	"github.com/akwareg/akwareg-backend/internal/config"
	"github.com/akwareg/akwareg-backend/internal/db"
	appMiddleware "github.com/akwareg/akwareg-backend/internal/middleware"
	pkgAuth "github.com/akwareg/akwareg-backend/internal/pkg/auth"
	"github.com/akwareg/akwareg-backend/internal/pkg/filestorage"
	"github.com/akwareg/akwareg-backend/internal/pkg/helpers"
	"github.com/akwareg/akwareg-backend/internal/pkg/logger"
	"github.com/akwareg/akwareg-backend/internal/pkg/websocket"
	"github.com/akwareg/akwareg-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services           *appServices.Services
	AuthController     *appControllers.AuthController
	PropertyController *appControllers.PropertyController
	AdminController    *appControllers.AdminController
	MessageController  *appControllers.MessageController
	StatsController    *appControllers.StatsController
	WSHandler          *websocket.Handler
	Hub                *websocket.Hub
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	FileStorage        *filestorage.LocalStorage
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log but don't fail startup on partial seed data
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and
// the websocket hub. The hub's event loop is started here.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Base URL must match the static file serving endpoint
	baseURL := "http://localhost:" + cfg.Server.Port
	storageBaseURL := cfg.Storage.BaseURL
	if storageBaseURL == "" {
		storageBaseURL = baseURL + "/uploads"
	}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.Path, storageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()
	deps.WSHandler = websocket.NewHandler(deps.Hub, lgr)

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.FileStorage, deps.Hub, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService, lgr)
	deps.PropertyController = appControllers.NewPropertyController(deps.Services.PropertyService, deps.Services.VerificationService, lgr)
	deps.AdminController = appControllers.NewAdminController(
		deps.Services.PropertyService,
		deps.Services.VerificationService,
		deps.Services.UserService,
		deps.Services.StatsService,
		lgr,
	)
	deps.MessageController = appControllers.NewMessageController(deps.Services.MessageService, lgr)
	deps.StatsController = appControllers.NewStatsController(deps.Services.StatsService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.PropertyController,
		deps.AdminController,
		deps.MessageController,
		deps.StatsController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
