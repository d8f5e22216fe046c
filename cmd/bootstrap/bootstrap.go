package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patientor/config"
	deliveryHttp "patientor/internal/delivery/http"
	"patientor/internal/delivery/http/handler"
	"patientor/internal/delivery/http/middleware"
	"patientor/internal/infrastructure/cache"
	"patientor/internal/infrastructure/database"
	"patientor/internal/infrastructure/patientapi"
	"patientor/internal/repository"
	"patientor/internal/service"
	"patientor/internal/usecase"
	"patientor/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Sessions    *service.PageSessionService
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(ctx context.Context) (*App, error) {
	app := &App{}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	SetupLogger(cfg.App)
	logrus.Info("Configuration loaded successfully")

	db, err := database.NewPostgresConnection(cfg.DB, gormLogLevel(cfg.App))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	app.Sessions = service.NewPageSessionService(logrus.StandardLogger(), cfg.Session.TTL, cfg.Session.CleanupInterval)
	app.Server = initializeServer(cfg, db, redisClient, app.Sessions)

	return app, nil
}

// SetupLogger configures the logrus logger
func SetupLogger(cfg config.AppConfig) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func gormLogLevel(cfg config.AppConfig) logger.LogLevel {
	if cfg.Env == "development" {
		return logger.Info
	}
	return logger.Warn
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, sessions *service.PageSessionService) *http.Server {
	log := logrus.StandardLogger()
	customValidator := validator.NewValidator()

	// Backend client
	api := patientapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log)

	// Repositories
	patientRepo := repository.NewPatientRepository(api)
	diagnosisRepo := repository.NewDiagnosisRepository(api, redisClient, cfg.Redis.CatalogTTL, log)
	formStateRepo := repository.NewFormStateRepository(redisClient, cfg.Session.TTL)
	auditLogRepo := repository.NewAuditLogRepository()

	// Services
	auditService := service.NewAuditService(db, log, auditLogRepo)

	// Usecases
	pageUsecase := usecase.NewPatientPageUsecase(log, cfg.Form, customValidator, patientRepo, diagnosisRepo, formStateRepo, auditService, sessions)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Handlers
	pageHandler := handler.NewPatientPageHandler(pageUsecase, customValidator, log)
	entryFormHandler := handler.NewEntryFormHandler(pageUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Middleware
	sessionMiddleware := middleware.NewSessionMiddleware(cfg.Session.CookieName, cfg.Session.TTL, cfg.Session.SecureCookie)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins)

	router := deliveryHttp.NewRouter(log, cfg.App.RequestTimeout, pageHandler, entryFormHandler, auditLogHandler, sessionMiddleware, corsMiddleware)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops the page sessions and closes all connections
func (app *App) Close() {
	if app.Sessions != nil {
		app.Sessions.Stop()
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
