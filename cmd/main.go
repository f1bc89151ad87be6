package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/franciscosanchezn/gin-shop-api/internal/auth"
	"github.com/franciscosanchezn/gin-shop-api/internal/config"
	"github.com/franciscosanchezn/gin-shop-api/internal/controllers"
	"github.com/franciscosanchezn/gin-shop-api/internal/database"
	"github.com/franciscosanchezn/gin-shop-api/internal/events"
	"github.com/franciscosanchezn/gin-shop-api/internal/middleware"
	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	"github.com/franciscosanchezn/gin-shop-api/internal/repository"
	"github.com/franciscosanchezn/gin-shop-api/internal/router"
	"github.com/franciscosanchezn/gin-shop-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load environment variables
	loadDotenvFile()

	// Load configuration
	configuration := loadConfig()

	// Initialize logger
	setUpLogger(configuration)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database connection
	db := setupDatabase(ctx, configuration)

	// Initialize services and controllers
	publisher := setupPublisher(configuration)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.WithError(err).Warn("Failed to close event publisher")
		}
	}()

	tokens := auth.NewTokenManager(configuration.JWTSecret, configuration.JWTExpiration)
	authService := services.NewAuthService(repository.NewUserRepository(db), tokens)
	productService := services.NewProductService(repository.NewProductRepository(db), publisher)

	bootstrapAdmin(ctx, authService, configuration)

	if configuration.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	deps := router.Dependencies{
		Auth:     controllers.NewAuthController(authService),
		Products: controllers.NewProductController(productService),
		Tokens:   tokens,
	}
	if configuration.LoginRateLimit > 0 {
		deps.LoginLimiter = middleware.NewRateLimiter(configuration.LoginRateLimit, configuration.LoginRateBurst)
	}

	server := &http.Server{
		Addr:              configuration.Address(),
		Handler:           corsHandler(configuration).Handler(router.New(deps)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Start the server
	go func() {
		log.Infof("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("Server stopped")
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter.
// LOG_LEVEL wins when it parses, otherwise the level follows the environment.
// When LOG_FILE is set entries are also written to a rotating file.
func setUpLogger(conf *config.Config) {
	log.SetFormatter(&log.JSONFormatter{})
	switch conf.Environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
	if level, err := log.ParseLevel(conf.LogLevel); err == nil && os.Getenv("LOG_LEVEL") != "" {
		log.SetLevel(level)
	}

	if conf.LogFile != "" {
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   conf.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}))
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase connects to the configured store and migrates the schema
func setupDatabase(ctx context.Context, conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(ctx, conf.Database)
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))
	return db
}

// setupPublisher returns a kafka publisher when brokers are configured
func setupPublisher(conf *config.Config) events.Publisher {
	if conf.KafkaBrokers == "" {
		log.Info("KAFKA_BROKERS not set, product events are disabled")
		return events.NopPublisher{}
	}
	log.WithFields(log.Fields{
		"brokers": conf.KafkaBrokers,
		"topic":   conf.KafkaTopic,
	}).Info("Publishing product events to kafka")
	return events.NewKafkaPublisher(conf.KafkaBrokers, conf.KafkaTopic)
}

// bootstrapAdmin registers the configured admin account if it does not exist yet
func bootstrapAdmin(ctx context.Context, authService services.AuthService, conf *config.Config) {
	if conf.BootstrapEmail == "" || conf.BootstrapPassword == "" {
		return
	}
	_, err := authService.Register(ctx, services.RegisterInput{
		Email:    strings.TrimSpace(conf.BootstrapEmail),
		Password: conf.BootstrapPassword,
		Role:     models.RoleAdmin,
	})
	switch {
	case err == nil:
		log.WithField("email", conf.BootstrapEmail).Info("Bootstrap admin created")
	case errors.Is(err, services.ErrConflict):
		log.WithField("email", conf.BootstrapEmail).Debug("Bootstrap admin already exists")
	default:
		checkPanicErr(err)
	}
}

func corsHandler(conf *config.Config) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: conf.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         300,
	})
}
