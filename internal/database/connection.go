package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// retryDelays is the backoff schedule between connection attempts
var retryDelays = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second}

// GormConfig is the gorm configuration shared by every dialect.
// TranslateError turns driver unique violations into gorm.ErrDuplicatedKey.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

// Dialector selects the gorm dialector for the configured driver
func Dialector(cfg DatabaseConfig) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.Driver) {
	case "postgres", "postgresql":
		return postgres.Open(cfg.DSN()), nil
	case "sqlite", "":
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s (supported: postgres, sqlite)", cfg.Driver)
	}
}

// InitDatabase initializes the database connection based on the provided configuration
// It supports both PostgreSQL and SQLite drivers with retry logic and connection pooling
func InitDatabase(ctx context.Context, cfg DatabaseConfig) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"db_driver": cfg.Driver,
		"db_host":   cfg.Host,
		"db_name":   cfg.Name,
		"db_path":   cfg.Path,
	}).Info("Initializing database connection")

	maxAttempts := len(retryDelays) + 1
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var db *gorm.DB
		db, err = open(ctx, dialector)
		if err == nil {
			log.WithFields(log.Fields{
				"db_driver": cfg.Driver,
				"attempt":   attempt,
			}).Info("Database initialized successfully")
			return db, nil
		}

		log.WithFields(log.Fields{
			"attempt": attempt,
			"error":   err.Error(),
		}).Warn("Database connection attempt failed")

		if attempt == maxAttempts {
			break
		}
		delay := retryDelays[attempt-1]
		log.WithField("delay", delay).Info("Retrying database connection")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxAttempts, err)
}

func open(ctx context.Context, dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, GormConfig())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	configureConnectionPool(sqlDB)
	return db, nil
}

// Migrate creates or updates the users and products tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// configureConnectionPool sets up connection pool parameters
func configureConnectionPool(sqlDB *sql.DB) {
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	log.WithFields(log.Fields{
		"max_open_conns":    25,
		"max_idle_conns":    5,
		"conn_max_lifetime": "5m",
	}).Debug("Connection pool configured")
}
