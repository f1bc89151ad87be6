package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-shop-api/internal/database"
	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Environment string   `json:"environment"`
	Port        int      `json:"port"`
	Host        string   `json:"host"`
	CORSOrigins []string `json:"cors_origins"`

	// Database configuration
	Database database.DatabaseConfig `json:"-"`

	// Logging configuration
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// Security Configuration
	JWTSecret         string        `json:"jwt_secret"`
	JWTExpiration     time.Duration `json:"jwt_expiration"`
	LoginRateLimit    float64       `json:"login_rate_limit"`
	LoginRateBurst    int           `json:"login_rate_burst"`
	BootstrapEmail    string        `json:"bootstrap_email"`
	BootstrapPassword string        `json:"-"`

	// Event publishing
	KafkaBrokers string `json:"kafka_brokers"`
	KafkaTopic   string `json:"kafka_topic"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Environment: %s, Port: %d, Host: %s, CORSOrigins: %v, Database: %s, LogLevel: %s, LogFile: %s, JWTSecret: [REDACTED], JWTExpiration: %s, LoginRateLimit: %g, LoginRateBurst: %d, BootstrapEmail: %s, KafkaBrokers: %s, KafkaTopic: %s}",
		c.Environment, c.Port, c.Host, c.CORSOrigins, c.Database.String(), c.LogLevel, c.LogFile,
		c.JWTExpiration, c.LoginRateLimit, c.LoginRateBurst, c.BootstrapEmail, c.KafkaBrokers, c.KafkaTopic)
}

// Address is the host:port the HTTP server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// Returns an error if any environment variable holds an invalid value
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	jwtExpiration, err := time.ParseDuration(GetEnvWithDefault("JWT_EXPIRATION", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION: %w", err)
	}
	if jwtExpiration <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION: must be positive")
	}

	rateLimit, err := strconv.ParseFloat(GetEnvWithDefault("LOGIN_RATE_LIMIT", "2"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_LIMIT: %w", err)
	}
	rateBurst, err := strconv.Atoi(GetEnvWithDefault("LOGIN_RATE_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_BURST: %w", err)
	}

	driver := strings.ToLower(GetEnvWithDefault("DB_DRIVER", "sqlite"))
	if driver != "sqlite" && driver != "postgres" && driver != "postgresql" {
		return nil, fmt.Errorf("invalid DB_DRIVER %q (supported: postgres, sqlite)", driver)
	}

	config := &Config{
		Environment: GetEnvWithDefault("APP_ENV", "development"),
		Port:        port,
		Host:        GetEnvWithDefault("APP_HOST", "localhost"),
		CORSOrigins: splitList(GetEnvWithDefault("CORS_ALLOWED_ORIGINS", "*")),
		Database: database.DatabaseConfig{
			Driver:   driver,
			URL:      GetEnvWithDefault("DATABASE_URL", ""),
			Host:     GetEnvWithDefault("DB_HOST", "localhost"),
			Port:     GetEnvWithDefault("DB_PORT", "5432"),
			User:     GetEnvWithDefault("DB_USER", "user"),
			Password: GetEnvWithDefault("DB_PASSWORD", "password"),
			Name:     GetEnvWithDefault("DB_NAME", "shop"),
			SSLMode:  GetEnvWithDefault("DB_SSLMODE", "disable"),
			Path:     GetEnvWithDefault("DB_PATH", "shop.sqlite"),
		},
		LogLevel:          GetEnvWithDefault("LOG_LEVEL", "info"),
		LogFile:           GetEnvWithDefault("LOG_FILE", ""),
		JWTSecret:         GetEnvWithDefault("JWT_SECRET", "secret"),
		JWTExpiration:     jwtExpiration,
		LoginRateLimit:    rateLimit,
		LoginRateBurst:    rateBurst,
		BootstrapEmail:    GetEnvWithDefault("ADMIN_EMAIL", ""),
		BootstrapPassword: GetEnvWithDefault("ADMIN_PASSWORD", ""),
		KafkaBrokers:      GetEnvWithDefault("KAFKA_BROKERS", ""),
		KafkaTopic:        GetEnvWithDefault("KAFKA_TOPIC", "product_events"),
	}
	if config.Environment == "production" && config.JWTSecret == "secret" {
		log.Warn("JWT_SECRET is using the default value in production")
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Debugf("Environment variable %s not set, using default value", key)
		return defaultValue
	}
	return value
}

// splitList splits a comma separated value, dropping empty entries
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
