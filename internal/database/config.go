package database

import (
	"fmt"
	"net/url"
)

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Driver specifies the database driver (postgres, sqlite)
	Driver string

	// URL is a full postgres connection URL; when set it takes precedence
	// over the individual PostgreSQL fields
	URL string

	// PostgreSQL-specific configuration
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// SQLite-specific configuration
	Path string
}

// String returns a string representation with sensitive data masked
func (c DatabaseConfig) String() string {
	return fmt.Sprintf("DatabaseConfig{Driver: %s, URL: %s, Host: %s, Port: %s, User: %s, Password: [REDACTED], Name: %s, SSLMode: %s, Path: %s}",
		c.Driver, MaskURL(c.URL), c.Host, c.Port, c.User, c.Name, c.SSLMode, c.Path)
}

// DSN builds a Data Source Name string based on the driver
func (c DatabaseConfig) DSN() string {
	switch c.Driver {
	case "postgres", "postgresql":
		if c.URL != "" {
			return c.URL
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
	case "sqlite", "":
		return c.Path
	default:
		return ""
	}
}

// MaskURL masks the password in a database URL
func MaskURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}

	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "[REDACTED_INVALID_URL]"
	}

	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), "REDACTED")
		}
	}

	return parsed.String()
}
