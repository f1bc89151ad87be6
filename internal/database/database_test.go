package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseConfigDSN(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      DatabaseConfig
		expected string
	}{
		{
			name:     "sqlite uses path",
			cfg:      DatabaseConfig{Driver: "sqlite", Path: "shop.sqlite"},
			expected: "shop.sqlite",
		},
		{
			name:     "empty driver defaults to sqlite",
			cfg:      DatabaseConfig{Path: "data.db"},
			expected: "data.db",
		},
		{
			name: "postgres key value",
			cfg: DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", User: "shop",
				Password: "pw", Name: "shop", SSLMode: "disable"},
			expected: "host=db user=shop password=pw dbname=shop port=5432 sslmode=disable",
		},
		{
			name:     "postgres url wins",
			cfg:      DatabaseConfig{Driver: "postgresql", URL: "postgres://shop:pw@db:5432/shop", Host: "ignored"},
			expected: "postgres://shop:pw@db:5432/shop",
		},
		{
			name:     "unknown driver",
			cfg:      DatabaseConfig{Driver: "oracle"},
			expected: "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.DSN())
		})
	}
}

func TestDatabaseConfigStringRedactsSecrets(t *testing.T) {
	cfg := DatabaseConfig{Driver: "postgres", URL: "postgres://shop:hunter2@db/shop", Password: "hunter2"}

	s := cfg.String()

	assert.NotContains(t, s, "hunter2")
	assert.Contains(t, s, "[REDACTED]")
}

func TestInitDatabaseUnsupportedDriver(t *testing.T) {
	db, err := InitDatabase(context.Background(), DatabaseConfig{Driver: "oracle"})

	assert.Nil(t, db)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestInitDatabaseSQLiteAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.sqlite")

	db, err := InitDatabase(context.Background(), DatabaseConfig{Driver: "sqlite", Path: path})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Product{}))
}
