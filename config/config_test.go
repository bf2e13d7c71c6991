package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_ACCESS_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.RefreshTTL)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
port: "9000"
database:
  driver: mysql
  dsn: "user:pass@tcp(localhost:3306)/littlelemon?parseTime=true"
jwt:
  secret: from-file
  access_ttl: 10m
http:
  cors_origins:
    - https://littlelemon.example
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("RATE_LIMIT_BURST", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 10*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, []string{"https://littlelemon.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 7, cfg.HTTP.RateLimitBurst)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	t.Run("driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "oracle")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("duration", func(t *testing.T) {
		t.Setenv("JWT_REFRESH_TTL", "tomorrow")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Nil(t, splitList(""))
}

func TestInitDBSqlite(t *testing.T) {
	cfg := Default()
	cfg.DB.DSN = "file:config_test?mode=memory&cache=shared"

	db, err := InitDB(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}
