package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadConfig_Defaults(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "*/5 * * * * *", cfg.OutboxSchedule)
	assert.Equal(t, 100, cfg.OutboxBatch)
	assert.Equal(t, 30*time.Second, cfg.OutboxTimeout)
	assert.InDelta(t, 20, cfg.RateLimit, 0)
	assert.Empty(t, cfg.KafkaBrokers())
}

func Test_LoadConfig_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte(
		"SUPABASE_JWT_SECRET=from-file\nKAFKA_HOST=k1:9092, k2:9092\nOUTBOX_BATCH=7\nLOG_LEVEL=debug\n",
	), 0o600))
	t.Setenv("HTTP_PORT", "9090")
	// godotenv never overrides variables that are already set, so register
	// them for cleanup before the file is loaded.
	for _, k := range []string{"SUPABASE_JWT_SECRET", "KAFKA_HOST", "OUTBOX_BATCH", "LOG_LEVEL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := LoadConfig(file)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers())
	assert.Equal(t, 7, cfg.OutboxBatch)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func Test_LoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "")

	_, err := LoadConfig()

	assert.ErrorContains(t, err, "SUPABASE_JWT_SECRET")
}

func Test_Config_Validate(t *testing.T) {
	cfg := Config{HTTPPort: "8080", JWTSecret: "s", OutboxBatch: 0, RateLimit: -1}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "OUTBOX_BATCH")
	assert.Contains(t, err.Error(), "RATE_LIMIT")
}

func Test_Config_DSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5433", DBUser: "u", DBPassword: "p", DBName: "n", DBSslMode: "require"}

	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=require", cfg.DSN())
}

func Test_Config_SlogLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "loud"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, Config{LogLevel: "WARN"}.SlogLevel())
}
