package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/properties")
	for _, key := range []string{"PORT", "GENAI_API_KEY", "GEOCODER_RPS", "GEOCODER_FANOUT", "CORS_ALLOWED_ORIGINS", "RABBITMQ_ENABLED", "FLUENTBIT_ENABLED", "APP_NAME", "GEOCODER_USER_AGENT"} {
		unsetEnv(t, key)
	}

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "property-service", cfg.AppName)
	assert.Equal(t, "8080", cfg.Rest.PORT)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Rest.CORSAllowedOrigins)
	assert.False(t, cfg.GenAI.Enabled())
	assert.Equal(t, 30*time.Second, cfg.GenAI.Timeout)
	assert.Equal(t, 1.0, cfg.Geocoder.RPS)
	assert.Equal(t, 8, cfg.Geocoder.Fanout)
	assert.Equal(t, "property-service", cfg.Geocoder.UserAgent)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.False(t, cfg.FluentBit.Enabled)
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	unsetEnv(t, "PORT")
	unsetEnv(t, "GEOCODER_TIMEOUT")
	unsetEnv(t, "CORS_ALLOWED_ORIGINS")
	unsetEnv(t, "DATABASE_URL")

	path := filepath.Join(t.TempDir(), ".env")
	content := "DATABASE_URL=postgres://db/properties\nPORT=9090\nGEOCODER_TIMEOUT=2s\nCORS_ALLOWED_ORIGINS=http://a.test, ,http://b.test\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://db/properties", cfg.Database.URL)
	assert.Equal(t, "9090", cfg.Rest.PORT)
	assert.Equal(t, 2*time.Second, cfg.Geocoder.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Rest.CORSAllowedOrigins)
}

func TestLoadConfig_DisablesHalfConfiguredIntegrations(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/properties")
	t.Setenv("RABBITMQ_ENABLED", "true")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("FLUENTBIT_ENABLED", "true")
	t.Setenv("FLUENTBIT_HOST", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.False(t, cfg.FluentBit.Enabled)
}

func TestGetEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "ten")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "soon")
	t.Setenv("X_FLOAT", "fast")

	assert.Equal(t, 3, getEnvAsInt("X_INT", 3))
	assert.True(t, getEnvAsBool("X_BOOL", true))
	assert.Equal(t, time.Minute, getEnvAsDuration("X_DUR", time.Minute))
	assert.Equal(t, 0.5, getEnvAsFloat("X_FLOAT", 0.5))
}

// unsetEnv снимает переменную на время теста и восстанавливает её после
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, ok := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if ok {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}
