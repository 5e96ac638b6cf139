package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigContent = `
[development]
host = "localhost"
port = 9000
log_level = "trace"
log_to_stdout = true
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "vaad_horim"
redis_host = "localhost"
redis_port = "6379"
prometheus_metrics_host = "localhost"
prometheus_metrics_port = "2112"
login_rate_limit_allowed_per_min = 5
feedback_rate_limit_per_min = 10
assistant_model = "gpt-4o-mini"
assistant_daily_cap = 50
secure_cookies = false

[production]
host = ""
port = 9000
log_level = "debug"
logs_path = "/var/log/vaad-portal/service.log"
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "vaad_horim"
redis_host = "localhost"
redis_port = "6379"
prometheus_metrics_host = "localhost"
prometheus_metrics_port = "2112"
login_rate_limit_allowed_per_min = 5
feedback_rate_limit_per_min = 10
assistant_model = "gpt-4o-mini"
assistant_daily_cap = 50
sentry_enabled = true
secure_cookies = true
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigContent), 0o600))
	return path
}

func TestLoad_Development(t *testing.T) {
	cfg, err := Load("development", writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "vaad_horim", cfg.PostgresDBName)
	assert.Equal(t, 50, cfg.AssistantDailyCap)
	assert.False(t, cfg.SecureCookies)
}

func TestLoad_Production(t *testing.T) {
	cfg, err := Load("prod", writeTestConfig(t))
	require.NoError(t, err)

	assert.True(t, cfg.SentryEnabled)
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, "/var/log/vaad-portal/service.log", cfg.LogsPath)
}

func TestLoad_UnknownEnv(t *testing.T) {
	cfg, err := Load("staging", writeTestConfig(t))
	require.Error(t, err)
	assert.Nil(t, cfg)
}
