package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"CMC_API_KEY", "CMC_BASE_URL", "HTTPS_PROXY", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
		"SQLITE_PATH", "LOG_LEVEL", "PORT", "POLL_INTERVAL_SEC",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.PollInterval())
	assert.Zero(t, cfg.RequestTimeout())
	assert.Equal(t, "https://pro-api.coinmarketcap.com", cfg.DataSource.BaseURL)
	require.Len(t, cfg.Assets, 3)
	assert.Equal(t, "SOL", cfg.Assets[2].Symbol)
	assert.Equal(t, "Solana", cfg.Assets[2].Name)

	// No key anywhere: startup must refuse to run.
	assert.Error(t, cfg.Validate())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
server:
  port: 9000
data_source:
  api_key: from-file
  timeout_sec: 10
poll:
  interval_sec: 30
assets:
  - symbol: doge
  - symbol: BTC
    name: Bitcoin
log:
  format: json
`)
	t.Setenv("CMC_API_KEY", "from-env")
	t.Setenv("PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "from-env", cfg.DataSource.APIKey)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.PollInterval())
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout())
	require.Len(t, cfg.Assets, 2)
	assert.Equal(t, "DOGE", cfg.Assets[0].Symbol)
	assert.Equal(t, "DOGE", cfg.Assets[0].Name)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "eighty")
	_, err := Load("nope.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeFile(t, "bad.yaml", "server: [1, 2"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	t.Setenv("CMC_API_KEY", "k")
	base := func() *Config {
		cfg, err := Load("nope.yaml")
		require.NoError(t, err)
		return cfg
	}
	require.NoError(t, base().Validate())

	cfg := base()
	cfg.Telegram.BotToken = "only-token"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Assets = append(cfg.Assets, cfg.Assets[0])
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), ".env")))

	path := writeFile(t, ".env", "CMC_API_KEY=dotenv-key\n")
	os.Unsetenv("CMC_API_KEY")
	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "dotenv-key", os.Getenv("CMC_API_KEY"))
}
