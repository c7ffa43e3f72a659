package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight-netback/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.02, cfg.Netback.LocalRate)
	assert.Equal(t, CountryOrderSorted, cfg.Catalog.CountryOrder)
	assert.Equal(t, "cli", cfg.Output.Format)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownDuration())
}

func TestParseHCL(t *testing.T) {
	src := []byte(`
dataset {
  path = "rates.csv"
}

netback {
  local_rate = 0.05
}

catalog {
  country_order = "first_seen"
}

server {
  addr            = ":9090"
  allowed_origins = ["https://rates.example.com"]
}
`)

	cfg, err := Parse("netback.hcl", src)
	require.NoError(t, err)

	assert.Equal(t, "rates.csv", cfg.Dataset.Path)
	assert.Equal(t, 0.05, cfg.Netback.LocalRate)
	assert.Equal(t, CountryOrderFirstSeen, cfg.Catalog.CountryOrder)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"https://rates.example.com"}, cfg.Server.AllowedOrigins)

	// untouched blocks keep their defaults
	assert.Equal(t, 64, cfg.Server.MaxSessions)
	assert.Equal(t, "cli", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestParseJSON(t *testing.T) {
	src := []byte(`{"output": {"format": "json", "no_color": true}, "logging": {"level": "debug"}}`)

	cfg, err := Parse("netback.json", src)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.NoColor)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "negative local rate", src: `netback { local_rate = -1 }`},
		{name: "unknown country order", src: `catalog { country_order = "random" }`},
		{name: "unknown format", src: `output { format = "xml" }`},
		{name: "bad shutdown timeout", src: `server { shutdown_timeout = "soon" }`},
		{name: "unknown attribute", src: `netback { divisor = 1 }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("netback.hcl", []byte(tt.src))
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeConfig))
		})
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Addr, cfg.Server.Addr)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("NETBACK_DATASET_PATH", "/data/rates.xlsx")
	t.Setenv("NETBACK_CALC_LOCAL_RATE", "0.03")
	t.Setenv("NETBACK_LOG_LEVEL", "warn")
	t.Setenv("NETBACK_SERVER_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/data/rates.xlsx", cfg.Dataset.Path)
	assert.Equal(t, 0.03, cfg.Netback.LocalRate)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoadIgnoresUnprefixedEnvironment(t *testing.T) {
	t.Setenv("PATH", "/usr/bin:/bin")
	t.Setenv("FORMAT", "yaml")
	t.Setenv("LEVEL", "debug")
	t.Setenv("ADDR", ":1")
	t.Setenv("OUTPUT", "stdout")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Dataset.Path)
	assert.Equal(t, "cli", cfg.Output.Format)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadSplitWordKeys(t *testing.T) {
	t.Setenv("NETBACK_SERVER_MAX_UPLOAD_MB", "5")
	t.Setenv("NETBACK_OUTPUT_NO_COLOR", "true")
	t.Setenv("NETBACK_CATALOG_COUNTRY_ORDER", "first_seen")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, int64(5<<20), cfg.Server.MaxUploadBytes())
	assert.True(t, cfg.Output.NoColor)
	assert.Equal(t, CountryOrderFirstSeen, cfg.Catalog.CountryOrder)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "netback.json")

	cfg := Default()
	cfg.Dataset.Path = "rates.csv"
	cfg.Netback.LocalRate = 0.04
	require.NoError(t, cfg.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGlobalConfig(t *testing.T) {
	prev := Get()
	defer Set(prev)

	cfg := Default()
	cfg.Server.Addr = ":1234"
	Set(cfg)
	assert.Equal(t, ":1234", Get().Server.Addr)
}
