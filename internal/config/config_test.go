package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const sample = `
instrument:
  symbol: AAPL
  start_date: "2020-01-01"
  end_date: "2020-02-01"
data_source:
  provider: barsapi
  base_url: http://localhost:8080
  api_key: secret
  timeout: 5s
chart:
  output: out/aapl.xlsx
schedule:
  refresh_cron: "0 30 22 * * 1-5"
`

func TestLoad_FileAndDefaults(t *testing.T) {
	t.Setenv("HTTPS_PROXY", "")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "AAPL", cfg.Instrument.Symbol)
	assert.Equal(t, "2020-01-01", cfg.Instrument.StartDate)
	assert.Equal(t, "barsapi", cfg.DataSource.Provider)
	assert.Equal(t, 5*time.Second, cfg.DataSource.Timeout)
	assert.Equal(t, "out/aapl.xlsx", cfg.Chart.Output)
	assert.Equal(t, "0 30 22 * * 1-5", cfg.Schedule.RefreshCron)

	assert.Equal(t, 2.0, cfg.DataSource.RequestsPerSecond)
	assert.Equal(t, 1, cfg.DataSource.Burst)
	assert.Equal(t, 20, cfg.Strategy.FastPeriod)
	assert.Equal(t, 50, cfg.Strategy.SlowPeriod)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)

	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATASET_INSTRUMENT_SYMBOL", "MSFT")
	t.Setenv("DATASET_DATA_SOURCE_TIMEOUT", "12s")
	t.Setenv("DATASET_LOGGING_FORMAT", "json")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "MSFT", cfg.Instrument.Symbol)
	assert.Equal(t, 12*time.Second, cfg.DataSource.Timeout)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "2020-01-01", cfg.Instrument.StartDate, "unset variables keep file values")
}

func TestLoad_HTTPSProxy(t *testing.T) {
	t.Setenv("HTTPS_PROXY", "http://proxy.local:3128")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)
	assert.Equal(t, "http://proxy.local:3128", cfg.Proxy)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "yahoo", cfg.DataSource.Provider)
	assert.Error(t, cfg.Validate(), "instrument is required")
}

func TestLoad_ExplicitZerosKept(t *testing.T) {
	t.Setenv("HTTPS_PROXY", "")

	cfg, err := Load(writeConfig(t, sample+`
strategy:
  oversold: 0
  overbought: 80
`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Strategy.Oversold)
	assert.Equal(t, 80.0, cfg.Strategy.Overbought)
	assert.Equal(t, 20, cfg.Strategy.FastPeriod, "unset fields keep their defaults")
	require.NoError(t, cfg.Validate())
}

func TestLoad_ZeroPeriodRejected(t *testing.T) {
	t.Setenv("HTTPS_PROXY", "")

	cfg, err := Load(writeConfig(t, sample+`
strategy:
  fast_period: 0
`))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Strategy.FastPeriod)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FastPeriod")
}

func TestLoad_EnvZeroOverridesDefault(t *testing.T) {
	t.Setenv("HTTPS_PROXY", "")
	t.Setenv("DATASET_STRATEGY_OVERSOLD", "0")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Strategy.Oversold)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "instrument: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate(t *testing.T) {
	t.Setenv("HTTPS_PROXY", "")
	base := func() *Config {
		cfg, err := Load(writeConfig(t, sample))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{name: "unknown provider", mutate: func(c *Config) { c.DataSource.Provider = "bloomberg" }, errSub: "Provider"},
		{name: "barsapi without url", mutate: func(c *Config) { c.DataSource.BaseURL = "" }, errSub: "base_url"},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, errSub: "Level"},
		{name: "fast not below slow", mutate: func(c *Config) { c.Strategy.FastPeriod = 60 }, errSub: "SlowPeriod"},
		{name: "bands reversed", mutate: func(c *Config) { c.Strategy.Oversold = 80 }, errSub: "Overbought"},
		{name: "unknown strategy", mutate: func(c *Config) { c.Strategy.Name = "martingale" }, errSub: "Name"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errSub)
		})
	}
}
