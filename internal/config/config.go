package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. DATASET_INSTRUMENT_SYMBOL.
// Keys come from the field names split on word boundaries.
const EnvPrefix = "DATASET"

// Config holds all application configuration.
type Config struct {
	Instrument InstrumentConfig `yaml:"instrument" split_words:"true"`
	DataSource DataSourceConfig `yaml:"data_source" split_words:"true"`
	Chart      ChartConfig      `yaml:"chart" split_words:"true"`
	Strategy   StrategyConfig   `yaml:"strategy" split_words:"true"`
	Schedule   ScheduleConfig   `yaml:"schedule" split_words:"true"`
	Logging    LoggingConfig    `yaml:"logging" split_words:"true"`
	Proxy      string           `yaml:"proxy" split_words:"true" validate:"omitempty,url"`
}

// InstrumentConfig names the dataset to build.
type InstrumentConfig struct {
	Symbol    string `yaml:"symbol" split_words:"true" validate:"required"`
	StartDate string `yaml:"start_date" split_words:"true" validate:"required"`
	EndDate   string `yaml:"end_date" split_words:"true" validate:"required"`
}

// DataSourceConfig selects and tunes the market-data provider.
type DataSourceConfig struct {
	Provider          string        `yaml:"provider" split_words:"true" validate:"oneof=yahoo barsapi synthetic"`
	BaseURL           string        `yaml:"base_url" split_words:"true" validate:"omitempty,url"`
	APIKey            string        `yaml:"api_key" split_words:"true"`
	Timeout           time.Duration `yaml:"timeout" split_words:"true" validate:"gt=0"`
	RequestsPerSecond float64       `yaml:"requests_per_second" split_words:"true" validate:"gt=0"`
	Burst             int           `yaml:"burst" split_words:"true" validate:"gte=1"`
}

// ChartConfig controls the optional workbook export.
type ChartConfig struct {
	Output string `yaml:"output" split_words:"true"`
}

// StrategyConfig picks the signal generator run over the dataset.
type StrategyConfig struct {
	Name       string  `yaml:"name" split_words:"true" validate:"omitempty,oneof=sma_cross rsi"`
	FastPeriod int     `yaml:"fast_period" split_words:"true" validate:"gte=1"`
	SlowPeriod int     `yaml:"slow_period" split_words:"true" validate:"gtfield=FastPeriod"`
	RSIPeriod  int     `yaml:"rsi_period" split_words:"true" validate:"gte=1"`
	Oversold   float64 `yaml:"oversold" split_words:"true" validate:"gte=0,lte=100"`
	Overbought float64 `yaml:"overbought" split_words:"true" validate:"gtfield=Oversold,lte=100"`
}

// ScheduleConfig enables periodic refreshes. Cron specs carry a seconds field.
type ScheduleConfig struct {
	RefreshCron string `yaml:"refresh_cron" split_words:"true"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `yaml:"level" split_words:"true" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" split_words:"true" validate:"oneof=text json"`
}

// Default returns the configuration used before the file and environment are
// applied. Values set explicitly, zeros included, replace these.
func Default() *Config {
	return &Config{
		DataSource: DataSourceConfig{
			Provider:          "yahoo",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 2,
			Burst:             1,
		},
		Strategy: StrategyConfig{
			FastPeriod: 20,
			SlowPeriod: 50,
			RSIPeriod:  14,
			Oversold:   30,
			Overbought: 70,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load starts from Default, overlays the YAML file, then applies environment
// variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" && cfg.Proxy == "" {
		cfg.Proxy = v
	}
	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: %s failed %q validation", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	if c.DataSource.Provider == "barsapi" && c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.base_url is required for the barsapi provider")
	}
	return nil
}
