package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/newthinker/scorecard/internal/core"
	"github.com/spf13/viper"
)

// MaxPeers is the hard cap on peers compared per analysis.
const MaxPeers = 5

type Config struct {
	// Source names the registered financials source to score with.
	Source  string        `mapstructure:"source"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Yahoo   YahooConfig   `mapstructure:"yahoo"`
	Finviz  FinvizConfig  `mapstructure:"finviz"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// YahooConfig holds the financial data provider settings.
type YahooConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	CookieURL string        `mapstructure:"cookie_url"`
	CrumbURL  string        `mapstructure:"crumb_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// FinvizConfig holds the peer lookup settings.
type FinvizConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
	MaxPeers  int           `mapstructure:"max_peers"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file on top of Defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides, e.g. SCORECARD_SERVER_PORT
	v.SetEnvPrefix("SCORECARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Source: "yahoo",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
		},
		Yahoo: YahooConfig{
			BaseURL:   "https://query2.finance.yahoo.com/v10/finance/quoteSummary",
			CookieURL: "https://fc.yahoo.com",
			CrumbURL:  "https://query2.finance.yahoo.com/v1/test/getcrumb",
			UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			Timeout:   10 * time.Second,
		},
		Finviz: FinvizConfig{
			BaseURL:   "https://finviz.com/quote.ashx",
			UserAgent: "Mozilla/5.0",
			Timeout:   10 * time.Second,
			MaxPeers:  MaxPeers,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if c.Source == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("source is required"))
	}

	if c.Yahoo.BaseURL == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("yahoo base_url is required"))
	}
	if c.Finviz.BaseURL == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("finviz base_url is required"))
	}

	if c.Yahoo.Timeout <= 0 || c.Finviz.Timeout <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("timeouts must be positive"))
	}

	if c.Finviz.MaxPeers < 0 || c.Finviz.MaxPeers > MaxPeers {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("max_peers must be between 0 and %d, got %d", MaxPeers, c.Finviz.MaxPeers))
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("metrics path must start with /, got %q", c.Metrics.Path))
	}

	return nil
}
