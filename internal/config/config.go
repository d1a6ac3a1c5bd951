// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gpuradar/gpuradar/internal/fetch"
	"github.com/gpuradar/gpuradar/internal/filter"
	"github.com/gpuradar/gpuradar/internal/pipeline"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Scraper   ScraperConfig   `mapstructure:"scraper"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Proxy     ProxyConfig     `mapstructure:"proxy"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Filter    FilterConfig    `mapstructure:"filter"`
	DB        DBConfig        `mapstructure:"db"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ScraperConfig bounds one ingestion run.
type ScraperConfig struct {
	SearchTerms      []string `mapstructure:"search_terms"`
	MaxPages         int      `mapstructure:"max_pages"`
	AllPages         bool     `mapstructure:"all_pages"`
	EmptyPageCutoff  int      `mapstructure:"empty_page_cutoff"`
	PageDelaySeconds int      `mapstructure:"page_delay_seconds"`
}

// FetchConfig controls HTTP behavior and retries.
type FetchConfig struct {
	UserAgents         []string `mapstructure:"user_agents"`
	TimeoutSeconds     int      `mapstructure:"timeout_seconds"`
	HumanDelayMinMs    int      `mapstructure:"human_delay_min_ms"`
	HumanDelayMaxMs    int      `mapstructure:"human_delay_max_ms"`
	MaxRetries         int      `mapstructure:"max_retries"`
	RetryBaseSeconds   int      `mapstructure:"retry_base_seconds"`
	RetryBackoffFactor float64  `mapstructure:"retry_backoff_factor"`
	RetryMaxSeconds    int      `mapstructure:"retry_max_seconds"`
}

// ProxyConfig selects outbound routing.
type ProxyConfig struct {
	Mode string   `mapstructure:"mode"`
	URLs []string `mapstructure:"urls"`
	// TorControlPorts are tried in order when rotating circuits.
	TorControlPorts []int `mapstructure:"tor_control_ports"`
}

// RateLimitConfig caps request frequency against the marketplace.
type RateLimitConfig struct {
	MaxCalls      int `mapstructure:"max_calls"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

// FilterConfig tunes the statistical cleaning pass.
type FilterConfig struct {
	LowFactor     float64 `mapstructure:"low_factor"`
	HighFactor    float64 `mapstructure:"high_factor"`
	HighEnabled   bool    `mapstructure:"high_enabled"`
	MinSampleSize int     `mapstructure:"min_sample_size"`
	AbsoluteFloor float64 `mapstructure:"absolute_floor"`
}

// DBConfig controls access to the relational database. An empty DSN
// disables persistence; results are only logged.
type DBConfig struct {
	DSN string `mapstructure:"dsn"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GPURADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scraper.search_terms", []string{"видео карта", "rtx", "gtx", "radeon rx"})
	v.SetDefault("scraper.max_pages", 3)
	v.SetDefault("scraper.all_pages", false)
	v.SetDefault("scraper.empty_page_cutoff", 3)
	v.SetDefault("scraper.page_delay_seconds", 10)
	v.SetDefault("fetch.timeout_seconds", 30)
	v.SetDefault("fetch.human_delay_min_ms", 2000)
	v.SetDefault("fetch.human_delay_max_ms", 5000)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.retry_base_seconds", 15)
	v.SetDefault("fetch.retry_backoff_factor", 2.0)
	v.SetDefault("fetch.retry_max_seconds", 120)
	v.SetDefault("proxy.mode", string(fetch.ProxyNone))
	v.SetDefault("proxy.tor_control_ports", []int{9051, 9151})
	v.SetDefault("rate_limit.max_calls", 10)
	v.SetDefault("rate_limit.window_seconds", 60)
	v.SetDefault("filter.low_factor", 0.50)
	v.SetDefault("filter.high_factor", 3.0)
	v.SetDefault("filter.high_enabled", true)
	v.SetDefault("filter.min_sample_size", 3)
	v.SetDefault("filter.absolute_floor", 50)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if len(c.Scraper.SearchTerms) == 0 {
		return fmt.Errorf("scraper.search_terms must not be empty")
	}
	if !c.Scraper.AllPages && c.Scraper.MaxPages <= 0 {
		return fmt.Errorf("scraper.max_pages must be > 0")
	}
	if c.Scraper.EmptyPageCutoff <= 0 {
		return fmt.Errorf("scraper.empty_page_cutoff must be > 0")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be > 0")
	}
	if c.Fetch.HumanDelayMaxMs < c.Fetch.HumanDelayMinMs {
		return fmt.Errorf("fetch.human_delay_max_ms must be >= fetch.human_delay_min_ms")
	}
	switch fetch.ProxyMode(c.Proxy.Mode) {
	case fetch.ProxyNone, fetch.ProxyTor:
	case fetch.ProxyList:
		if len(c.Proxy.URLs) == 0 {
			return fmt.Errorf("proxy.urls must not be empty in list mode")
		}
	default:
		return fmt.Errorf("proxy.mode must be one of none, tor, list")
	}
	if c.RateLimit.MaxCalls <= 0 || c.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate_limit.max_calls and rate_limit.window_seconds must be > 0")
	}
	if c.Filter.LowFactor <= 0 || c.Filter.LowFactor >= 1 {
		return fmt.Errorf("filter.low_factor must be in (0, 1)")
	}
	if c.Filter.HighEnabled && c.Filter.HighFactor <= 1 {
		return fmt.Errorf("filter.high_factor must be > 1")
	}
	if c.Filter.MinSampleSize <= 0 {
		return fmt.Errorf("filter.min_sample_size must be > 0")
	}
	return nil
}

// FetchSettings converts the raw knobs into the fetch package config.
func (c Config) FetchSettings() fetch.Config {
	return fetch.Config{
		UserAgents:    c.Fetch.UserAgents,
		Timeout:       time.Duration(c.Fetch.TimeoutSeconds) * time.Second,
		HumanDelayMin: time.Duration(c.Fetch.HumanDelayMinMs) * time.Millisecond,
		HumanDelayMax: time.Duration(c.Fetch.HumanDelayMaxMs) * time.Millisecond,
		ProxyMode:     fetch.ProxyMode(c.Proxy.Mode),
		ProxyURLs:     c.Proxy.URLs,
		Retry: fetch.RetryPolicy{
			MaxRetries:    c.Fetch.MaxRetries,
			BaseDelay:     time.Duration(c.Fetch.RetryBaseSeconds) * time.Second,
			BackoffFactor: c.Fetch.RetryBackoffFactor,
			MaxDelay:      time.Duration(c.Fetch.RetryMaxSeconds) * time.Second,
		},
	}
}

// FilterSettings converts the raw knobs into the filter package config.
func (c Config) FilterSettings() filter.Config {
	return filter.Config{
		LowFactor:     c.Filter.LowFactor,
		HighFactor:    c.Filter.HighFactor,
		HighEnabled:   c.Filter.HighEnabled,
		MinSampleSize: c.Filter.MinSampleSize,
		AbsoluteFloor: c.Filter.AbsoluteFloor,
	}
}

// PipelineOptions converts the raw knobs into run options.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		SearchTerms:     c.Scraper.SearchTerms,
		MaxPages:        c.Scraper.MaxPages,
		AllPages:        c.Scraper.AllPages,
		EmptyPageCutoff: c.Scraper.EmptyPageCutoff,
		PageDelay:       time.Duration(c.Scraper.PageDelaySeconds) * time.Second,
	}
}

// RateLimiterSettings returns the limiter parameters.
func (c Config) RateLimiterSettings() (int, time.Duration) {
	return c.RateLimit.MaxCalls, time.Duration(c.RateLimit.WindowSeconds) * time.Second
}
