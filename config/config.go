// Package config loads the ledgerview configuration: defaults, then an
// optional YAML file, then an optional .env file and the process
// environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/ledgerview"
	"github.com/etnz/ledgerview/date"
	"github.com/etnz/ledgerview/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LEDGERVIEW_"

// Config is the complete ledgerview configuration.
type Config struct {
	Source SourceConfig `yaml:"source"`
	Demo   DemoConfig   `yaml:"demo"`
	Server ServerConfig `yaml:"server"`
	// TimeZone is the IANA name of the location defining "today".
	TimeZone string `yaml:"timezone"`
	LogLevel string `yaml:"log_level"`
}

// SourceConfig configures where ledger lines come from.
type SourceConfig struct {
	// BaseURL of the ledger line service.
	BaseURL    string        `yaml:"base_url"`
	BusinessID string        `yaml:"business_id"`
	Limit      int           `yaml:"limit"`
	Timeout    time.Duration `yaml:"timeout"`
	// Cache keeps responses on disk for the day.
	Cache bool `yaml:"cache"`
	// File, when set, reads lines from a local JSON file instead.
	File string `yaml:"file"`
}

// DemoConfig bounds the dates a demo dataset covers. Both ends are dates or
// RFC3339 timestamps; empty means unbounded.
type DemoConfig struct {
	StartAt string `yaml:"start_at"`
	EndAt   string `yaml:"end_at"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// UnfilteredRollups keeps every account and vendor in the sidebars.
	UnfilteredRollups bool `yaml:"unfiltered_rollups"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			BaseURL: "http://localhost:8000",
			Limit:   5000,
			Timeout: 15 * time.Second,
		},
		Server:   ServerConfig{Addr: ":8080"},
		TimeZone: "Local",
		LogLevel: "info",
	}
}

// Load reads the configuration. path is an optional YAML file and envFile an
// optional .env file; a missing envFile is ignored. Variables of the process
// environment win over the ones of envFile.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	}

	env := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read env file %q: %w", envFile, err)
		default:
			env = m
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}
	if err := cfg.override(env); err != nil {
		return nil, err
	}
	return cfg, nil
}

// override applies LEDGERVIEW_* variables.
func (c *Config) override(env map[string]string) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := env[EnvPrefix+key]; ok {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := env[EnvPrefix+key]; ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}
	str("BASE_URL", &c.Source.BaseURL)
	str("BUSINESS_ID", &c.Source.BusinessID)
	str("FILE", &c.Source.File)
	if v, ok := env[EnvPrefix+"LIMIT"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sLIMIT: %w", EnvPrefix, err))
		} else {
			c.Source.Limit = n
		}
	}
	if v, ok := env[EnvPrefix+"TIMEOUT"]; ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sTIMEOUT: %w", EnvPrefix, err))
		} else {
			c.Source.Timeout = d
		}
	}
	boolean("CACHE", &c.Source.Cache)
	str("START_AT", &c.Demo.StartAt)
	str("END_AT", &c.Demo.EndAt)
	str("ADDR", &c.Server.Addr)
	boolean("UNFILTERED_ROLLUPS", &c.Server.UnfilteredRollups)
	str("TIMEZONE", &c.TimeZone)
	str("LOG_LEVEL", &c.LogLevel)
	return errors.Join(errs...)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Source.File == "" {
		if u, err := url.Parse(c.Source.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("source.base_url %q is not an absolute URL", c.Source.BaseURL))
		}
	}
	if c.Source.Limit < 0 {
		errs = append(errs, fmt.Errorf("source.limit must not be negative"))
	}
	if c.Source.Timeout < 0 {
		errs = append(errs, fmt.Errorf("source.timeout must not be negative"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, _, err := c.Bounds(); err != nil {
		errs = append(errs, err)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Location returns the time zone defining "today".
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Now returns the current time in the configured location.
func (c *Config) Now() time.Time {
	loc, err := c.Location()
	if err != nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}

// Bounds returns the demo dataset bounds. It returns false when no bounds
// are configured.
func (c *Config) Bounds() (date.Range, bool, error) {
	if c.Demo.StartAt == "" && c.Demo.EndAt == "" {
		return date.Range{}, false, nil
	}
	r, err := ledgerview.ParseBounds(c.Demo.StartAt, c.Demo.EndAt)
	if err != nil {
		return date.Range{}, false, fmt.Errorf("invalid demo bounds: %w", err)
	}
	return r, true, nil
}
