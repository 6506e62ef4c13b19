package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"ChannelSnapshot/internal/domain"
)

const (
	defaultTimezone = "UTC"
	dotEnvFile      = ".env"
	configPathEnv   = "CHANNEL_SNAPSHOT_CONFIG"
	apiKeyEnv       = "API_KEY"
	channelIDEnv    = "CHANNEL_ID"
	databaseDSNEnv  = "DATABASE_DSN"
	logLevelEnv     = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	YouTube   YouTubeConfig   `yaml:"youtube"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Ordering  OrderingConfig  `yaml:"ordering"`
	Output    OutputConfig    `yaml:"output"`
	Database  DatabaseConfig  `yaml:"database"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// YouTubeConfig describes the Data API client and the target channel.
type YouTubeConfig struct {
	APIKey    string        `yaml:"apiKey"`
	BaseURL   string        `yaml:"baseUrl"`
	ChannelID string        `yaml:"channelId"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxPages  int           `yaml:"maxPages"`
	PageSize  int           `yaml:"pageSize"`
}

// PipelineConfig tunes snapshot assembly.
type PipelineConfig struct {
	Concurrency  int  `yaml:"concurrency"`
	AllPlaylists bool `yaml:"allPlaylists"`
}

// OrderingConfig points at the externally maintained rank list.
type OrderingConfig struct {
	MappingPath string `yaml:"mappingPath"`
	Strict      bool   `yaml:"strict"`
}

// OutputConfig says where the snapshot artifact goes.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// DatabaseConfig describes the optional Postgres history store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SchedulerConfig defines whether and how often the pipeline re-runs.
type SchedulerConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Interval time.Duration  `yaml:"interval"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// LoggingConfig controls the log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads .env and YAML configuration (if present) and applies environment overrides.
func Load() Config {
	return load(dotEnvFile)
}

func load(dotEnvPath string) Config {
	if err := godotenv.Load(dotEnvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: cannot load %s: %v", dotEnvPath, err)
	}

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

// Validate reports the first missing required setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.YouTube.APIKey) == "" {
		return &domain.ConfigurationError{Field: "youtube.apiKey", Reason: "set " + apiKeyEnv + " or youtube.apiKey"}
	}
	if strings.TrimSpace(c.YouTube.ChannelID) == "" {
		return &domain.ConfigurationError{Field: "youtube.channelId", Reason: "set " + channelIDEnv + " or youtube.channelId"}
	}
	if c.Output.Path == "" {
		return &domain.ConfigurationError{Field: "output.path", Reason: "an output path is required"}
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(apiKeyEnv); v != "" {
		c.YouTube.APIKey = v
	}

	if v := os.Getenv(channelIDEnv); v != "" {
		c.YouTube.ChannelID = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.YouTube.APIKey != "" {
		base.YouTube.APIKey = override.YouTube.APIKey
	}
	if override.YouTube.BaseURL != "" {
		base.YouTube.BaseURL = override.YouTube.BaseURL
	}
	if override.YouTube.ChannelID != "" {
		base.YouTube.ChannelID = override.YouTube.ChannelID
	}
	if override.YouTube.Timeout != 0 {
		base.YouTube.Timeout = override.YouTube.Timeout
	}
	if override.YouTube.MaxPages != 0 {
		base.YouTube.MaxPages = override.YouTube.MaxPages
	}
	if override.YouTube.PageSize != 0 {
		base.YouTube.PageSize = override.YouTube.PageSize
	}

	if override.Pipeline.Concurrency != 0 {
		base.Pipeline.Concurrency = override.Pipeline.Concurrency
	}
	if override.Pipeline.AllPlaylists {
		base.Pipeline.AllPlaylists = true
	}

	if override.Ordering.MappingPath != "" {
		base.Ordering.MappingPath = override.Ordering.MappingPath
	}
	if override.Ordering.Strict {
		base.Ordering.Strict = true
	}

	if override.Output.Path != "" {
		base.Output.Path = override.Output.Path
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Scheduler.Enabled {
		base.Scheduler.Enabled = true
	}
	if override.Scheduler.Interval != 0 {
		base.Scheduler.Interval = override.Scheduler.Interval
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		YouTube: YouTubeConfig{
			BaseURL:  "https://www.googleapis.com/youtube/v3",
			Timeout:  30 * time.Second,
			PageSize: 50,
		},
		Pipeline:  PipelineConfig{Concurrency: 1},
		Ordering:  OrderingConfig{MappingPath: "data/mapping.json"},
		Output:    OutputConfig{Path: "data/youtube.json"},
		Scheduler: SchedulerConfig{Interval: 24 * time.Hour, Timezone: defaultTimezone, location: tz},
		Logging:   LoggingConfig{Level: "info"},
	}
}
