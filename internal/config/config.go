// Package config loads settings from an optional config.yaml and WIMBLEDON_*
// environment variables.
package config

import (
	"os"
	"strings"
	"time"
	_ "time/tzdata" // schedule.timezone must resolve without system zoneinfo

	"github.com/robfig/cron/v3"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pfrederiksen/wimbledon-finals/internal/logger"
	"github.com/pfrederiksen/wimbledon-finals/internal/notifier"
	"github.com/pfrederiksen/wimbledon-finals/internal/scraper"
	"github.com/pfrederiksen/wimbledon-finals/internal/storage"
)

// Config is the top-level application configuration.
type Config struct {
	Source   SourceConfig   `yaml:"source" mapstructure:"source"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Schedule ScheduleConfig `yaml:"schedule" mapstructure:"schedule"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Notify   NotifyConfig   `yaml:"notify" mapstructure:"notify"`
}

// SourceConfig controls fetching of the results page.
type SourceConfig struct {
	URL             string `yaml:"url" mapstructure:"url"`
	UserAgent       string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs     int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MinIntervalSecs int    `yaml:"min_interval_secs" mapstructure:"min_interval_secs"`
}

// StoreConfig selects the persistence engine.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	Database    string `yaml:"database" mapstructure:"database"`
	Collection  string `yaml:"collection" mapstructure:"collection"`
}

// ServerConfig holds read API settings.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// ScheduleConfig holds the refresh schedule used by serve.
type ScheduleConfig struct {
	Cron     string `yaml:"cron" mapstructure:"cron"`
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// NotifyConfig selects how new current-year finals are announced.
type NotifyConfig struct {
	Driver   string         `yaml:"driver" mapstructure:"driver"`
	Twitter  TwitterConfig  `yaml:"twitter" mapstructure:"twitter"`
	Telegram TelegramConfig `yaml:"telegram" mapstructure:"telegram"`
}

// TwitterConfig holds OAuth1 user-context credentials.
type TwitterConfig struct {
	APIKey       string `yaml:"api_key" mapstructure:"api_key"`
	APISecret    string `yaml:"api_secret" mapstructure:"api_secret"`
	AccessToken  string `yaml:"access_token" mapstructure:"access_token"`
	AccessSecret string `yaml:"access_secret" mapstructure:"access_secret"`
}

// TelegramConfig holds bot credentials and the target chat.
type TelegramConfig struct {
	Token  string `yaml:"token" mapstructure:"token"`
	ChatID int64  `yaml:"chat_id" mapstructure:"chat_id"`
}

// Load reads configuration from config.yaml (if present) and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WIMBLEDON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names kept for existing deployments
	for key, legacy := range map[string]string{
		"store.database_url":           "MONGODB_URI",
		"notify.twitter.api_key":       "TWITTER_API_KEY",
		"notify.twitter.api_secret":    "TWITTER_API_SECRET",
		"notify.twitter.access_token":  "TWITTER_ACCESS_TOKEN",
		"notify.twitter.access_secret": "TWITTER_ACCESS_SECRET",
		"notify.telegram.token":        "TELEGRAM_BOT_TOKEN",
		"notify.telegram.chat_id":      "TELEGRAM_CHAT_ID",
	} {
		envKey := "WIMBLEDON_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, legacy); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", key)
		}
	}

	// Defaults
	v.SetDefault("source.url", scraper.SourceURL)
	v.SetDefault("source.user_agent", scraper.UserAgent)
	v.SetDefault("source.timeout_secs", int(scraper.Timeout/time.Second))
	v.SetDefault("source.min_interval_secs", 0)
	v.SetDefault("store.driver", storage.DriverFile)
	v.SetDefault("store.path", "")
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.database", storage.DefaultDatabase)
	v.SetDefault("store.collection", storage.DefaultCollection)
	v.SetDefault("server.port", 8080)
	v.SetDefault("schedule.cron", "0 6 * * *")
	v.SetDefault("schedule.timezone", "Europe/London")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logger.FormatJSON)
	v.SetDefault("notify.driver", notifier.DriverNone)
	v.SetDefault("notify.twitter.api_key", "")
	v.SetDefault("notify.twitter.api_secret", "")
	v.SetDefault("notify.twitter.access_token", "")
	v.SetDefault("notify.twitter.access_secret", "")
	v.SetDefault("notify.telegram.token", "")
	v.SetDefault("notify.telegram.chat_id", 0)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks cross-field constraints that defaults cannot guarantee.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case storage.DriverMemory, storage.DriverFile, storage.DriverSQLite:
	case storage.DriverPostgres, storage.DriverMongo:
		if c.Store.DatabaseURL == "" {
			return eris.Errorf("config: store.database_url is required for the %s driver", c.Store.Driver)
		}
	default:
		return eris.Errorf("config: unknown store.driver %q", c.Store.Driver)
	}

	if c.Source.URL == "" {
		return eris.New("config: source.url is required")
	}
	if c.Source.TimeoutSecs <= 0 {
		return eris.New("config: source.timeout_secs must be positive")
	}
	if c.Source.MinIntervalSecs < 0 {
		return eris.New("config: source.min_interval_secs must not be negative")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return eris.Errorf("config: server.port %d out of range", c.Server.Port)
	}

	if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
		return eris.Wrapf(err, "config: invalid schedule.cron %q", c.Schedule.Cron)
	}
	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return eris.Wrapf(err, "config: invalid schedule.timezone %q", c.Schedule.Timezone)
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return eris.Wrap(err, "config: invalid log.level")
	}
	if c.Log.Format != logger.FormatJSON && c.Log.Format != logger.FormatConsole {
		return eris.Errorf("config: unknown log.format %q", c.Log.Format)
	}

	switch c.Notify.Driver {
	case "", notifier.DriverNone, notifier.DriverDryRun:
	case notifier.DriverTwitter:
		t := c.Notify.Twitter
		if t.APIKey == "" || t.APISecret == "" || t.AccessToken == "" || t.AccessSecret == "" {
			return eris.New("config: twitter notifier requires all four notify.twitter credentials")
		}
	case notifier.DriverTelegram:
		if c.Notify.Telegram.Token == "" || c.Notify.Telegram.ChatID == 0 {
			return eris.New("config: telegram notifier requires notify.telegram.token and chat_id")
		}
	default:
		return eris.Errorf("config: unknown notify.driver %q", c.Notify.Driver)
	}

	return nil
}

// ScraperConfig returns the fetcher settings.
func (c *Config) ScraperConfig() scraper.Config {
	return scraper.Config{
		URL:         c.Source.URL,
		UserAgent:   c.Source.UserAgent,
		Timeout:     time.Duration(c.Source.TimeoutSecs) * time.Second,
		MinInterval: time.Duration(c.Source.MinIntervalSecs) * time.Second,
	}
}

// StorageConfig returns the engine settings.
func (c *Config) StorageConfig() storage.Config {
	return storage.Config{
		Driver:      c.Store.Driver,
		Path:        c.Store.Path,
		DatabaseURL: c.Store.DatabaseURL,
		Database:    c.Store.Database,
		Collection:  c.Store.Collection,
	}
}

// NotifierConfig returns the announcement settings.
func (c *Config) NotifierConfig() notifier.Config {
	return notifier.Config{
		Driver: c.Notify.Driver,
		Twitter: notifier.TwitterCredentials{
			APIKey:       c.Notify.Twitter.APIKey,
			APISecret:    c.Notify.Twitter.APISecret,
			AccessToken:  c.Notify.Twitter.AccessToken,
			AccessSecret: c.Notify.Twitter.AccessSecret,
		},
		TelegramToken:  c.Notify.Telegram.Token,
		TelegramChatID: c.Notify.Telegram.ChatID,
	}
}

// Location returns the schedule time zone, UTC when it cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// InitLogger builds the application logger, installs it as the package default
// and replaces the zap globals.
func InitLogger(cfg LogConfig) (*logger.Logger, error) {
	level, err := logger.ParseLevel(cfg.Level)
	if err != nil {
		return nil, eris.Wrap(err, "config: parse log level")
	}

	l := logger.New(level, cfg.Format, os.Stderr)
	logger.SetDefault(l)
	zap.ReplaceGlobals(l.Zap())

	return l, nil
}
