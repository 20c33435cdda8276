package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/viper"
)

// FlagPrefix prefix of every persisted bridge setting
const FlagPrefix = "bridge.config."

// Capture flag keys
const (
	FlagProductEvents       = "enableProductEvents"
	FlagCategoryEvents      = "enableCategoryEvents"
	FlagTaxEvents           = "enableTaxEvents"
	FlagCurrencyEvents      = "enableCurrencyEvents"
	FlagManufacturerEvents  = "enableManufacturerEvents"
	FlagSalesChannelEvents  = "enableSalesChannelEvents"
	FlagRuleEvents          = "enableRuleEvents"
	FlagUnitEvents          = "enableUnitEvents"
	FlagDeliveryTimeEvents  = "enableDeliveryTimeEvents"
	FlagTagEvents           = "enableTagEvents"
	FlagPropertyGroupEvents = "enablePropertyGroupEvents"
	FlagMediaEvents         = "enableMediaEvents"
	FlagDebugLogging        = "enableDebugLogging"
)

// CaptureFlags every entity capture flag, all enabled by default
var CaptureFlags = []string{
	FlagProductEvents,
	FlagCategoryEvents,
	FlagTaxEvents,
	FlagCurrencyEvents,
	FlagManufacturerEvents,
	FlagSalesChannelEvents,
	FlagRuleEvents,
	FlagUnitEvents,
	FlagDeliveryTimeEvents,
	FlagTagEvents,
	FlagPropertyGroupEvents,
	FlagMediaEvents,
}

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	GRPC     GRPCConfig     `mapstructure:"grpc"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Settings SettingsConfig `mapstructure:"settings"`
	Redis    RedisConfig    `mapstructure:"redis"`
	HostDB   HostDBConfig   `mapstructure:"hostdb"`
	NATS     NATSConfig     `mapstructure:"nats"`
	Notifier NotifierConfig `mapstructure:"notifier"`
	Shop     ShopConfig     `mapstructure:"shop"`
	Capture  CaptureConfig  `mapstructure:"capture"`
	Identity IdentityConfig `mapstructure:"identity"`
	Feed     FeedConfig     `mapstructure:"feed"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	BasePath string `mapstructure:"base_path"`
}

type GRPCConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, or file path
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres, sqlite
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslmode"`
	Path            string        `mapstructure:"path"` // sqlite file
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type SettingsConfig struct {
	Backend string `mapstructure:"backend"` // database, redis
}

type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// HostDBConfig connection to the host platform database (integration registry, association tables)
type HostDBConfig struct {
	URL     string `mapstructure:"url"`
	Listen  bool   `mapstructure:"listen"`
	Channel string `mapstructure:"channel"`
}

type NATSConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	URL           string `mapstructure:"url"`
	Name          string `mapstructure:"name"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
	QueueGroup    string `mapstructure:"queue_group"`
}

type NotifierConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	DebugLogging   bool          `mapstructure:"debug_logging"`
	Secret         string        `mapstructure:"secret"`
	Async          AsyncConfig   `mapstructure:"async"`
}

type AsyncConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	Workers   int  `mapstructure:"workers"`
	QueueSize int  `mapstructure:"queue_size"`
}

type ShopConfig struct {
	URL             string `mapstructure:"url"`
	SoftwareVersion string `mapstructure:"software_version"`
}

type CaptureConfig struct {
	// Flags keys are lower-cased by viper; use FlagManager for lookups.
	Flags           map[string]bool `mapstructure:"flags"`
	RefreshInterval time.Duration   `mapstructure:"refresh_interval"`
}

type IdentityConfig struct {
	Label       string        `mapstructure:"label"`
	NegativeTTL time.Duration `mapstructure:"negative_ttl"`
}

type FeedConfig struct {
	PollInterval     time.Duration `mapstructure:"poll_interval"`
	SubscriberBuffer int           `mapstructure:"subscriber_buffer"`
}

// Load reads the config file at configPath and overlays BRIDGE_* environment variables.
// A missing file is not an error; defaults and the environment still apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "change-bridge")
	v.SetDefault("app.version", "1.0.50")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8081)
	v.SetDefault("server.base_path", "")
	v.SetDefault("grpc.enabled", true)
	v.SetDefault("grpc.host", "0.0.0.0")
	v.SetDefault("grpc.port", 9091)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "change-bridge.db")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("settings.backend", "database")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "change-bridge:")
	v.SetDefault("hostdb.url", "")
	v.SetDefault("hostdb.listen", false)
	v.SetDefault("hostdb.channel", "entity_changes")
	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://127.0.0.1:4222")
	v.SetDefault("nats.name", "change-bridge")
	v.SetDefault("nats.subject_prefix", "shop.entity")
	v.SetDefault("nats.queue_group", "change-bridge")
	v.SetDefault("notifier.base_url", "")
	v.SetDefault("notifier.secret", "")
	v.SetDefault("notifier.debug_logging", false)
	v.SetDefault("notifier.timeout", "5s")
	v.SetDefault("notifier.connect_timeout", "2s")
	v.SetDefault("notifier.async.enabled", false)
	v.SetDefault("notifier.async.workers", 4)
	v.SetDefault("notifier.async.queue_size", 1024)
	v.SetDefault("shop.url", "localhost")
	v.SetDefault("shop.software_version", "unknown")
	v.SetDefault("capture.refresh_interval", "30s")
	for _, flag := range CaptureFlags {
		v.SetDefault("capture.flags."+flag, true)
	}
	v.SetDefault("identity.label", "cobby")
	v.SetDefault("identity.negative_ttl", "1m")
	v.SetDefault("feed.poll_interval", "1s")
	v.SetDefault("feed.subscriber_buffer", 64)
}

// Validate checks the values the server cannot run without.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" || c.Database.Database == "" {
			return fmt.Errorf("database: host and database are required for postgres")
		}
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database: path is required for sqlite")
		}
	default:
		return fmt.Errorf("database: unsupported driver %q", c.Database.Driver)
	}

	switch c.Settings.Backend {
	case "database", "redis":
	default:
		return fmt.Errorf("settings: unsupported backend %q", c.Settings.Backend)
	}

	if c.Server.Port <= 0 {
		return fmt.Errorf("server: port must be positive")
	}
	if c.GRPC.Enabled && c.GRPC.Port <= 0 {
		return fmt.Errorf("grpc: port must be positive")
	}
	if c.Notifier.Timeout <= 0 || c.Notifier.ConnectTimeout <= 0 {
		return fmt.Errorf("notifier: timeouts must be positive")
	}
	if c.Notifier.ConnectTimeout > c.Notifier.Timeout {
		return fmt.Errorf("notifier: connect_timeout must not exceed timeout")
	}
	if c.Notifier.Async.Enabled && (c.Notifier.Async.Workers <= 0 || c.Notifier.Async.QueueSize <= 0) {
		return fmt.Errorf("notifier: async workers and queue_size must be positive")
	}
	if c.Identity.Label == "" {
		return fmt.Errorf("identity: label is required")
	}

	if _, err := semver.NewVersion(c.App.Version); err != nil {
		return fmt.Errorf("app: invalid version %q: %w", c.App.Version, err)
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
