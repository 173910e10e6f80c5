package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "RESTO_ADMIN"

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Log      LogConfig      `mapstructure:"log"`
	Platform PlatformConfig `mapstructure:"platform"`
	DB       DBConfig       `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Session  SessionConfig  `mapstructure:"session"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Rate     RateConfig     `mapstructure:"rate"`
}

type HTTPConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Production bool   `mapstructure:"production"`
}

// PlatformConfig points at the remote platform REST API that owns all records.
type PlatformConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryCount int           `mapstructure:"retry_count"`
}

type DBConfig struct {
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SSLMode    string `mapstructure:"sslmode"`
	MaxRetries int    `mapstructure:"max_retries"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Broker     string `mapstructure:"broker"`
	AuditTopic string `mapstructure:"audit_topic"`
	GroupID    string `mapstructure:"group_id"`
}

type SessionConfig struct {
	TTL         time.Duration `mapstructure:"ttl"`
	RememberTTL time.Duration `mapstructure:"remember_ttl"`
	Secret      string        `mapstructure:"secret"`
	CookieName  string        `mapstructure:"cookie_name"`
	RefreshSkew time.Duration `mapstructure:"refresh_skew"`
	Secure      bool          `mapstructure:"secure"`
}

type CacheConfig struct {
	TTL         time.Duration `mapstructure:"ttl"`
	TemplateTTL time.Duration `mapstructure:"template_ttl"`
}

type RateConfig struct {
	LoginRPS   float64 `mapstructure:"login_rps"`
	LoginBurst int     `mapstructure:"login_burst"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "3000")
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.production", false)

	v.SetDefault("platform.base_url", "http://localhost:8080/api")
	v.SetDefault("platform.timeout", 15*time.Second)
	v.SetDefault("platform.retry_count", 2)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "resto_admin")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_retries", 5)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.broker", "")
	v.SetDefault("kafka.audit_topic", "admin.audit.v1")
	v.SetDefault("kafka.group_id", "resto-admin-cache")

	v.SetDefault("session.ttl", 12*time.Hour)
	v.SetDefault("session.remember_ttl", 30*24*time.Hour)
	v.SetDefault("session.secret", "")
	v.SetDefault("session.cookie_name", "admin_session")
	v.SetDefault("session.refresh_skew", time.Minute)
	v.SetDefault("session.secure", false)

	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.template_ttl", 6*time.Hour)

	v.SetDefault("rate.login_rps", 0.2)
	v.SetDefault("rate.login_burst", 5)
}

// Load reads .env, then config.yaml (optional, from . or ./config), then RESTO_ADMIN_* environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Platform.BaseURL == "" {
		return errors.New("platform.base_url is required")
	}
	if c.Session.Secret != "" && len(c.Session.Secret) < 32 {
		return errors.New("session.secret must be at least 32 bytes")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	return nil
}
