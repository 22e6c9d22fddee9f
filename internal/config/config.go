// Package config loads service configuration from an optional YAML file,
// a .env file and IQFIELDBOT_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/iqfieldbot/internal/llm"
	"github.com/abhisek/iqfieldbot/internal/session"
	"github.com/abhisek/iqfieldbot/internal/store"
)

// EnvPrefix prefixes every environment override, e.g.
// IQFIELDBOT_SERVER_PORT for server.port.
const EnvPrefix = "IQFIELDBOT"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Session   session.Config  `mapstructure:"session"`
	Questions QuestionsConfig `mapstructure:"questions"`
	LLM       llm.Config      `mapstructure:"llm"`
	Store     store.Config    `mapstructure:"store"`
	Events    EventsConfig    `mapstructure:"events"`
	Auth      AuthConfig      `mapstructure:"auth"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // gin mode: debug, release or test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type QuestionsConfig struct {
	// AIRatio is the share of questions requested from the LLM; the rest
	// come from the static bank.
	AIRatio float64 `mapstructure:"ai_ratio"`
}

type EventsConfig struct {
	// AMQPURL enables event publishing when set.
	AMQPURL  string `mapstructure:"amqp_url"`
	Exchange string `mapstructure:"exchange"`
}

type AuthConfig struct {
	Require   bool   `mapstructure:"require"`
	APISecret string `mapstructure:"api_secret"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	// RequestsPerMinute per client IP. Zero disables limiting.
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	Burst             int `mapstructure:"burst"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`

	// File enables JSON output to a rotated file in addition to stderr.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
	ServiceName       string `mapstructure:"service_name"`
}

// envAliases binds conventional variable names in addition to the
// prefixed ones.
var envAliases = map[string]string{
	"llm.openai.api_key":     "OPENAI_API_KEY",
	"llm.anthropic.api_key":  "ANTHROPIC_API_KEY",
	"llm.gemini.api_key":     "GEMINI_API_KEY",
	"llm.openrouter.api_key": "OPENROUTER_API_KEY",
	"store.redis.url":        "REDIS_URL",
	"store.mongo.uri":        "MONGO_URI",
	"events.amqp_url":        "RABBITMQ_URI",
	"auth.api_secret":        "API_SECRET",
}

func setDefaults(v *viper.Viper) {
	sess := session.DefaultConfig()
	llmCfg := llm.DefaultConfig()

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("session.length", sess.Length)
	v.SetDefault("session.initial_difficulty", sess.InitialDifficulty)
	v.SetDefault("session.difficulty.threshold", sess.Difficulty.Threshold)
	v.SetDefault("session.difficulty.step", sess.Difficulty.Step)
	v.SetDefault("session.difficulty.max", sess.Difficulty.Max)
	v.SetDefault("session.difficulty.window", sess.Difficulty.Window)
	v.SetDefault("session.history_size", sess.HistorySize)
	v.SetDefault("session.provider_timeout", sess.ProviderTimeout)

	v.SetDefault("questions.ai_ratio", 0.7)

	v.SetDefault("llm.provider", llmCfg.Provider)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", llmCfg.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", llmCfg.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", llmCfg.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", llmCfg.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", llmCfg.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", llmCfg.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", llmCfg.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", llmCfg.Retry.Multiplier)
	v.SetDefault("llm.timeout", llmCfg.Timeout)

	v.SetDefault("store.backend", store.BackendMemory)
	v.SetDefault("store.sqlite.path", "")
	v.SetDefault("store.redis.url", "redis://localhost:6379/0")
	v.SetDefault("store.redis.ttl", time.Hour)
	v.SetDefault("store.redis.prefix", "session:")
	v.SetDefault("store.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("store.mongo.database", "iqfieldbot")
	v.SetDefault("store.mongo.collection", "sessions")
	v.SetDefault("store.mongo.ttl", time.Duration(0))

	v.SetDefault("events.amqp_url", "")
	v.SetDefault("events.exchange", "iqfieldbot.events")

	v.SetDefault("auth.require", false)
	v.SetDefault("auth.api_secret", "")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	v.SetDefault("rate_limit.requests_per_minute", 600)
	v.SetDefault("rate_limit.burst", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.collector_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("tracing.service_name", "iqfieldbot")
}

// Load reads configuration. path names an explicit config file; when empty,
// config.yaml is searched in ".", "./configs" and the user config
// directory, and a missing file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, alias := range envAliases {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, alias); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "iqfieldbot"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and cross-field requirements.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
	}
	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if c.Questions.AIRatio < 0 || c.Questions.AIRatio > 1 {
		return fmt.Errorf("questions.ai_ratio must be in [0, 1], got %g", c.Questions.AIRatio)
	}
	switch c.Store.Backend {
	case store.BackendMemory, store.BackendSQLite, store.BackendRedis, store.BackendMongo:
	default:
		return fmt.Errorf("unknown store.backend %q", c.Store.Backend)
	}
	if c.Auth.Require && c.Auth.APISecret == "" {
		return fmt.Errorf("auth.api_secret (or API_SECRET) is required when auth.require is true")
	}
	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
