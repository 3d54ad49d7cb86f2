// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Advisory  AdvisoryConfig  `yaml:"advisory" mapstructure:"advisory"`
	Recommend RecommendConfig `yaml:"recommend" mapstructure:"recommend"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the catalog/favorites backend.
type StoreConfig struct {
	// Driver selects the backend: sqlite, postgres, or memory.
	Driver string `yaml:"driver" mapstructure:"driver"`
	// Path is the database file for the sqlite driver.
	Path string `yaml:"path" mapstructure:"path"`
	// DatabaseURL is the connection string for the postgres driver.
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AdvisoryConfig configures the advisory bridge. It is passed explicitly into
// the bridge constructor; nothing in the advisory path reads the environment
// directly.
type AdvisoryConfig struct {
	// Provider selects the generator backend: ollama (default) or claude.
	Provider string `yaml:"provider" mapstructure:"provider"`
	// BaseURL is the Ollama server address.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Model is the model identifier. Empty selects the provider's default
	// (llama3.1:8b for ollama).
	Model        string  `yaml:"model" mapstructure:"model"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Temperature  float64 `yaml:"temperature" mapstructure:"temperature"`
	AnthropicKey string  `yaml:"anthropic_key" mapstructure:"anthropic_key"`
}

// RecommendConfig configures the scoring engine defaults.
type RecommendConfig struct {
	Limit int `yaml:"limit" mapstructure:"limit"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml (optional) and SCENT_* environment
// variables, applying documented defaults.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SCENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only surfaces keys viper already knows about. Keys that
	// deliberately carry no default still need an explicit binding.
	for _, key := range []string{"advisory.model", "advisory.anthropic_key", "store.database_url"} {
		v.BindEnv(key) //nolint:errcheck
	}

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "scent.db")
	v.SetDefault("advisory.provider", "ollama")
	v.SetDefault("advisory.base_url", "http://localhost:11434")
	v.SetDefault("advisory.timeout_secs", 12)
	v.SetDefault("advisory.temperature", 0.4)
	v.SetDefault("recommend.limit", 3)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
