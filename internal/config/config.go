package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Engine EngineConfig
	Batch  BatchConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	Environment    string        `mapstructure:"environment"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EngineConfig points at optional vocabulary and limits files. Empty paths
// select the embedded resources.
type EngineConfig struct {
	VocabularyPath string `mapstructure:"vocabulary_path"`
	LimitsPath     string `mapstructure:"limits_path"`
}

// BatchConfig bounds batch parse and validate requests.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	MaxItems    int `mapstructure:"max_items"`
}

// Load reads configuration from environment variables with the TRUSTLABEL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRUSTLABEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_body_bytes", 10<<20)
	v.SetDefault("server.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Engine defaults (embedded resources)
	v.SetDefault("engine.vocabulary_path", "")
	v.SetDefault("engine.limits_path", "")

	// Batch defaults
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("batch.max_items", 50)

	envBindings := map[string]string{
		"server.port":            "TRUSTLABEL_SERVER_PORT",
		"server.read_timeout":    "TRUSTLABEL_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "TRUSTLABEL_SERVER_WRITE_TIMEOUT",
		"server.environment":     "TRUSTLABEL_SERVER_ENVIRONMENT",
		"server.max_body_bytes":  "TRUSTLABEL_SERVER_MAX_BODY_BYTES",
		"server.allowed_origins": "TRUSTLABEL_SERVER_ALLOWED_ORIGINS",
		"log.level":              "TRUSTLABEL_LOG_LEVEL",
		"log.format":             "TRUSTLABEL_LOG_FORMAT",
		"engine.vocabulary_path": "TRUSTLABEL_ENGINE_VOCABULARY_PATH",
		"engine.limits_path":     "TRUSTLABEL_ENGINE_LIMITS_PATH",
		"batch.concurrency":      "TRUSTLABEL_BATCH_CONCURRENCY",
		"batch.max_items":        "TRUSTLABEL_BATCH_MAX_ITEMS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it unless TRUSTLABEL_SERVER_PORT is set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TRUSTLABEL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:           serverPort,
		ReadTimeout:    v.GetDuration("server.read_timeout"),
		WriteTimeout:   v.GetDuration("server.write_timeout"),
		Environment:    v.GetString("server.environment"),
		MaxBodyBytes:   v.GetInt64("server.max_body_bytes"),
		AllowedOrigins: splitList(v.GetString("server.allowed_origins")),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Engine = EngineConfig{
		VocabularyPath: v.GetString("engine.vocabulary_path"),
		LimitsPath:     v.GetString("engine.limits_path"),
	}
	cfg.Batch = BatchConfig{
		Concurrency: v.GetInt("batch.concurrency"),
		MaxItems:    v.GetInt("batch.max_items"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail at first use.
func (c *Config) Validate() error {
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("config: batch.concurrency must be >= 1, got %d", c.Batch.Concurrency)
	}
	if c.Batch.MaxItems < 1 {
		return fmt.Errorf("config: batch.max_items must be >= 1, got %d", c.Batch.MaxItems)
	}
	if c.Server.MaxBodyBytes < 1 {
		return fmt.Errorf("config: server.max_body_bytes must be >= 1, got %d", c.Server.MaxBodyBytes)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
