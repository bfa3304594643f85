package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"go-table-insights/pkg/utils"
)

// Prefix for environment overrides, e.g. INSIGHTS_SERVER_ADDR=:9090.
const envPrefix = "INSIGHTS_"

// Config holds the service configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Store    StoreConfig    `koanf:"store"`
	Analysis AnalysisConfig `koanf:"analysis"`
	Query    QueryConfig    `koanf:"query"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// StoreConfig configures the sqlite database.
type StoreConfig struct {
	Path string `koanf:"path"`
}

// AnalysisConfig configures the external analysis service. An empty URL
// disables the service; interpretation then uses pattern matching only.
type AnalysisConfig struct {
	URL      string `koanf:"url"`
	Provider string `koanf:"provider"`
	Model    string `koanf:"model"`
	Timeout  string `koanf:"timeout"`
}

// QueryConfig configures query-job execution.
type QueryConfig struct {
	Timeout string `koanf:"timeout"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.addr":       ":8080",
		"store.path":        "insights.db",
		"analysis.url":      "",
		"analysis.provider": "deepseek",
		"analysis.model":    "",
		"analysis.timeout":  "30s",
		"query.timeout":     "2m",
	}
}

// Load builds the configuration from defaults overridden by INSIGHTS_*
// environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AnalysisTimeout returns the parsed analysis request timeout.
func (c *Config) AnalysisTimeout() time.Duration {
	return utils.ParseDuration(c.Analysis.Timeout, 30*time.Second)
}

// QueryTimeout returns the parsed default query-job timeout.
func (c *Config) QueryTimeout() time.Duration {
	return utils.ParseDuration(c.Query.Timeout, 2*time.Minute)
}
