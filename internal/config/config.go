package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type CatalogConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	PageSize       int    `toml:"page_size"`
	// Fallback switches the placeholder-data response on catalog
	// failures. On by default to keep the demo browsable offline.
	Fallback bool `toml:"fallback"`
}

type BatchConfig struct {
	APIKey           string `toml:"api_key"`
	BaseURL          string `toml:"base_url"`
	Model            string `toml:"model"`
	ChunkSize        int    `toml:"chunk_size"`
	CompletionWindow string `toml:"completion_window"`
}

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Catalog CatalogConfig `toml:"catalog"`
	Batch   BatchConfig   `toml:"batch"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Catalog: CatalogConfig{
			BaseURL:        "http://localhost:3001/api",
			TimeoutSeconds: 10,
			PageSize:       10,
			Fallback:       true,
		},
		Batch: BatchConfig{
			Model:            "glm-4-flash",
			ChunkSize:        50000,
			CompletionWindow: "24h",
		},
	}
}

// Load reads a TOML config file on top of the defaults and then applies
// environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides individual settings from the environment.
func (c *Config) ApplyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if v := os.Getenv("CATALOG_BASE_URL"); v != "" {
		c.Catalog.BaseURL = v
	}
	if v := os.Getenv("CATALOG_FALLBACK"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Catalog.Fallback = b
		}
	}
	if v := os.Getenv("BATCH_API_KEY"); v != "" {
		c.Batch.APIKey = v
	}
	if v := os.Getenv("BATCH_BASE_URL"); v != "" {
		c.Batch.BaseURL = v
	}
	if v := os.Getenv("BATCH_MODEL"); v != "" {
		c.Batch.Model = v
	}
}
