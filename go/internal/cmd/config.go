package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration. Values come from a YAML file with
// environment variables overriding the connection settings.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	NATS struct {
		Enabled bool   `yaml:"enabled"`
		URL     string `yaml:"url"`
	} `yaml:"nats"`

	Outbox struct {
		NotifyChannel    string        `yaml:"notify_channel"`
		FallbackInterval time.Duration `yaml:"fallback_interval"`
		BatchSize        int32         `yaml:"batch_size"`
	} `yaml:"outbox"`

	Gateway struct {
		Enabled      bool   `yaml:"enabled"`
		ConsumerName string `yaml:"consumer_name"`
	} `yaml:"gateway"`
}

func defaultConfig() *Config {
	var cfg Config
	cfg.Server.Addr = ":8080"
	cfg.NATS.Enabled = false
	cfg.NATS.URL = "nats://127.0.0.1:4222"
	cfg.Outbox.NotifyChannel = "draft_outbox_events"
	cfg.Outbox.FallbackInterval = 30 * time.Second
	cfg.Outbox.BatchSize = 100
	cfg.Gateway.Enabled = true
	cfg.Gateway.ConsumerName = "draft-gateway"
	return &cfg
}

// loadConfig reads the YAML config at path, falling back to defaults when the
// file does not exist.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if url := os.Getenv("NATS_URL"); url != "" {
		cfg.NATS.URL = url
		cfg.NATS.Enabled = true
	}
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
