// Package config loads application configuration from an optional YAML file,
// a .env file, and environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the server and CLI need at startup.
type Config struct {
	ListenAddr      string      `yaml:"listen_addr"`
	DBPath          string      `yaml:"db_path"`
	ServerURL       string      `yaml:"server_url"`
	DefaultCurrency string      `yaml:"default_currency"`
	LogLevel        string      `yaml:"log_level"`
	Kafka           KafkaConfig `yaml:"kafka"`
}

// KafkaConfig configures the optional event publisher. Events are disabled
// when no brokers are set.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		ListenAddr:      ":8710",
		DBPath:          "finledger.db",
		ServerURL:       "http://localhost:8710",
		DefaultCurrency: "INR",
		LogLevel:        "info",
	}
}

// Load reads configuration. The YAML file is optional; a missing file is not
// an error unless the path was given explicitly. Environment variables
// (FINLEDGER_*) override file values, and a .env file in the working
// directory is loaded first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	explicit := path != ""
	if path == "" {
		path = "finledger.yaml"
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file; defaults plus environment are fine.
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FINLEDGER_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("FINLEDGER_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("FINLEDGER_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("FINLEDGER_CURRENCY"); v != "" {
		cfg.DefaultCurrency = v
	}
	if v := os.Getenv("FINLEDGER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("FINLEDGER_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	if v := os.Getenv("FINLEDGER_KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EventsEnabled reports whether an event broker is configured.
func (c *Config) EventsEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}
