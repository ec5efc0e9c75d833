package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/ValueCharts/internal/view"
)

type Config struct {
	Server      ServerConfig           `yaml:"server"`
	Hermes      HermesConfig           `yaml:"hermes"`
	Engine      EngineConfig           `yaml:"engine"`
	View        view.Config            `yaml:"view"`
	Interaction view.InteractionConfig `yaml:"interaction"`
	Size        view.Size              `yaml:"size"`
	Logging     LoggingConfig          `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
	// RateLimit is requests per minute per client on the API; 0 disables it.
	RateLimit int `yaml:"rate_limit"`
}

type HermesConfig struct {
	URL             string `yaml:"url"`
	Name            string `yaml:"name"`
	ReconnectWaitMs int    `yaml:"reconnect_wait_ms"`
}

type EngineConfig struct {
	// QueueSize bounds the number of mutations waiting for the session writer.
	QueueSize int `yaml:"queue_size"`
	// JournalLimit bounds undo history per chart; 0 keeps everything.
	JournalLimit int `yaml:"journal_limit"`
	// RescaleOnEdit rescales score functions back onto [0, 1] after a user edit.
	RescaleOnEdit   bool `yaml:"rescale_on_edit"`
	StatsIntervalMs int  `yaml:"stats_interval_ms"`
	// IdleTimeoutMs evicts sessions unused for this long; 0 keeps them forever.
	IdleTimeoutMs int `yaml:"idle_timeout_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) StatsInterval() time.Duration {
	return time.Duration(c.Engine.StatsIntervalMs) * time.Millisecond
}

func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Engine.IdleTimeoutMs) * time.Millisecond
}

func (c *Config) ReconnectWait() time.Duration {
	return time.Duration(c.Hermes.ReconnectWaitMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
			RateLimit:   600,
		},
		Hermes: HermesConfig{
			URL:             "nats://localhost:4222",
			Name:            "valuecharts",
			ReconnectWaitMs: 2000,
		},
		Engine: EngineConfig{
			QueueSize:       256,
			JournalLimit:    100,
			RescaleOnEdit:   true,
			StatsIntervalMs: 30000,
			IdleTimeoutMs:   1800000,
		},
		View:        view.DefaultConfig(),
		Interaction: view.DefaultInteractionConfig(),
		Size:        view.Size{Width: 1000, Height: 600},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Engine.QueueSize <= 0 {
		return fmt.Errorf("engine.queue_size must be positive, got %d", c.Engine.QueueSize)
	}
	if err := c.View.Validate(); err != nil {
		return fmt.Errorf("view: %w", err)
	}
	if err := c.Interaction.Validate(); err != nil {
		return fmt.Errorf("interaction: %w", err)
	}
	if err := c.Size.Validate(); err != nil {
		return fmt.Errorf("size: %w", err)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("VALUECHARTS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("VALUECHARTS_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("VALUECHARTS_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("VALUECHARTS_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("VALUECHARTS_QUEUE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.QueueSize = n
		}
	}
	if v := os.Getenv("VALUECHARTS_RESCALE_ON_EDIT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Engine.RescaleOnEdit = b
		}
	}
	if v := os.Getenv("VALUECHARTS_IDLE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.IdleTimeoutMs = n
		}
	}
	if v := os.Getenv("VALUECHARTS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("VALUECHARTS_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
