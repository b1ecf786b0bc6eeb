package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config keeps runtime settings for the reminder engine.
type Config struct {
	Database   DatabaseConfig   `koanf:"database"`
	Delivery   DeliveryConfig   `koanf:"delivery"`
	Escalation EscalationConfig `koanf:"escalation"`
	SMTP       SMTPConfig       `koanf:"smtp"`
	Telegram   TelegramConfig   `koanf:"telegram"`
}

type DatabaseConfig struct {
	// DSN is either a SQLite file path or a postgres:// URL.
	DSN string `koanf:"dsn"`
}

type DeliveryConfig struct {
	Interval  time.Duration `koanf:"interval"`
	BatchSize int           `koanf:"batch_size"`
}

type EscalationConfig struct {
	Interval time.Duration `koanf:"interval"`
	Days     []int         `koanf:"days"`
}

type SMTPConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
}

type TelegramConfig struct {
	Token string `koanf:"token"`
}

const envPrefix = "REMINDER_"

// Load reads configuration from the environment on top of defaults. Env keys
// use a double underscore as the nesting separator, e.g.
// REMINDER_DELIVERY__BATCH_SIZE maps to delivery.batch_size.
func Load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Delivery.Interval < time.Second {
		return fmt.Errorf("delivery.interval must be at least 1s, got %s", c.Delivery.Interval)
	}
	if c.Delivery.BatchSize <= 0 {
		return fmt.Errorf("delivery.batch_size must be positive, got %d", c.Delivery.BatchSize)
	}
	if c.Escalation.Interval < time.Second {
		return fmt.Errorf("escalation.interval must be at least 1s, got %s", c.Escalation.Interval)
	}
	for _, d := range c.Escalation.Days {
		if d <= 0 {
			return fmt.Errorf("escalation.days entries must be positive, got %d", d)
		}
	}
	if c.SMTP.Host != "" && c.SMTP.From == "" {
		return fmt.Errorf("smtp.from is required when smtp.host is set")
	}
	return nil
}
