// Package config loads the runtime settings of graphz from the environment.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Prefix of every environment variable, e.g. GRAPHZ_TICK_INTERVAL.
const Prefix = "GRAPHZ"

// Config holds every tunable of the simulator and its servers.
type Config struct {
	TickInterval         time.Duration `envconfig:"TICK_INTERVAL" default:"2s"`
	NotificationLifetime time.Duration `envconfig:"NOTIFICATION_LIFETIME" default:"3s"`
	RegistryFile         string        `envconfig:"REGISTRY_FILE"` // built-in catalog if empty
	HTTPAddr             string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel             string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat            string        `envconfig:"LOG_FORMAT" default:"text"` // text or json
}

// Load reads the optional .env files, then the environment.
func Load(files ...string) (*Config, error) {
	// .env files are optional
	_ = godotenv.Load(files...)

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings that would make the engine misbehave.
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", c.TickInterval)
	}
	if c.NotificationLifetime <= 0 {
		return fmt.Errorf("notification lifetime must be positive, got %v", c.NotificationLifetime)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q, want text or json", c.LogFormat)
	}
	return nil
}

// Logger returns a logger writing to w with the configured level and format.
func (c *Config) Logger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	if w == nil {
		w = os.Stderr
	}
	logger.SetOutput(w)
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// Usage prints the recognized environment variables.
func Usage(w io.Writer) error {
	var cfg Config
	return envconfig.Usagef(Prefix, &cfg, w, envconfig.DefaultTableFormat)
}
