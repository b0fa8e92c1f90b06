// Package cmd implements the graphz command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Mattojjo/graphz"
	"github.com/Mattojjo/graphz/config"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Commands lists every graphz subcommand.
var Commands = []subcommands.Command{
	&playCmd{},
	&simulateCmd{},
	&serveCmd{},
	&topicCmd{},
	&configCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// Has returns true if name is a graphz subcommand.
func Has(name string) bool {
	for _, c := range Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
// Flags left to their zero value keep the value from the environment.

var envFile = flag.String("env-file", ".env", "Path to the optional .env file")
var registryFile = flag.String("registry", "", "Path to a YAML instrument registry, overrides "+config.Prefix+"_REGISTRY_FILE")
var tickInterval = flag.Duration("tick", 0, "Time between two price ticks, overrides "+config.Prefix+"_TICK_INTERVAL")
var logLevel = flag.String("log-level", "", "Log level (debug, info, warn, error), overrides "+config.Prefix+"_LOG_LEVEL")

// Verbose sets the log level to debug.
var Verbose = flag.Bool("v", false, "Verbose output, same as -log-level=debug")

// loadConfig reads the environment, then applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*envFile)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if *registryFile != "" {
		cfg.RegistryFile = *registryFile
	}
	if *tickInterval != 0 {
		cfg.TickInterval = *tickInterval
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *Verbose {
		cfg.LogLevel = logrus.DebugLevel.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newEngine creates an engine trading the configured registry.
func newEngine(cfg *config.Config, logger *logrus.Logger, rng graphz.Rand, now func() time.Time) (*graphz.Engine, error) {
	registry, err := graphz.LoadRegistry(cfg.RegistryFile)
	if err != nil {
		return nil, err
	}
	logger.WithField("instruments", registry.Len()).Debug("registry loaded")
	return graphz.New(registry, graphz.Options{
		TickInterval:         cfg.TickInterval,
		NotificationLifetime: cfg.NotificationLifetime,
		Rand:                 rng,
		Now:                  now,
		Logger:               logger,
	}), nil
}

// openLog returns where the logs of an interactive command go: a file if
// path is set, nowhere otherwise.
func openLog(path string) (io.Writer, func() error, error) {
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %q: %w", path, err)
	}
	return f, f.Close, nil
}
