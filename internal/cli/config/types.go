// Package config provides configuration management for the datefmt CLI.
//
// Configuration is layered with koanf: built-in defaults, then datefmt.yaml,
// then DATEFMT_ environment variables, then explicitly set flags.
package config

import (
	"log/slog"
	"strings"

	"github.com/leapstack-labs/sqldatefmt/pkg/core"
)

// Config holds all CLI configuration options.
type Config struct {
	Dialects     []string                `koanf:"dialects"`
	Column       string                  `koanf:"column"`
	OutputFormat string                  `koanf:"output"`
	LogLevel     string                  `koanf:"log_level"`
	Verbose      bool                    `koanf:"verbose"`
	FormatsFile  string                  `koanf:"formats_file"`
	Targets      map[string]TargetConfig `koanf:"targets"`
}

// TargetConfig describes a database used by the verify command.
type TargetConfig struct {
	Type     string            `koanf:"type"`
	Path     string            `koanf:"path"`
	Host     string            `koanf:"host"`
	Port     int               `koanf:"port"`
	Database string            `koanf:"database"`
	User     string            `koanf:"user"`
	Password string            `koanf:"password"`
	Options  map[string]string `koanf:"options"`
}

// AdapterConfig converts the target into the adapter connection config.
func (t TargetConfig) AdapterConfig() core.AdapterConfig {
	return core.AdapterConfig{
		Type:     strings.ToLower(t.Type),
		Path:     t.Path,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Options:  t.Options,
	}
}

// Level returns the slog level for the configuration.
// Verbose forces debug logging.
func (c *Config) Level() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Default configuration values.
const (
	DefaultColumn      = "created_at"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel    = "info"
	DefaultFormatsFile = "formats.yaml"
)

// DefaultDialects returns the canonical names of every supported dialect.
func DefaultDialects() []string {
	all := core.AllDialects()
	names := make([]string, len(all))
	for i, d := range all {
		names[i] = d.String()
	}
	return names
}

// Default returns the configuration used when nothing has been loaded.
func Default() *Config {
	return &Config{
		Dialects:     DefaultDialects(),
		Column:       DefaultColumn,
		OutputFormat: DefaultOutput,
		LogLevel:     DefaultLogLevel,
		FormatsFile:  DefaultFormatsFile,
	}
}
