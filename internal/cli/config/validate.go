package config

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/leapstack-labs/sqldatefmt/pkg/adapter"
	"github.com/leapstack-labs/sqldatefmt/pkg/core"
)

var validOutputs = map[string]bool{"auto": true, "text": true, "markdown": true, "json": true}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !validOutputs[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q\nHint: use one of auto, text, markdown, json", c.OutputFormat)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	if len(c.Dialects) == 0 {
		return fmt.Errorf("at least one dialect is required")
	}
	for _, name := range c.Dialects {
		if _, err := core.ParseDialect(name); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(c.Targets))
	for name := range c.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := ValidateTarget(name, c.Targets[name]); err != nil {
			return fmt.Errorf("invalid target configuration: %w", err)
		}
	}
	return nil
}

// ValidateTarget checks that a target names a registered adapter.
func ValidateTarget(name string, t TargetConfig) error {
	if t.Type == "" {
		return fmt.Errorf("target %q: target type is required", name)
	}
	typ := strings.ToLower(t.Type)
	if !adapter.IsRegistered(typ) {
		return fmt.Errorf("target %q: %w", name, &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		})
	}
	return nil
}

// ParsedDialects returns the configured dialects, deduplicated in order.
func (c *Config) ParsedDialects() ([]core.Dialect, error) {
	seen := make(map[core.Dialect]bool, len(c.Dialects))
	var out []core.Dialect
	for _, name := range c.Dialects {
		d, err := core.ParseDialect(name)
		if err != nil {
			return nil, err
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out, nil
}
