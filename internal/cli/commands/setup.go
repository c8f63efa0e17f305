package commands

import (
	"log/slog"
	"slices"

	"github.com/leapstack-labs/sqldatefmt/internal/cli/config"
	"github.com/leapstack-labs/sqldatefmt/internal/cli/output"
	"github.com/leapstack-labs/sqldatefmt/pkg/dialect"
	"github.com/spf13/cobra"

	// Dialects register themselves with the dialect registry.
	_ "github.com/leapstack-labs/sqldatefmt/pkg/adapters/mysql/dialect"
	_ "github.com/leapstack-labs/sqldatefmt/pkg/adapters/postgres/dialect"
	_ "github.com/leapstack-labs/sqldatefmt/pkg/adapters/sqlite/dialect"
	_ "github.com/leapstack-labs/sqldatefmt/pkg/adapters/sqlserver/dialect"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext for cmd.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	if cmd.Flags().Changed("output") {
		mode = output.Mode(stringFlag(cmd, "output", cfg.OutputFormat))
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration, or the defaults when no
// configuration has been loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// stringFlag returns the flag value when it was set on the command line,
// otherwise fallback.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return fallback
	}
	return f.Value.String()
}

// selectDialects resolves the dialects a command works on: the --dialect flag
// when set, otherwise the configured dialects.
func selectDialects(cmd *cobra.Command, cfg *config.Config) ([]*dialect.Dialect, error) {
	names := cfg.Dialects
	if cmd.Flags().Changed("dialect") {
		if v, err := cmd.Flags().GetStringSlice("dialect"); err == nil {
			names = v
		}
	}
	if len(names) == 0 {
		return nil, dialect.ErrDialectRequired
	}

	var out []*dialect.Dialect
	for _, name := range names {
		d, err := dialect.Lookup(name)
		if err != nil {
			return nil, err
		}
		if slices.Contains(out, d) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// addDialectFlag registers the --dialect flag with shell completion.
func addDialectFlag(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("dialect", "d", nil, "Target dialects (mysql, sqlite, postgres, sqlserver)")
	_ = cmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dialect.List(), cobra.ShellCompDirectiveNoFileComp
	})
}
