package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqldatefmt/internal/cli/output"
	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/datefmt"
	"github.com/leapstack-labs/sqldatefmt/pkg/expr"
	"github.com/spf13/cobra"
)

// CompileResult is the SQL produced for one dialect.
type CompileResult struct {
	Dialect string `json:"dialect"`
	SQL     string `json:"sql"`
}

// CompileOutput is the JSON output of the compile command.
type CompileOutput struct {
	Format  string          `json:"format"`
	Subject string          `json:"subject"`
	Results []CompileResult `json:"results"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <format>",
		Short: "Compile a PHP date() format into SQL",
		Long: `Compile a PHP date() format string into a SQL expression for each
selected dialect.

Characters the dialect supports natively become a single call to its
date-format function. Missing characters are emulated with portable SQL.
Escape a character with a backslash to emit it literally.

Output adapts to environment:
  - Terminal: SQL, one block per dialect
  - Piped/Scripted: Markdown with code blocks`,
		Example: `  # Compile for every configured dialect
  datefmt compile 'Y-m-d H:i:s'

  # Compile for PostgreSQL against a specific column
  datefmt compile 'D, d M Y' --dialect postgres --column orders.placed_at

  # Use an arbitrary SQL expression as the subject
  datefmt compile 'l j' --expr 'now()' -d mysql

  # JSON for scripts
  datefmt compile 'Y-W' --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args[0])
		},
	}

	addDialectFlag(cmd)
	cmd.Flags().StringP("column", "c", "", "Subject column (default from config)")
	cmd.Flags().String("expr", "", "Raw SQL expression used as subject instead of a column")

	return cmd
}

func runCompile(cmd *cobra.Command, format string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	dialects, err := selectDialects(cmd, cmdCtx.Cfg)
	if err != nil {
		return err
	}

	subject, label := compileSubject(cmd, cmdCtx.Cfg.Column)

	out := CompileOutput{Format: format, Subject: label}
	for _, d := range dialects {
		sql, err := datefmt.Compile(d, subject, format)
		if err != nil {
			return fmt.Errorf("failed to compile %q for %s: %w", format, d.Name, err)
		}
		cmdCtx.Logger.Debug("compiled", "dialect", d.Name, "format", format)
		out.Results = append(out.Results, CompileResult{Dialect: d.Name, SQL: sql})
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Compiled format: %s", format)))
		r.Println("")
		r.Println(output.FormatKeyValue("Subject", label))
		for _, res := range out.Results {
			r.Println("")
			r.Println(output.FormatHeader(2, res.Dialect))
			r.Println("")
			r.Println(output.FormatCodeBlock("sql", res.SQL))
		}
	default:
		// Text mode: bare SQL for one dialect, commented blocks for several
		if len(out.Results) == 1 {
			r.Println(out.Results[0].SQL)
			return nil
		}
		for _, res := range out.Results {
			r.Printf("-- %s\n%s\n", res.Dialect, res.SQL)
		}
	}

	return nil
}

// compileSubject returns the subject expression and its display label.
func compileSubject(cmd *cobra.Command, defaultColumn string) (core.Expr, string) {
	if raw := stringFlag(cmd, "expr", ""); raw != "" {
		return expr.Raw(raw), raw
	}
	column := stringFlag(cmd, "column", defaultColumn)
	return expr.Column(column), column
}
