package commands

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/sqldatefmt/internal/cli/output"
	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/datefmt"
	"github.com/leapstack-labs/sqldatefmt/pkg/dialect"
	"github.com/leapstack-labs/sqldatefmt/pkg/expr"
	"github.com/spf13/cobra"
)

// ExplainStep is one token and its resolution.
type ExplainStep struct {
	Pos        int    `json:"pos"`
	Char       string `json:"char"`
	Escaped    bool   `json:"escaped"`
	Meaning    string `json:"meaning,omitempty"`
	Kind       string `json:"kind"`
	Resolution string `json:"resolution"`
}

// ExplainFragment is one coalesced piece of the output.
type ExplainFragment struct {
	Kind string `json:"kind"`
	SQL  string `json:"sql"`
}

// ExplainOutput is the JSON output of the explain command.
type ExplainOutput struct {
	Dialect   string            `json:"dialect"`
	Format    string            `json:"format"`
	Steps     []ExplainStep     `json:"steps"`
	Fragments []ExplainFragment `json:"fragments"`
	SQL       string            `json:"sql"`
}

// NewExplainCommand creates the explain command.
func NewExplainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <format>",
		Short: "Show how a format is resolved for a dialect",
		Long: `Show every token of a format string, whether the dialect renders it
natively, emulates it or copies it literally, and the fragments that are
concatenated into the final SQL.`,
		Example: `  datefmt explain 'D, d M Y' --dialect sqlite
  datefmt explain 'g:i a' -d sqlserver --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, args[0])
		},
	}

	addDialectFlag(cmd)
	cmd.Flags().StringP("column", "c", "", "Subject column (default from config)")

	return cmd
}

func runExplain(cmd *cobra.Command, format string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	dialects, err := selectDialects(cmd, cmdCtx.Cfg)
	if err != nil {
		return err
	}
	// Explain works on one dialect: the first selected.
	d := dialects[0]

	out, err := explain(d, expr.Column(stringFlag(cmd, "column", cmdCtx.Cfg.Column)), format)
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Explain %q for %s", format, out.Dialect)))
		r.Println("")
		r.Println(output.FormatHeader(2, "Tokens"))
		r.Println("")
		r.Table(explainHeader, explainRows(out.Steps))
		r.Println("")
		r.Println(output.FormatHeader(2, "Fragments"))
		r.Println("")
		for i, f := range out.Fragments {
			r.Println(output.FormatKeyValue(fmt.Sprintf("%d (%s)", i+1, f.Kind), "`"+f.SQL+"`"))
		}
		r.Println("")
		r.Println(output.FormatHeader(2, "SQL"))
		r.Println("")
		r.Println(output.FormatCodeBlock("sql", out.SQL))
	default:
		r.Table(explainHeader, explainRows(out.Steps))
		r.Println("")
		styles := r.Styles()
		for i, f := range out.Fragments {
			r.Printf("%s %s\n", styles.Muted.Render(fmt.Sprintf("fragment %d (%s):", i+1, f.Kind)), f.SQL)
		}
		r.Println("")
		r.Println(styles.Bold.Render(out.SQL))
	}

	return nil
}

var explainHeader = []string{"Pos", "Char", "Meaning", "Kind", "Resolution"}

func explainRows(steps []ExplainStep) [][]string {
	rows := make([][]string, len(steps))
	for i, s := range steps {
		char := s.Char
		if s.Escaped {
			char = `\` + char
		}
		rows[i] = []string{strconv.Itoa(s.Pos), char, s.Meaning, s.Kind, s.Resolution}
	}
	return rows
}

func explain(d *dialect.Dialect, subject core.Expr, format string) (*ExplainOutput, error) {
	ex, err := datefmt.Explain(d.Kind, format)
	if err != nil {
		return nil, err
	}

	out := &ExplainOutput{Dialect: d.Name, Format: format}
	for _, res := range ex.Resolutions {
		step := ExplainStep{
			Pos:        res.Token.Pos,
			Char:       res.Token.Text,
			Escaped:    res.Token.Literal,
			Kind:       res.Kind.String(),
			Resolution: res.Describe(),
		}
		if !res.Token.Literal {
			step.Meaning = datefmt.Describe(res.Token.Char())
		}
		out.Steps = append(out.Steps, step)
	}
	for _, f := range ex.Fragments {
		out.Fragments = append(out.Fragments, ExplainFragment{
			Kind: f.Kind.String(),
			SQL:  datefmt.LowerFragment(d, subject, f).SQL(d),
		})
	}
	out.SQL = datefmt.Emit(d, subject, ex.Fragments)
	return out, nil
}
