package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqldatefmt/internal/cli/output"
	"github.com/leapstack-labs/sqldatefmt/pkg/datefmt"
	"github.com/leapstack-labs/sqldatefmt/pkg/dialect"
	"github.com/spf13/cobra"
)

// CharSupport is how one dialect produces a character.
type CharSupport struct {
	Native   string `json:"native,omitempty"`
	Emulated string `json:"emulated,omitempty"`
}

// CharInfo describes one supported format character.
type CharInfo struct {
	Char     string                 `json:"char"`
	Meaning  string                 `json:"meaning"`
	Dialects map[string]CharSupport `json:"dialects"`
}

// CharsOutput is the JSON output of the chars command.
type CharsOutput struct {
	Supported   []CharInfo `json:"supported"`
	Unsupported []string   `json:"unsupported"`
}

// NewCharsCommand creates the chars command.
func NewCharsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chars",
		Short: "Show the format character support matrix",
		Long: `Show every supported PHP date() format character and, per dialect,
whether it maps to a native format token or is emulated.

Unsupported characters are listed separately; escape them with a
backslash to emit them literally.`,
		Example: `  datefmt chars
  datefmt chars --dialect sqlite --output markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChars(cmd)
		},
	}

	addDialectFlag(cmd)
	return cmd
}

func runChars(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	dialects, err := selectDialects(cmd, cmdCtx.Cfg)
	if err != nil {
		return err
	}

	out := buildCharsOutput(dialects)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}

	header := []string{"Char", "Meaning"}
	for _, d := range dialects {
		header = append(header, d.Name)
	}
	rows := make([][]string, 0, len(out.Supported))
	for _, info := range out.Supported {
		row := []string{info.Char, info.Meaning}
		for _, d := range dialects {
			row = append(row, info.Dialects[d.Name].cell())
		}
		rows = append(rows, row)
	}

	unsupported := fmt.Sprintf("Unsupported: %s", strings.Join(out.Unsupported, " "))
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Format characters"))
		r.Println("")
		r.Table(header, rows)
		r.Println("")
		r.Println(unsupported)
		return nil
	}

	styles := r.Styles()
	r.Table(header, rows)
	r.Println("")
	r.Println(styles.Warning.Render(unsupported))
	r.Println(styles.Muted.Render(`"~" marks an emulation; escape unsupported characters with a backslash`))

	return nil
}

// maxCellWidth truncates long emulation templates in the matrix.
const maxCellWidth = 32

// cell renders the support as a table cell. Emulations are marked with "~".
func (s CharSupport) cell() string {
	if s.Native != "" {
		return s.Native
	}
	if s.Emulated == "" {
		return ""
	}
	e := []rune(s.Emulated)
	if len(e) > maxCellWidth {
		return "~ " + string(e[:maxCellWidth-3]) + "..."
	}
	return "~ " + s.Emulated
}

func buildCharsOutput(dialects []*dialect.Dialect) CharsOutput {
	var out CharsOutput
	for _, ch := range datefmt.Supported() {
		info := CharInfo{
			Char:     string(ch),
			Meaning:  datefmt.Describe(ch),
			Dialects: make(map[string]CharSupport, len(dialects)),
		}
		for _, d := range dialects {
			c, ok := datefmt.Lookup(d.Kind, ch)
			if !ok {
				continue
			}
			if c.Emulated() {
				info.Dialects[d.Name] = CharSupport{Emulated: c.Recipe.Describe()}
			} else {
				info.Dialects[d.Name] = CharSupport{Native: c.Native}
			}
		}
		out.Supported = append(out.Supported, info)
	}
	for _, ch := range datefmt.Unsupported() {
		out.Unsupported = append(out.Unsupported, string(ch))
	}
	return out
}
