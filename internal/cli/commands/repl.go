package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/sqldatefmt/internal/cli/output"
	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/datefmt"
	"github.com/leapstack-labs/sqldatefmt/pkg/dialect"
	"github.com/leapstack-labs/sqldatefmt/pkg/expr"
	"github.com/spf13/cobra"
)

const replPrompt = "datefmt> "

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Compile formats interactively",
		Long: `Start an interactive session. Every line is compiled as a format string
for the current dialects; lines starting with a dot are session commands.
Type .help inside the session for the list.`,
		Example: `  datefmt repl
  datefmt repl --dialect postgres --column o.placed_at`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}

	addDialectFlag(cmd)
	cmd.Flags().StringP("column", "c", "", "Subject column (default from config)")
	cmd.Flags().String("expr", "", "Raw SQL expression used as subject instead of a column")

	return cmd
}

func runREPL(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)

	dialects, err := selectDialects(cmd, cmdCtx.Cfg)
	if err != nil {
		return err
	}
	subject, label := compileSubject(cmd, cmdCtx.Cfg.Column)

	session := &replSession{
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
		styles:   cmdCtx.Renderer.Styles(),
		dialects: dialects,
		subject:  subject,
		label:    label,
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     replHistoryFile(),
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(session.out, "datefmt REPL (%s on %s)\n", session.dialectNames(), label)
	_, _ = fmt.Fprintln(session.out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(session.out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			break
		}
		if session.handle(line) {
			break
		}
	}

	return nil
}

// replHistoryFile returns the history path in the user cache directory, or
// "" to disable history.
func replHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "datefmt")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return ""
	}
	return filepath.Join(dir, "repl_history")
}

// replSession holds the state of one interactive session.
type replSession struct {
	out    io.Writer
	errOut io.Writer
	styles *output.Styles

	dialects []*dialect.Dialect
	subject  core.Expr
	label    string
}

// handle processes one input line and reports whether the session should end.
// Leading and trailing spaces of a format are significant.
func (s *replSession) handle(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, ".") {
		return s.handleDotCommand(trimmed)
	}

	for _, d := range s.dialects {
		sql, err := datefmt.Compile(d, s.subject, line)
		if err != nil {
			s.errorf("%s: %v", d.Name, err)
			continue
		}
		if len(s.dialects) > 1 {
			_, _ = fmt.Fprintln(s.out, s.styles.Muted.Render("-- "+d.Name))
		}
		_, _ = fmt.Fprintln(s.out, sql)
	}
	return false
}

func (s *replSession) handleDotCommand(line string) bool {
	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(command) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.out)

	case ".dialect":
		if arg == "" {
			_, _ = fmt.Fprintln(s.out, s.dialectNames())
			return false
		}
		var dialects []*dialect.Dialect
		for _, name := range strings.Split(arg, ",") {
			d, err := dialect.Lookup(strings.TrimSpace(name))
			if err != nil {
				s.errorf("%v", err)
				return false
			}
			dialects = append(dialects, d)
		}
		s.dialects = dialects

	case ".column":
		if arg == "" {
			_, _ = fmt.Fprintln(s.out, s.label)
			return false
		}
		s.subject, s.label = expr.Column(arg), arg

	case ".expr":
		if arg == "" {
			_, _ = fmt.Fprintln(s.errOut, "Usage: .expr <sql>")
			return false
		}
		s.subject, s.label = expr.Raw(arg), arg

	case ".explain":
		if arg == "" {
			_, _ = fmt.Fprintln(s.errOut, "Usage: .explain <format>")
			return false
		}
		out, err := explain(s.dialects[0], s.subject, arg)
		if err != nil {
			s.errorf("%v", err)
			return false
		}
		output.Table(s.out, output.ModeText, explainHeader, explainRows(out.Steps))
		_, _ = fmt.Fprintln(s.out, out.SQL)

	default:
		s.errorf("Unknown command: %s (type .help for commands)", command)
	}
	return false
}

func (s *replSession) errorf(format string, a ...any) {
	_, _ = fmt.Fprintln(s.errOut, s.styles.Error.Render("Error: "+fmt.Sprintf(format, a...)))
}

func (s *replSession) dialectNames() string {
	names := make([]string, len(s.dialects))
	for i, d := range s.dialects {
		names[i] = d.Name
	}
	return strings.Join(names, ", ")
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help              Show this help message
  .dialect [names]   Show or set the dialects (comma-separated)
  .column [name]     Show or set the subject column
  .expr <sql>        Use a raw SQL expression as subject
  .explain <format>  Show how each character of a format resolves
  .quit / .exit      Exit the REPL

Tips:
  - Any other line is compiled as a format string
  - Escape a leading dot as \. to compile it literally
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

func newREPLCompleter() *readline.PrefixCompleter {
	var names []readline.PrefixCompleterInterface
	for _, name := range dialect.List() {
		names = append(names, readline.PcItem(name))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".dialect", names...),
		readline.PcItem(".column"),
		readline.PcItem(".expr"),
		readline.PcItem(".explain"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
