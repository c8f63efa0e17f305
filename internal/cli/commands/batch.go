package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/sqldatefmt/internal/cli/output"
	"github.com/leapstack-labs/sqldatefmt/pkg/datefmt"
	"github.com/leapstack-labs/sqldatefmt/pkg/dialect"
	"github.com/leapstack-labs/sqldatefmt/pkg/expr"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// debounceInterval groups the burst of events editors emit on save.
const debounceInterval = 100 * time.Millisecond

// NamedFormat is one entry of a formats file.
type NamedFormat struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Column string `json:"column,omitempty"`
}

// formatEntry is the long form of a formats file entry.
type formatEntry struct {
	Format string `yaml:"format"`
	Column string `yaml:"column"`
}

// BatchOutput is the JSON output of the batch command.
type BatchOutput struct {
	File    string       `json:"file"`
	Entries []BatchEntry `json:"entries"`
}

// BatchEntry is the compiled SQL of one named format.
type BatchEntry struct {
	NamedFormat
	Results []CompileResult `json:"results"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Compile every format in a YAML file",
		Long: `Compile a YAML file of named formats for each selected dialect.

Entries map a name either to a format string or to a mapping with
"format" and an optional "column":

  iso_date: Y-m-d
  invoice_stamp:
    format: D, d M Y
    column: invoices.issued_at

With --watch the file is recompiled whenever it changes.`,
		Example: `  datefmt batch formats.yaml
  datefmt batch formats.yaml --dialect mysql,postgres --output json
  datefmt batch --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runBatch(cmd, path)
		},
	}

	addDialectFlag(cmd)
	cmd.Flags().StringP("column", "c", "", "Default subject column (default from config)")
	cmd.Flags().BoolP("watch", "w", false, "Recompile when the file changes")

	return cmd
}

func runBatch(cmd *cobra.Command, path string) error {
	cmdCtx := NewCommandContext(cmd)
	if path == "" {
		path = cmdCtx.Cfg.FormatsFile
	}

	dialects, err := selectDialects(cmd, cmdCtx.Cfg)
	if err != nil {
		return err
	}
	column := stringFlag(cmd, "column", cmdCtx.Cfg.Column)

	if err := compileBatch(cmdCtx, path, dialects, column); err != nil {
		return err
	}

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		return nil
	}
	return watchBatch(cmd.Context(), cmdCtx, path, func() {
		if err := compileBatch(cmdCtx, path, dialects, column); err != nil {
			// Keep watching: the next save may fix the file.
			cmdCtx.Renderer.Warn("Error: %v", err)
		}
	})
}

// LoadFormats reads a formats file. Entries keep their file order.
func LoadFormats(path string) ([]NamedFormat, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided CLI input
	if err != nil {
		return nil, fmt.Errorf("failed to read formats file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: expected a mapping of name to format at line %d", path, root.Line)
	}

	formats := make([]NamedFormat, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		entry := NamedFormat{Name: key.Value}
		switch value.Kind {
		case yaml.ScalarNode:
			entry.Format = value.Value
		case yaml.MappingNode:
			var long formatEntry
			if err := value.Decode(&long); err != nil {
				return nil, fmt.Errorf("%s: entry %q: %w", path, key.Value, err)
			}
			entry.Format = long.Format
			entry.Column = long.Column
		default:
			return nil, fmt.Errorf("%s: entry %q at line %d must be a string or a mapping", path, key.Value, value.Line)
		}
		formats = append(formats, entry)
	}
	return formats, nil
}

func compileBatch(cmdCtx *CommandContext, path string, dialects []*dialect.Dialect, column string) error {
	formats, err := LoadFormats(path)
	if err != nil {
		return err
	}

	out := BatchOutput{File: path}
	var errs []error
	for _, f := range formats {
		entryColumn := f.Column
		if entryColumn == "" {
			entryColumn = column
		}
		entry := BatchEntry{NamedFormat: f}
		entry.Column = entryColumn
		for _, d := range dialects {
			sql, err := datefmt.Compile(d, expr.Column(entryColumn), f.Format)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", f.Name, err))
				break
			}
			entry.Results = append(entry.Results, CompileResult{Dialect: d.Name, SQL: sql})
		}
		out.Entries = append(out.Entries, entry)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	cmdCtx.Logger.Debug("batch compiled", "file", path, "entries", len(out.Entries))
	return renderBatch(cmdCtx.Renderer, out)
}

func renderBatch(r *output.Renderer, out BatchOutput) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Formats: %s", out.File)))
		for _, e := range out.Entries {
			r.Println("")
			r.Println(output.FormatHeader(2, e.Name))
			r.Println("")
			r.Println(output.FormatKeyValue("Format", "`"+e.Format+"`"))
			r.Println(output.FormatKeyValue("Column", e.Column))
			for _, res := range e.Results {
				r.Println("")
				r.Println(output.FormatHeader(3, res.Dialect))
				r.Println("")
				r.Println(output.FormatCodeBlock("sql", res.SQL))
			}
		}
	default:
		rows := make([][]string, 0, len(out.Entries))
		for _, e := range out.Entries {
			for _, res := range e.Results {
				rows = append(rows, []string{e.Name, res.Dialect, res.SQL})
			}
		}
		r.Table([]string{"Name", "Dialect", "SQL"}, rows)
	}
	return nil
}

// watchBatch calls rebuild after every change to path until ctx is done.
// The parent directory is watched so editors that replace the file on save
// keep triggering events.
func watchBatch(ctx context.Context, cmdCtx *CommandContext, path string, rebuild func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	cmdCtx.Renderer.Warn("Watching %s for changes (Ctrl+C to stop)", path)

	name := filepath.Base(abs)
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pending:
			pending = nil
			cmdCtx.Logger.Info("change detected", "file", name)
			rebuild()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending = time.After(debounceInterval)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Warn("watcher error", "error", err)
		}
	}
}
