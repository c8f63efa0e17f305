package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/leapstack-labs/sqldatefmt/internal/cli"
	"github.com/leapstack-labs/sqldatefmt/internal/cli/config"
	"github.com/leapstack-labs/sqldatefmt/pkg/dialect"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// generateCLIDocs writes one page per visible command plus an index.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()
	commands := visibleCommands(rootCmd)

	if err := writePage(outDir, "index.md", cliIndex(rootCmd, commands)); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}

	for _, cmd := range commands {
		if err := writePage(outDir, cmd.Name()+".md", commandPage(cmd)); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
	}

	return nil
}

func writePage(outDir, name string, w *MarkdownWriter) error {
	log.Printf("  Generated %s", name)
	return os.WriteFile(filepath.Join(outDir, name), w.Bytes(), 0600)
}

// visibleCommands returns the documented subcommands of root.
func visibleCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || !cmd.IsAvailableCommand() || cmd.Name() == "help" {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

func cliIndex(rootCmd *cobra.Command, commands []*cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for datefmt")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(rootCmd.Long)

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/sqldatefmt/cmd/datefmt@latest")

	w.Header(2, "Commands")
	rows := make([][]string, 0, len(commands))
	for _, cmd := range commands {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Dialects")
	w.Paragraph("Every command that compiles takes " + InlineCode("--dialect") + " with any of these names:")
	var dialectRows [][]string
	for _, name := range dialect.List() {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		aliases := make([]string, len(d.Aliases()))
		for i, a := range d.Aliases() {
			aliases[i] = InlineCode(a)
		}
		dialectRows = append(dialectRows, []string{InlineCode(name), strings.Join(aliases, ", ")})
	}
	w.Table([]string{"Dialect", "Aliases"}, dialectRows)

	w.Header(2, "Configuration")
	w.Paragraph("Settings are read from " + InlineCode("datefmt.yaml") + " in the working directory (or " +
		InlineCode("--config") + "), then from environment variables, then from flags. Later sources win.")
	w.CodeBlock("yaml", `dialects: [mysql, postgres]
column: created_at
output: auto
log_level: info
formats_file: formats.yaml
targets:
  local:
    type: sqlite
  pg:
    type: postgres
    host: localhost
    database: postgres
    user: postgres
    password: ${PGPASSWORD}`)

	w.Header(3, "Environment Variables")
	var envRows [][]string
	for _, key := range configKeys() {
		envRows = append(envRows, []string{InlineCode(envVar(key)), InlineCode(key)})
	}
	w.Table([]string{"Variable", "Config key"}, envRows)

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Compile, configuration or verification error (details on stderr)"},
	})

	return w
}

// configKeys lists the scalar configuration keys from the koanf struct tags.
func configKeys() []string {
	var keys []string
	t := reflect.TypeOf(config.Config{})
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Type.Kind() == reflect.Map {
			continue
		}
		if key := f.Tag.Get("koanf"); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func envVar(key string) string {
	return "DATEFMT_" + strings.ToUpper(key)
}

func commandPage(cmd *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	useLine := cmd.UseLine()
	if cmd.HasAvailableSubCommands() {
		useLine = cmd.CommandPath() + " <subcommand> [options]"
	}
	w.CodeBlock("bash", useLine)

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		aliases := make([]string, len(cmd.Aliases))
		for i, alias := range cmd.Aliases {
			aliases[i] = InlineCode(alias)
		}
		w.BulletList(aliases)
	}

	if subs := visibleCommands(cmd); len(subs) > 0 {
		w.Header(2, "Subcommands")
		rows := make([][]string, 0, len(subs))
		for _, sub := range subs {
			rows = append(rows, []string{InlineCode(sub.Name()), cleanDescription(sub.Short)})
		}
		w.Table([]string{"Subcommand", "Description"}, rows)
	}

	if cmd.HasAvailableLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}
	if cmd.HasAvailableInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}

	return w
}

// writeFlagsTable writes one row per visible flag.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = InlineCode("-" + f.Shorthand)
		}
		def := f.DefValue
		switch f.Value.Type() {
		case "string":
			if def != "" {
				def = InlineCode(def)
			}
		case "stringSlice", "stringArray":
			if def == "[]" {
				def = ""
			}
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, def, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Short", "Default", "Description"}, rows)
}

// dedent strips the indentation shared by all non-blank lines.
func dedent(text string) string {
	lines := strings.Split(strings.Trim(text, "\n"), "\n")

	prefix, found := "", false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found || len(indent) < len(prefix) {
			prefix, found = indent, true
		}
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}
