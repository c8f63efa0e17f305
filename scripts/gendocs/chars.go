package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/datefmt"
)

// generateCharsDocs writes the format character reference, one section
// per dialect plus an overview matrix.
func generateCharsDocs(outDir string) error {
	log.Printf("Generating format character docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Format Characters", "PHP date() format characters and how each dialect produces them")
	w.GeneratedMarker()

	w.Header(1, "Format Characters")
	w.Paragraph("Each supported character compiles either to a " + Bold("native") +
		" token of the dialect's formatting function or to an " + Bold("emulated") +
		" expression built from generic date functions. Adjacent native characters share one call.")

	dialects := core.AllDialects()

	// Overview
	w.Header(2, "Overview")
	headers := []string{"Char", "Meaning"}
	for _, d := range dialects {
		headers = append(headers, d.String())
	}
	var rows [][]string
	for _, ch := range datefmt.Supported() {
		row := []string{InlineCode(string(ch)), datefmt.Describe(ch)}
		for _, d := range dialects {
			c, ok := datefmt.Lookup(d, ch)
			switch {
			case !ok:
				row = append(row, "")
			case c.Emulated():
				row = append(row, "emulated")
			default:
				row = append(row, "native")
			}
		}
		rows = append(rows, row)
	}
	w.Table(headers, rows)

	// Per dialect
	for _, d := range dialects {
		w.Header(2, d.String())
		var drows [][]string
		for _, c := range datefmt.Capabilities(d) {
			kind, how := "native", c.Native
			if c.Emulated() {
				kind, how = "emulated", c.Recipe.Describe()
			}
			drows = append(drows, []string{InlineCode(string(c.Char)), kind, InlineCode(how)})
		}
		w.Table([]string{"Char", "Kind", "Rendering"}, drows)
	}

	// Unsupported
	w.Header(2, "Unsupported Characters")
	w.Paragraph("These characters are rejected on every dialect. Escape them with a backslash to emit them literally.")
	var urows [][]string
	for _, ch := range datefmt.Unsupported() {
		urows = append(urows, []string{InlineCode(string(ch)), datefmt.Describe(ch)})
	}
	w.Table([]string{"Char", "Meaning"}, urows)

	filename := filepath.Join(outDir, "format-characters.md")
	log.Printf("  Generated format-characters.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}
