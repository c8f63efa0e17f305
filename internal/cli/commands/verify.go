package commands

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/leapstack-labs/sqldatefmt/internal/cli/config"
	"github.com/leapstack-labs/sqldatefmt/internal/cli/output"
	"github.com/leapstack-labs/sqldatefmt/internal/verify"
	"github.com/leapstack-labs/sqldatefmt/pkg/datefmt"
	"github.com/spf13/cobra"

	// Adapters register themselves with the adapter registry.
	_ "github.com/leapstack-labs/sqldatefmt/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/sqldatefmt/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/sqldatefmt/pkg/adapters/sqlite"
	_ "github.com/leapstack-labs/sqldatefmt/pkg/adapters/sqlserver"
)

// ErrVerificationFailed is returned when any case fails or any target is unreachable.
var ErrVerificationFailed = errors.New("verification failed")

// defaultVerifyFormats are checked in addition to every single supported character.
var defaultVerifyFormats = []string{
	"Y-m-d H:i:s",
	"D, d M Y",
	`l \t\h\e j F`,
	"g:i a",
	"h:i A",
	"W/o",
	"t",
	"100% y",
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run compiled formats against live databases",
		Long: `Compile formats for each configured target, evaluate them on the live
engine at a fixed set of instants and compare every result with the
PHP date() reference.

Targets are read from the "targets" section of datefmt.yaml:

  targets:
    local:
      type: sqlite
    pg:
      type: postgres
      host: localhost
      database: postgres
      user: postgres
      password: ${PGPASSWORD}

Without --format every supported character and a set of composite
formats are checked.`,
		Example: `  datefmt verify
  datefmt verify --target pg --format 'Y-m-d' --format 'D, d M Y'
  datefmt verify --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd)
		},
	}

	cmd.Flags().StringSlice("target", nil, "Targets to verify (default: all configured)")
	cmd.Flags().StringArrayP("format", "f", nil, "Format to verify (repeatable)")
	_ = cmd.RegisterFlagCompletionFunc("target", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return targetNames(getConfig()), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runVerify(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	names, _ := cmd.Flags().GetStringSlice("target")
	targets, err := selectTargets(cmdCtx.Cfg, names)
	if err != nil {
		return err
	}

	formats, _ := cmd.Flags().GetStringArray("format")
	if len(formats) == 0 {
		formats = allVerifyFormats()
	}

	v := verify.New(cmdCtx.Logger, targets...)
	report, err := v.Run(cmd.Context(), formats, nil)
	if err != nil {
		return err
	}

	if err := renderVerify(r, report); err != nil {
		return err
	}
	if !report.OK() {
		return ErrVerificationFailed
	}
	return nil
}

func allVerifyFormats() []string {
	formats := make([]string, 0, len(datefmt.Supported())+len(defaultVerifyFormats))
	for _, ch := range datefmt.Supported() {
		formats = append(formats, string(ch))
	}
	return append(formats, defaultVerifyFormats...)
}

func targetNames(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Targets))
	for name := range cfg.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// selectTargets returns the named targets, or all configured targets when
// names is empty.
func selectTargets(cfg *config.Config, names []string) ([]verify.Target, error) {
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("%w\nHint: add a targets section to datefmt.yaml", verify.ErrNoTargets)
	}
	if len(names) == 0 {
		names = targetNames(cfg)
	}

	targets := make([]verify.Target, 0, len(names))
	for _, name := range names {
		t, ok := cfg.Targets[name]
		if !ok {
			return nil, fmt.Errorf("unknown target %q\nAvailable targets: %v", name, targetNames(cfg))
		}
		targets = append(targets, verify.Target{Name: name, Config: t.AdapterConfig()})
	}
	return targets, nil
}

func renderVerify(r *output.Renderer, report *verify.Report) error {
	mode := r.EffectiveMode()
	if mode == output.ModeJSON {
		return r.JSON(report)
	}

	passed, failed := report.Counts()
	if mode == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Verification"))
		r.Println("")
		r.Println(output.FormatKeyValue("Run", report.RunID))
		r.Println(output.FormatKeyValue("Passed", strconv.Itoa(passed)))
		r.Println(output.FormatKeyValue("Failed", strconv.Itoa(failed)))
		r.Println("")
	}

	summary := make([][]string, 0, len(report.Targets))
	for _, t := range report.Targets {
		status := "ok"
		if t.Error != "" {
			status = t.Error
		}
		summary = append(summary, []string{
			t.Name,
			t.Dialect,
			strconv.Itoa(len(t.Results) - len(t.Failed())),
			strconv.Itoa(len(t.Failed())),
			status,
		})
	}
	r.Table([]string{"Target", "Dialect", "Passed", "Failed", "Status"}, summary)

	var failures [][]string
	for _, t := range report.Targets {
		for _, res := range t.Failed() {
			got := res.Got
			if res.Error != "" {
				got = "error: " + res.Error
			} else if res.Null {
				got = "NULL"
			}
			failures = append(failures, []string{
				t.Name,
				res.Format,
				res.Instant.Format("2006-01-02 15:04:05"),
				res.Want,
				got,
			})
		}
	}
	if len(failures) > 0 {
		r.Println("")
		if mode == output.ModeMarkdown {
			r.Println(output.FormatHeader(2, "Failures"))
			r.Println("")
		}
		r.Table([]string{"Target", "Format", "Instant", "Want", "Got"}, failures)
	}

	if mode != output.ModeMarkdown {
		styles := r.Styles()
		icon, line := styles.StatusSuccess.String(), styles.Success
		if !report.OK() {
			icon, line = styles.StatusFailed.String(), styles.Error
		}
		r.Println("")
		r.Printf("%s %s %s\n", icon,
			line.Render(fmt.Sprintf("%d passed, %d failed", passed, failed)),
			styles.Muted.Render(fmt.Sprintf("(run %s, %s)", report.RunID, report.Duration.Round(time.Millisecond))))
	}
	return nil
}
