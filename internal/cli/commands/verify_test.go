package commands

import (
	"testing"
	"time"

	"github.com/leapstack-labs/sqldatefmt/internal/cli/output"
	"github.com/leapstack-labs/sqldatefmt/internal/cli/testutil"
	"github.com/leapstack-labs/sqldatefmt/internal/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *verify.Report {
	at := time.Date(2024, 2, 29, 13, 5, 9, 0, time.UTC)
	return &verify.Report{
		RunID:    "run-1",
		Duration: 1500 * time.Millisecond,
		Targets: []*verify.TargetReport{
			{
				Name:    "local",
				Dialect: "sqlite",
				Results: []verify.Result{
					{Format: "Y", Instant: at, Want: "2024", Got: "2024", Passed: true},
					{Format: "t", Instant: at, Want: "29", Null: true},
				},
			},
			{Name: "pg", Dialect: "postgres", Error: "connection refused"},
		},
	}
}

func TestRenderVerify(t *testing.T) {
	tests := []struct {
		name     string
		mode     output.Mode
		contains []string
	}{
		{
			name:     "text",
			mode:     output.ModeText,
			contains: []string{"local", "connection refused", "NULL", "2024-02-29 13:05:09", "✗ 1 passed, 1 failed", "(run run-1, 1.5s)"},
		},
		{
			name:     "markdown",
			mode:     output.ModeMarkdown,
			contains: []string{"# Verification", "- **Run**: run-1", "- **Failed**: 1", "## Failures", "| local "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := testutil.NewTestRenderer(tt.mode, false)
			require.NoError(t, renderVerify(tr.Renderer, sampleReport()))

			out := tr.Output()
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			testutil.AssertNoANSI(t, out)
			if tt.mode == output.ModeMarkdown {
				testutil.AssertValidMarkdown(t, out)
			}
			assert.Empty(t, tr.ErrorOutput())
		})
	}
}

func TestRenderVerify_AllPassed(t *testing.T) {
	report := &verify.Report{RunID: "run-2", Targets: []*verify.TargetReport{{
		Name:    "local",
		Results: []verify.Result{{Format: "Y", Want: "2024", Got: "2024", Passed: true}},
	}}}

	tr := testutil.NewTestRenderer(output.ModeText, false)
	require.NoError(t, renderVerify(tr.Renderer, report))
	assert.Contains(t, tr.Output(), "✓ 1 passed, 0 failed")
	assert.NotContains(t, tr.Output(), "Want")
}
