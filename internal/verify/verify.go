// Package verify runs compiled date formats against live database engines
// and compares every result with the PHP date() reference formatter.
package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/sqldatefmt/internal/phpdate"
	"github.com/leapstack-labs/sqldatefmt/pkg/adapter"
	"github.com/leapstack-labs/sqldatefmt/pkg/datefmt"
	"github.com/leapstack-labs/sqldatefmt/pkg/expr"
	"golang.org/x/sync/errgroup"
)

// ErrNoTargets is returned when Run is called without targets.
var ErrNoTargets = errors.New("no verification targets configured")

// Target is a named database to verify against.
// When Adapter is nil one is created from Config through the adapter registry.
type Target struct {
	Name    string
	Config  adapter.Config
	Adapter adapter.Adapter
}

// DefaultInstants cover midnight, noon, leap days, Sundays and ISO year boundaries.
var DefaultInstants = []time.Time{
	time.Date(2024, time.January, 5, 9, 4, 5, 0, time.UTC),
	time.Date(2023, time.January, 1, 0, 30, 0, 0, time.UTC),
	time.Date(2024, time.February, 29, 23, 59, 58, 0, time.UTC),
	time.Date(2024, time.December, 30, 12, 0, 0, 0, time.UTC),
	time.Date(2021, time.January, 3, 13, 7, 9, 0, time.UTC),
	time.Date(1999, time.October, 10, 10, 10, 10, 0, time.UTC),
}

// Verifier runs formats against a set of targets.
type Verifier struct {
	logger  *slog.Logger
	targets []Target
}

// New creates a verifier. If logger is nil, a discard logger is used.
func New(logger *slog.Logger, targets ...Target) *Verifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Verifier{logger: logger, targets: targets}
}

// Run compiles every format for every target, evaluates it at every instant
// and compares the result with phpdate.Format. Targets run concurrently.
//
// A target that cannot connect is recorded in its TargetReport; Run only
// fails for invalid formats or a cancelled context.
func (v *Verifier) Run(ctx context.Context, formats []string, instants []time.Time) (*Report, error) {
	if len(v.targets) == 0 {
		return nil, ErrNoTargets
	}
	for _, f := range formats {
		if err := datefmt.Validate(f); err != nil {
			return nil, fmt.Errorf("invalid format %q: %w", f, err)
		}
	}
	if len(instants) == 0 {
		instants = DefaultInstants
	}

	report := &Report{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
		Targets:   make([]*TargetReport, len(v.targets)),
	}
	logger := v.logger.With(slog.String("run_id", report.RunID))
	logger.Info("verification started",
		slog.Int("targets", len(v.targets)),
		slog.Int("formats", len(formats)),
		slog.Int("instants", len(instants)))

	g, gctx := errgroup.WithContext(ctx)
	for i, target := range v.targets {
		g.Go(func() error {
			tr, err := v.runTarget(gctx, logger, target, formats, instants)
			report.Targets[i] = tr
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Duration = time.Since(report.StartedAt)
	passed, failed := report.Counts()
	logger.Info("verification finished",
		slog.Int("passed", passed),
		slog.Int("failed", failed),
		slog.Duration("duration", report.Duration))

	return report, nil
}

func (v *Verifier) runTarget(ctx context.Context, logger *slog.Logger, target Target, formats []string, instants []time.Time) (*TargetReport, error) {
	tr := &TargetReport{Name: target.Name}
	logger = logger.With(slog.String("target", target.Name))

	a := target.Adapter
	if a == nil {
		var err error
		a, err = adapter.NewAdapter(target.Config, logger)
		if err != nil {
			tr.Error = err.Error()
			return tr, nil
		}
	}
	tr.Dialect = a.Dialect().Name

	if err := a.Connect(ctx, target.Config); err != nil {
		logger.Warn("target unavailable", slog.String("error", err.Error()))
		tr.Error = err.Error()
		return tr, nil
	}
	defer func() { _ = a.Close() }()

	for _, format := range formats {
		for _, instant := range instants {
			if err := ctx.Err(); err != nil {
				return tr, err
			}
			tr.Results = append(tr.Results, v.runCase(ctx, a, format, instant))
		}
	}

	logger.Debug("target finished", slog.Int("failed", len(tr.Failed())))
	return tr, nil
}

func (v *Verifier) runCase(ctx context.Context, a adapter.Adapter, format string, instant time.Time) Result {
	res := Result{Format: format, Instant: instant}

	want, err := phpdate.Format(instant, format)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Want = want

	compiled, err := datefmt.Compile(a.Dialect(), expr.Timestamp{Time: instant}, format)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.SQL = "select " + compiled

	got, null, err := a.QueryString(ctx, res.SQL)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Got = got
	res.Null = null
	res.Passed = !null && Matches(want, got)
	return res
}
