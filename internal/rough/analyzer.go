package rough

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"roughlab/internal/decision"
)

// settings collects the knobs shared by the analyzer and the standalone
// reduct search.
type settings struct {
	maxAttrs int
	workers  int
	log      *zap.Logger
	now      func() time.Time
}

func newSettings(opts []Option) settings {
	s := settings{
		maxAttrs: DefaultMaxAttributes,
		workers:  runtime.GOMAXPROCS(0),
		log:      zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option adjusts an analysis run.
type Option func(*settings)

// WithMaxAttributes raises or lowers the reduct search bound. Values
// below 1 keep the default.
func WithMaxAttributes(n int) Option {
	return func(s *settings) {
		if n >= 1 {
			s.maxAttrs = n
		}
	}
}

// WithWorkers sets how many goroutines evaluate reduct candidates.
// Values below 1 keep the GOMAXPROCS default. Results are identical for
// any worker count.
func WithWorkers(n int) Option {
	return func(s *settings) {
		if n >= 1 {
			s.workers = n
		}
	}
}

// WithLogger attaches a logger for run diagnostics. Nil keeps the nop
// logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source, which pins GeneratedAt and
// Elapsed in tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// Report is the complete result of one analysis run over a table. Every
// slice is in its operation's canonical order, so equal tables produce
// equal reports modulo RunID and timing.
type Report struct {
	RunID       string        `json:"run_id"`
	Table       string        `json:"table,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
	Elapsed     time.Duration `json:"elapsed"`

	Objects        int      `json:"objects"`
	Attributes     []string `json:"attributes"`
	DecisionName   string   `json:"decision_name"`
	DecisionValues []string `json:"decision_values"`

	Partition      *Partition      `json:"partition"`
	Approximations []Approximation `json:"approximations"`
	Reducts        []Reduct        `json:"reducts"`
	MinimalReducts []Reduct        `json:"minimal_reducts"`
	Rules          []Rule          `json:"rules"`
	Conflicts      []Conflict      `json:"conflicts"`
	Consistent     bool            `json:"consistent"`
}

// Analyzer runs the full pipeline over a table: partition, per-value
// approximations, reduct search, rule induction, conflict detection.
type Analyzer struct {
	s settings
}

// NewAnalyzer builds an analyzer. The zero option set gives a nop logger,
// GOMAXPROCS workers, and the default reduct bound.
func NewAnalyzer(opts ...Option) *Analyzer {
	return &Analyzer{s: newSettings(opts)}
}

// Run analyzes tbl under its full condition attribute set. The four
// result sections are independent, so they fan out on an errgroup; the
// report they assemble is deterministic regardless of scheduling.
func (a *Analyzer) Run(ctx context.Context, tbl *decision.Table) (*Report, error) {
	start := a.s.now()
	attrs := tbl.Attributes()

	report := &Report{
		RunID:          uuid.NewString(),
		Table:          tbl.Name(),
		GeneratedAt:    start,
		Objects:        tbl.Len(),
		Attributes:     attrs,
		DecisionName:   tbl.DecisionName(),
		DecisionValues: tbl.DecisionValues(),
	}

	a.s.log.Debug("analysis started",
		zap.String("run_id", report.RunID),
		zap.Int("objects", report.Objects),
		zap.Int("attributes", len(attrs)),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := NewPartition(tbl, attrs)
		if err != nil {
			return err
		}
		report.Partition = p
		return nil
	})

	g.Go(func() error {
		approxs, err := ApproximateAll(tbl, attrs)
		if err != nil {
			return err
		}
		report.Approximations = approxs
		return nil
	})

	g.Go(func() error {
		reducts, err := FindReducts(gctx, tbl, attrs,
			WithMaxAttributes(a.s.maxAttrs),
			WithWorkers(a.s.workers),
		)
		if err != nil {
			return err
		}
		report.Reducts = reducts
		report.MinimalReducts = MinimalReducts(reducts)
		return nil
	})

	g.Go(func() error {
		rules, err := InduceRules(tbl, attrs)
		if err != nil {
			return err
		}
		report.Rules = rules
		return nil
	})

	g.Go(func() error {
		conflicts, err := FindConflicts(tbl, attrs)
		if err != nil {
			return err
		}
		report.Conflicts = conflicts
		return nil
	})

	if err := g.Wait(); err != nil {
		a.s.log.Warn("analysis failed", zap.String("run_id", report.RunID), zap.Error(err))
		return nil, err
	}

	report.Consistent = len(report.Conflicts) == 0
	report.Elapsed = a.s.now().Sub(start)

	a.s.log.Info("analysis complete",
		zap.String("run_id", report.RunID),
		zap.Int("classes", len(report.Partition.Blocks)),
		zap.Int("reducts", len(report.Reducts)),
		zap.Int("rules", len(report.Rules)),
		zap.Int("conflicts", len(report.Conflicts)),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}
