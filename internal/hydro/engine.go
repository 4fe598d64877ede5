package hydro

import (
	"context"
	"log/slog"
	"time"

	"hydrocli/internal/errors"
)

// Config holds the engine knobs that are configurable. Canonical ranks and
// output precisions are fixed.
type Config struct {
	// MissingThreshold is the per-year missing count that blanks a column
	// under the standard rules.
	MissingThreshold int
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{MissingThreshold: DefaultMissingThreshold}
}

// Engine runs the full post-processing pipeline over one pair of observation
// tables. It is stateless between invocations.
type Engine struct {
	cfg    Config
	logger *slog.Logger
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MissingThreshold == 0 {
		cfg.MissingThreshold = DefaultMissingThreshold
	}
	return &Engine{cfg: cfg, logger: logger}
}

// standardStrategy is the threshold-gated, scaled rule set.
func (e *Engine) standardStrategy() Strategy {
	return Strategy{
		MissingThreshold: e.cfg.MissingThreshold,
		TieBreak:         TieByDay,
		ScaleRanks:       true,
	}
}

// referenceStrategy is the threshold-free, unscaled rule set.
func (e *Engine) referenceStrategy() Strategy {
	return Strategy{TieBreak: TieBySharedKey}
}

// Run executes the pipeline: aggregate, merge, rank under both rule sets,
// flow-duration estimation, peak extraction and year summaries. The daily
// table may be empty, which drops the daily-value column from every stage.
// An empty hourly table is a fatal EmptyInputError. The context is used for
// logging only; the computation itself is fast, bounded and non-blocking.
func (e *Engine) Run(ctx context.Context, hourly, daily []Observation) (*Result, error) {
	if len(hourly) == 0 {
		return nil, errors.NewEmptyInputError("hourly")
	}

	start := time.Now()
	res := &Result{HasDaily: len(daily) > 0}
	cols := res.Columns()

	e.logger.InfoContext(ctx, "starting post-processing",
		slog.Int("hourly_rows", len(hourly)),
		slog.Int("daily_rows", len(daily)),
		slog.Int("missing_threshold", e.cfg.MissingThreshold))

	aggs := Aggregate(hourly)
	merged := Merge(aggs, daily)
	e.logger.InfoContext(ctx, "merged daily table",
		slog.Int("hydro_days", len(merged)))

	stdStrat := e.standardStrategy()
	refStrat := e.referenceStrategy()

	res.Standard = Table{RuleSet: RuleStandard, Rows: Rank(merged, cols, stdStrat)}
	res.Reference = Table{RuleSet: RuleReference, Rows: Rank(merged, cols, refStrat)}

	res.FlowDurations = AddFlowDurations(res.Standard.Rows, cols, stdStrat, RuleStandard)
	res.FlowDurations = append(res.FlowDurations,
		AddFlowDurations(res.Reference.Rows, cols, refStrat, RuleReference)...)

	res.Peaks = Peaks(hourly)
	res.StandardSummary = Summarize(res.Standard.Rows, hourly, cols, stdStrat)
	res.ReferenceSummary = Summarize(res.Reference.Rows, hourly, cols, refStrat)

	e.logger.InfoContext(ctx, "post-processing completed",
		slog.Int("years", len(res.StandardSummary)),
		slog.Int("peak_rows", len(res.Peaks)),
		slog.Duration("duration", time.Since(start)))
	return res, nil
}
