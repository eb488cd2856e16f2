// Package runner wraps the analysis engine with retries, cooperative
// pause/cancel control, and result post-processing (significance
// cutoff and sort selection).
package runner

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pathxcite/enrich/internal/geneset"
	"github.com/pathxcite/enrich/internal/ora"
)

// Analyzer is the engine contract the runner drives. *ora.Engine
// satisfies it.
type Analyzer interface {
	Run(ctx context.Context, query geneset.Set, libraryName string, opts ora.Options) (ora.Table, error)
}

// Status tags an Outcome. Keeping the cases distinct lets callers
// tell "nothing significant" from "gave up" from "told to stop".
type Status int

const (
	// StatusOK: the table holds at least one row passing the cutoff.
	StatusOK Status = iota
	// StatusEmpty: the run succeeded but nothing passed the cutoff.
	StatusEmpty
	// StatusCanceled: stopped at a checkpoint before completion.
	StatusCanceled
	// StatusFailed: every attempt errored; Err holds the last error.
	StatusFailed
)

// String returns a short status label.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusCanceled:
		return "canceled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one Perform call.
type Outcome struct {
	Status Status
	Table  ora.Table
	Err    error
}

// Config controls retry behavior and post-processing.
type Config struct {
	Options    ora.Options
	SortBy     string        // output column name; default adjusted p-value
	Cutoff     float64       // keep rows with AdjustedP <= Cutoff; default 1.0
	MaxRetries int           // total attempts; default 3
	RetryDelay time.Duration // wait between failed attempts; default 2s
}

func (c *Config) applyDefaults() {
	if c.SortBy == "" {
		c.SortBy = ora.ColAdjustedP
	}
	if c.Cutoff == 0 {
		c.Cutoff = 1.0
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = 2 * time.Second
	}
}

// Runner executes enrichment analyses with retry and cooperative
// control. Pause and stop are honored at checkpoints between
// attempts; an in-flight engine run is not interrupted beyond context
// cancellation.
type Runner struct {
	engine Analyzer
	cfg    Config
	logger *zap.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	stopped bool
	paused  bool
}

// New creates a runner around an engine. Zero Config fields take the
// documented defaults.
func New(engine Analyzer, cfg Config) *Runner {
	cfg.applyDefaults()
	r := &Runner{
		engine: engine,
		cfg:    cfg,
		logger: zap.NewNop(),
	}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// SetLogger sets the logger for attempt and failure messages.
func (r *Runner) SetLogger(l *zap.Logger) {
	r.logger = l
}

// Pause suspends the runner at its next checkpoint. In-flight work
// finishes first; no state is lost.
func (r *Runner) Pause() {
	r.mu.Lock()
	r.paused = true
	r.mu.Unlock()
}

// Resume releases a paused runner.
func (r *Runner) Resume() {
	r.mu.Lock()
	r.paused = false
	r.mu.Unlock()
	r.cond.Broadcast()
}

// Stop cancels the runner at its next checkpoint. A paused runner is
// woken so it can observe the stop.
func (r *Runner) Stop() {
	r.mu.Lock()
	r.stopped = true
	r.paused = false
	r.mu.Unlock()
	r.cond.Broadcast()
}

// waitIfPaused blocks while paused and reports whether the runner may
// proceed (false means it was stopped).
func (r *Runner) waitIfPaused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.paused && !r.stopped {
		r.cond.Wait()
	}
	return !r.stopped
}

func (r *Runner) isStopped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}

// Perform runs the analysis with retries and returns a tagged
// Outcome. Engine errors are retried up to MaxRetries total attempts
// with RetryDelay between; cancellation (Stop or ctx) at a checkpoint
// yields StatusCanceled without an error.
func (r *Runner) Perform(ctx context.Context, query geneset.Set, libraryName string) Outcome {
	for attempt := 1; attempt <= r.cfg.MaxRetries; attempt++ {
		if r.isStopped() || ctx.Err() != nil {
			r.logger.Info("enrichment stopped before attempt",
				zap.Int("attempt", attempt))
			return Outcome{Status: StatusCanceled}
		}
		if !r.waitIfPaused() {
			r.logger.Info("enrichment stopped while paused")
			return Outcome{Status: StatusCanceled}
		}

		table, err := r.engine.Run(ctx, query, libraryName, r.cfg.Options)
		if err == nil {
			return r.postprocess(table)
		}
		if ctx.Err() != nil {
			return Outcome{Status: StatusCanceled}
		}

		r.logger.Warn("enrichment attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", r.cfg.MaxRetries),
			zap.Error(err))

		if attempt == r.cfg.MaxRetries {
			r.logger.Error("enrichment failed, retries exhausted",
				zap.String("library", libraryName),
				zap.Error(err))
			return Outcome{Status: StatusFailed, Err: err}
		}

		select {
		case <-time.After(r.cfg.RetryDelay):
		case <-ctx.Done():
			return Outcome{Status: StatusCanceled}
		}
	}
	// Unreachable: the loop always returns.
	return Outcome{Status: StatusFailed}
}

// postprocess applies the cutoff filter and the caller's sort choice.
func (r *Runner) postprocess(table ora.Table) Outcome {
	if len(table) == 0 {
		return Outcome{Status: StatusEmpty}
	}

	kept := make(ora.Table, 0, len(table))
	for _, row := range table {
		if row.AdjustedP <= r.cfg.Cutoff {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		r.logger.Info("no rows passed the cutoff",
			zap.Float64("cutoff", r.cfg.Cutoff),
			zap.Int("rows", len(table)))
		return Outcome{Status: StatusEmpty}
	}

	if !kept.SortByColumn(r.cfg.SortBy) {
		kept.SortByColumn(ora.ColAdjustedP)
	}
	return Outcome{Status: StatusOK, Table: kept}
}
