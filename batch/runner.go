// Package batch runs the score composer across many records on a bounded
// worker pool. Records are independent: no cross-record state, no ordering
// dependency beyond re-associating outcomes to inputs by position.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/share/pkg/logger"
	"github.com/okian/share/pkg/metrics"
	"github.com/okian/share/scoring"
	"github.com/okian/share/signal"
)

// Outcome is one record's batch result, index-aligned with the input.
// Exactly one of Result/Err is meaningful: Err is nil when scoring
// succeeded.
type Outcome struct {
	Result scoring.Result
	Err    error
}

// Runner scores record batches on a pool of goroutines.
type Runner struct {
	workers int
	logger  logger.Logger
}

// Option applies a configuration option to the Runner.
type Option func(*Runner)

// WithWorkers bounds the pool size. Values below 1 fall back to the
// default of one worker per CPU.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets a custom logger for the runner.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a runner with configuration options.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		workers: runtime.NumCPU(),
		logger:  logger.Named("batch"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run scores every record with the shared read-only mapping and returns one
// outcome per record, same order as the input. A fault in one record is
// reported in its outcome and never aborts the batch. Canceling ctx stops
// submission of further records: already-computed outcomes are returned and
// unreached records carry ErrNotProcessed.
func (r *Runner) Run(ctx context.Context, records []signal.Record, m *signal.Mapping) []Outcome {
	outcomes := make([]Outcome, len(records))
	if len(records) == 0 {
		return outcomes
	}

	runID := uuid.NewString()
	workers := r.workers
	if workers > len(records) {
		workers = len(records)
	}

	r.logger.Debug(ctx, "batch started",
		logger.String("run_id", runID),
		logger.Int("records", len(records)),
		logger.Int("workers", workers),
	)
	metrics.RecordBatchStarted(len(records))
	metrics.UpdateActiveWorkers(workers)
	defer metrics.UpdateActiveWorkers(0)

	// Pre-mark every outcome as unreached; workers overwrite as they go.
	for i := range outcomes {
		outcomes[i].Err = &ScoringError{Index: i, Err: ErrNotProcessed}
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx] = r.scoreOne(ctx, idx, records[idx], m)
			}
		}()
	}

	// Submit indices until done or canceled. Workers own disjoint slice
	// positions, so result collection needs no further synchronization.
	canceled := false
submit:
	for i := range records {
		select {
		case jobs <- i:
		case <-ctx.Done():
			canceled = true
			break submit
		}
	}
	close(jobs)
	wg.Wait()

	if canceled {
		for i := range outcomes {
			if errors.Is(outcomes[i].Err, ErrNotProcessed) {
				outcomes[i].Err = &ScoringError{
					Index: i,
					Err:   fmt.Errorf("%w: %w", ErrNotProcessed, ctx.Err()),
				}
			}
		}
		metrics.RecordBatchCanceled()
		r.logger.Warn(ctx, "batch canceled",
			logger.String("run_id", runID),
			logger.Error(ctx.Err()),
		)
		return outcomes
	}

	metrics.RecordBatchCompleted()
	r.logger.Debug(ctx, "batch completed", logger.String("run_id", runID))
	return outcomes
}

// scoreOne scores a single record. A panic becomes a per-record error;
// one malformed record never aborts the batch.
func (r *Runner) scoreOne(ctx context.Context, idx int, rec signal.Record, m *signal.Mapping) (out Outcome) {
	start := time.Now()
	defer func() {
		metrics.RecordScoringLatency(float64(time.Since(start).Microseconds()) / 1e3)
		if p := recover(); p != nil {
			metrics.RecordScoringError()
			r.logger.Error(ctx, "record scoring panicked",
				logger.Int("index", idx),
				logger.Any("panic", p),
			)
			out = Outcome{Err: &ScoringError{
				Index: idx,
				Err:   fmt.Errorf("%w: %v", ErrRecordPanicked, p),
			}}
		}
	}()

	res := scoring.Score(rec, m)
	if n := len(res.Faults); n > 0 {
		metrics.RecordExtractionFaults(n)
		r.logger.Debug(ctx, "extraction faults recovered",
			logger.Int("index", idx),
			logger.Int("faults", n),
		)
	}
	if res.Clamped {
		metrics.RecordClampedResult()
		r.logger.Warn(ctx, "result clamped to documented bounds",
			logger.Int("index", idx),
			logger.Float64("total", res.Total),
		)
	}
	metrics.RecordScored()
	return Outcome{Result: res}
}
