// Package engine wires configuration, logging, the batch runner and the
// portfolio collector into one scoring facade. It is the convenience layer;
// every operation is also reachable through the underlying packages.
package engine

import (
	"context"
	"fmt"

	"github.com/okian/share/batch"
	"github.com/okian/share/config"
	"github.com/okian/share/pkg/logger"
	"github.com/okian/share/portfolio"
	"github.com/okian/share/scoring"
	"github.com/okian/share/signal"
)

// Engine scores records and accumulates per-researcher portfolios.
type Engine struct {
	cfg       *config.Config
	registry  *config.Registry
	mapping   *signal.Mapping
	runner    *batch.Runner
	collector *portfolio.Collector
	logger    logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithConfig supplies a pre-built configuration instead of defaults.
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) {
		if cfg != nil {
			e.cfg = cfg
		}
	}
}

// WithMapping overrides the signal mapping for all scoring, bypassing the
// registry selection.
func WithMapping(m *signal.Mapping) Option {
	return func(e *Engine) {
		if m != nil {
			e.mapping = m
		}
	}
}

// WithRegistry supplies an already-loaded mapping registry, e.g. one built
// in tests, instead of loading from cfg.MappingsPath.
func WithRegistry(r *config.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New builds an engine. All configuration faults surface here, before any
// scoring begins: a bad registry file, an unknown default repository or an
// invalid log level fail construction.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:       config.New(),
		collector: portfolio.NewCollector(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.Named("engine")
	}

	if err := logger.SetLevelString(e.cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	if e.registry == nil && e.cfg.MappingsPath != "" {
		reg, err := config.LoadRegistry(e.cfg.MappingsPath)
		if err != nil {
			return nil, err
		}
		e.registry = reg
	}

	if e.mapping == nil {
		if repo := e.cfg.DefaultRepository; repo != "" {
			m, ok := e.mappingFor(repo)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownRepository, repo)
			}
			e.mapping = m
		} else {
			e.mapping = signal.DefaultMapping()
		}
	}

	e.runner = batch.NewRunner(
		batch.WithWorkers(e.cfg.WorkerCount),
		batch.WithLogger(e.logger.Named("batch")),
	)
	return e, nil
}

func (e *Engine) mappingFor(repo string) (*signal.Mapping, bool) {
	if e.registry == nil {
		return nil, false
	}
	return e.registry.Mapping(repo)
}

// Score scores one record with the engine's mapping.
func (e *Engine) Score(rec signal.Record) scoring.Result {
	return scoring.Score(rec, e.mapping)
}

// ScoreFor scores one record with a named repository mapping from the
// registry.
func (e *Engine) ScoreFor(repo string, rec signal.Record) (scoring.Result, error) {
	m, ok := e.mappingFor(repo)
	if !ok {
		return scoring.Result{}, fmt.Errorf("%w: %q", ErrUnknownRepository, repo)
	}
	return scoring.Score(rec, m), nil
}

// ScoreMany scores a batch with the engine's mapping; outcomes are
// index-aligned with the input.
func (e *Engine) ScoreMany(ctx context.Context, records []signal.Record) []batch.Outcome {
	return e.runner.Run(ctx, records, e.mapping)
}

// ScoreManyFor scores a batch with a named repository mapping.
func (e *Engine) ScoreManyFor(ctx context.Context, repo string, records []signal.Record) ([]batch.Outcome, error) {
	m, ok := e.mappingFor(repo)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRepository, repo)
	}
	return e.runner.Run(ctx, records, m), nil
}

// CollectMany scores a batch attributed to one entity and feeds successful
// outcomes into the portfolio collector. The full outcome slice is returned
// so failed records stay visible to the caller.
func (e *Engine) CollectMany(ctx context.Context, entity string, records []signal.Record) []batch.Outcome {
	outcomes := e.ScoreMany(ctx, records)
	for _, o := range outcomes {
		if o.Err == nil {
			e.collector.Add(entity, o.Result)
		}
	}
	return outcomes
}

// SIndexFor returns the S-Index over an entity's accumulated portfolio.
func (e *Engine) SIndexFor(entity string) int {
	return e.collector.SIndex(entity)
}

// Collector exposes the portfolio collector for direct use.
func (e *Engine) Collector() *portfolio.Collector {
	return e.collector
}

// Repositories lists the registry's repository names; empty without a
// registry.
func (e *Engine) Repositories() []string {
	if e.registry == nil {
		return nil
	}
	return e.registry.Repositories()
}
