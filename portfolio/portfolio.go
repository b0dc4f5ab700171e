// Package portfolio accumulates scoring results per researcher identity
// while a batch runs, and feeds the accumulated portfolios to the S-Index
// calculator. Attribution stays caller-owned: results are grouped solely by
// the key the caller supplies.
package portfolio

import (
	"sort"
	"sync"

	"github.com/okian/share/pkg/metrics"
	"github.com/okian/share/scoring"
	"github.com/okian/share/signal"
	"github.com/okian/share/sindex"
)

// Collector is a concurrency-safe accumulator of results keyed by entity.
// Safe for use from any number of batch workers; index computation only
// needs to wait for the portfolio to be complete.
type Collector struct {
	mu       sync.RWMutex
	byEntity map[string][]scoring.Result
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{byEntity: make(map[string][]scoring.Result)}
}

// Add appends one result to an entity's portfolio.
func (c *Collector) Add(entity string, r scoring.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byEntity[entity] = append(c.byEntity[entity], r)
}

// Len returns the number of results accumulated for an entity.
func (c *Collector) Len(entity string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byEntity[entity])
}

// Entities returns all entity keys seen so far, sorted for determinism.
func (c *Collector) Entities() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.byEntity))
	for e := range c.byEntity {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Results returns a copy of an entity's portfolio. An unknown entity yields
// an empty portfolio, never an error.
func (c *Collector) Results(entity string) []scoring.Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	src := c.byEntity[entity]
	out := make([]scoring.Result, len(src))
	copy(out, src)
	return out
}

// SIndex computes the S-Index over an entity's accumulated totals.
func (c *Collector) SIndex(entity string) int {
	c.mu.RLock()
	results := c.byEntity[entity]
	n := len(results)
	idx := sindex.FromResults(results)
	c.mu.RUnlock()

	metrics.RecordIndexComputation(n)
	return idx
}

// BucketIndex computes the sub-index variant over one bucket's sub-scores.
func (c *Collector) BucketIndex(entity string, b signal.Bucket) int {
	c.mu.RLock()
	results := c.byEntity[entity]
	n := len(results)
	idx := sindex.FromBucket(results, b)
	c.mu.RUnlock()

	metrics.RecordIndexComputation(n)
	return idx
}
