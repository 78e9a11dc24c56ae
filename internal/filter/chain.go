package filter

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tkingovr/interceptor/api"
)

// Chain executes a sequence of filters in order, followed by an optional target.
type Chain struct {
	mu      sync.RWMutex
	filters []Filter
	target  Target // nil when no terminal step is set
	logger  *slog.Logger
}

// NewChain creates a new filter chain with no target.
func NewChain(logger *slog.Logger, filters ...Filter) *Chain {
	c := &Chain{logger: logger}
	for _, f := range filters {
		c.AddFilter(f)
	}
	return c
}

// AddFilter appends a filter to the chain. Duplicates are kept.
func (c *Chain) AddFilter(f Filter) {
	if f == nil {
		panic("filter: nil filter passed to AddFilter")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = append(c.filters, f)
}

// SetTarget replaces the terminal step. A nil target clears it.
func (c *Chain) SetTarget(t Target) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = t
}

// Target returns the current target and whether one is set.
func (c *Chain) Target() (Target, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.target, c.target != nil
}

// Filters returns a copy of the registered filters in execution order.
func (c *Chain) Filters() []Filter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Filter(nil), c.filters...)
}

// Len returns the number of registered filters.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.filters)
}

// Execute applies every filter to req in registration order and then hands
// the request to the target, if one is set. Filters registered while Execute
// is running take effect on the next call.
func (c *Chain) Execute(ctx context.Context, req api.Request) {
	c.mu.RLock()
	filters := c.filters[:len(c.filters):len(c.filters)]
	target := c.target
	c.mu.RUnlock()

	logger := c.logger
	if id, ok := RequestIDFromContext(ctx); ok {
		logger = logger.With("request_id", id)
	}

	for _, f := range filters {
		f.Apply(ctx, req)
		logger.Debug("filter applied",
			"filter", f.Name(),
			"request", req.String(),
		)
	}

	if target == nil {
		logger.Debug("no target set", "request", req.String())
		return
	}

	target.Handle(ctx, req)
	logger.Debug("target handled",
		"target", target.Name(),
		"request", req.String(),
	)
}
