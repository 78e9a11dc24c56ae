package filter

import (
	"context"
	"log/slog"

	"github.com/gofrs/uuid/v5"

	"github.com/tkingovr/interceptor/api"
)

// Manager is a facade over a single Chain whose target is fixed at construction.
type Manager struct {
	chain  *Chain
	logger *slog.Logger
}

// NewManager creates a manager owning a fresh chain bound to target.
// A nil target yields a chain with no terminal step.
func NewManager(logger *slog.Logger, target Target) *Manager {
	chain := NewChain(logger)
	chain.SetTarget(target)
	return &Manager{
		chain:  chain,
		logger: logger,
	}
}

// RegisterFilter appends f to the owned chain.
func (m *Manager) RegisterFilter(f Filter) {
	m.chain.AddFilter(f)
}

// Submit runs req through the owned chain. Each submission is tagged with a
// fresh request id unless ctx already carries one.
func (m *Manager) Submit(ctx context.Context, req api.Request) {
	if _, ok := RequestIDFromContext(ctx); !ok {
		if id, err := uuid.NewV4(); err == nil {
			ctx = ContextWithRequestID(ctx, id.String())
		} else {
			m.logger.Warn("generating request id", "error", err)
		}
	}
	m.chain.Execute(ctx, req)
}

// Chain returns the owned chain for inspection.
func (m *Manager) Chain() *Chain {
	return m.chain
}
