package filter

import (
	"context"

	"github.com/tkingovr/interceptor/api"
)

// Filter is a single pre-processing step in the request pipeline.
type Filter interface {
	// Name returns the filter name for logging.
	Name() string

	// Apply observes the request. It has no result and cannot stop the chain;
	// its effect is whatever side effect the implementation produces.
	Apply(ctx context.Context, req api.Request)
}

// Target is the terminal handler that performs the real work for a request.
type Target interface {
	// Name returns the target name for logging.
	Name() string

	// Handle performs the action represented by the request.
	Handle(ctx context.Context, req api.Request)
}

type funcFilter struct {
	name string
	fn   func(context.Context, api.Request)
}

// Func adapts an ordinary function into a named Filter.
func Func(name string, fn func(ctx context.Context, req api.Request)) Filter {
	return &funcFilter{name: name, fn: fn}
}

func (f *funcFilter) Name() string { return f.name }

func (f *funcFilter) Apply(ctx context.Context, req api.Request) { f.fn(ctx, req) }

type funcTarget struct {
	name string
	fn   func(context.Context, api.Request)
}

// TargetFunc adapts an ordinary function into a named Target.
func TargetFunc(name string, fn func(ctx context.Context, req api.Request)) Target {
	return &funcTarget{name: name, fn: fn}
}

func (t *funcTarget) Name() string { return t.name }

func (t *funcTarget) Handle(ctx context.Context, req api.Request) { t.fn(ctx, req) }
