package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"

	"github.com/tkingovr/interceptor/internal/filter"
	"github.com/tkingovr/interceptor/internal/metrics"
)

// Deps are the shared resources handed to every factory.
type Deps struct {
	Out     io.Writer
	Logger  *slog.Logger
	Metrics *metrics.Collector // optional
}

// FilterFactory creates a filter from its raw options block.
type FilterFactory func(options map[string]any, deps Deps) (filter.Filter, error)

// TargetFactory creates a target from its raw options block.
type TargetFactory func(options map[string]any, deps Deps) (filter.Target, error)

// Registry maps config kinds to factories.
type Registry struct {
	mu      sync.RWMutex
	filters map[string]FilterFactory
	targets map[string]TargetFactory
}

// NewRegistry returns a registry preloaded with the built-in kinds.
func NewRegistry() *Registry {
	r := &Registry{
		filters: make(map[string]FilterFactory),
		targets: make(map[string]TargetFactory),
	}
	r.RegisterFilter("authentication", newAuthenticationFilter)
	r.RegisterFilter("debug", newDebugFilter)
	r.RegisterFilter("secret", newSecretFilter)
	r.RegisterFilter("policy", newPolicyFilter)
	r.RegisterFilter("expr", newExprFilter)
	r.RegisterTarget("console", newConsoleTarget)
	return r
}

// RegisterFilter adds or replaces the factory for a filter kind.
func (r *Registry) RegisterFilter(kind string, f FilterFactory) {
	if f == nil {
		panic("pipeline: nil factory passed to RegisterFilter")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[kind] = f
}

// RegisterTarget adds or replaces the factory for a target kind.
func (r *Registry) RegisterTarget(kind string, f TargetFactory) {
	if f == nil {
		panic("pipeline: nil factory passed to RegisterTarget")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets[kind] = f
}

// FilterKinds returns the registered filter kinds, sorted.
func (r *Registry) FilterKinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.filters))
	for k := range r.filters {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// TargetKinds returns the registered target kinds, sorted.
func (r *Registry) TargetKinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.targets))
	for k := range r.targets {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func (r *Registry) filterFactory(kind string) (FilterFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.filters[kind]
	if !ok {
		return nil, fmt.Errorf("unknown filter kind %q", kind)
	}
	return f, nil
}

func (r *Registry) targetFactory(kind string) (TargetFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.targets[kind]
	if !ok {
		return nil, fmt.Errorf("unknown target kind %q", kind)
	}
	return f, nil
}

// decodeOptions maps a loosely typed options block onto out. Unknown keys are
// rejected so misspelt options fail at startup.
func decodeOptions(options map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(options); err != nil {
		return fmt.Errorf("decoding options: %w", err)
	}
	return nil
}
