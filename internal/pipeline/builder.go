package pipeline

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/tkingovr/interceptor/api"
	"github.com/tkingovr/interceptor/internal/config"
	"github.com/tkingovr/interceptor/internal/filter"
	"github.com/tkingovr/interceptor/internal/policy"
)

// Build assembles a Manager from cfg using the built-in registry.
func Build(cfg *config.Config, deps Deps) (*filter.Manager, error) {
	return NewRegistry().Build(cfg, deps)
}

// Build assembles a Manager from cfg. Filters are registered in file order;
// when deps carries a metrics collector every step is instrumented.
func (r *Registry) Build(cfg *config.Config, deps Deps) (*filter.Manager, error) {
	var target filter.Target
	if cfg.Target != nil {
		factory, err := r.targetFactory(cfg.Target.Kind)
		if err != nil {
			return nil, err
		}
		target, err = factory(cfg.Target.Options, deps)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", cfg.Target.Kind, err)
		}
		if deps.Metrics != nil {
			target = deps.Metrics.InstrumentTarget(target)
		}
	}

	m := filter.NewManager(deps.Logger, target)
	for i, fc := range cfg.Filters {
		factory, err := r.filterFactory(fc.Kind)
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
		f, err := factory(fc.Options, deps)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s): %w", i, fc.Name, err)
		}
		if fc.Name != "" && fc.Name != f.Name() {
			f = &namedFilter{Filter: f, name: fc.Name}
		}
		if deps.Metrics != nil {
			f = deps.Metrics.InstrumentFilter(f)
		}
		m.RegisterFilter(f)
	}

	deps.Logger.Debug("pipeline built",
		"filters", len(cfg.Filters),
		"target", cfg.Target != nil,
	)
	return m, nil
}

// namedFilter reports the configured name instead of the implementation's.
type namedFilter struct {
	filter.Filter
	name string
}

func (f *namedFilter) Name() string { return f.name }

func newAuthenticationFilter(options map[string]any, deps Deps) (filter.Filter, error) {
	if err := decodeOptions(options, &struct{}{}); err != nil {
		return nil, err
	}
	return filter.NewAuthenticationFilter(deps.Out), nil
}

func newDebugFilter(options map[string]any, deps Deps) (filter.Filter, error) {
	if err := decodeOptions(options, &struct{}{}); err != nil {
		return nil, err
	}
	return filter.NewDebugFilter(deps.Out), nil
}

func newConsoleTarget(options map[string]any, deps Deps) (filter.Target, error) {
	if err := decodeOptions(options, &struct{}{}); err != nil {
		return nil, err
	}
	return filter.NewConsoleTarget(deps.Out), nil
}

type secretPattern struct {
	Name  string `mapstructure:"name"`
	Regex string `mapstructure:"regex"`
}

type secretOptions struct {
	EntropyThreshold float64         `mapstructure:"entropy_threshold"`
	MinTokenLength   int             `mapstructure:"min_token_length"`
	Patterns         []secretPattern `mapstructure:"patterns"`
}

func newSecretFilter(options map[string]any, deps Deps) (filter.Filter, error) {
	var opts secretOptions
	if err := decodeOptions(options, &opts); err != nil {
		return nil, err
	}

	var scannerOpts []filter.SecretScannerOption
	if opts.EntropyThreshold > 0 {
		scannerOpts = append(scannerOpts, filter.WithEntropyThreshold(opts.EntropyThreshold))
	}
	if opts.MinTokenLength > 0 {
		scannerOpts = append(scannerOpts, filter.WithMinTokenLength(opts.MinTokenLength))
	}
	if len(opts.Patterns) > 0 {
		patterns := make([]filter.SecretPattern, 0, len(opts.Patterns))
		for _, p := range opts.Patterns {
			re, err := regexp.Compile(p.Regex)
			if err != nil {
				return nil, fmt.Errorf("secret pattern %q: %w", p.Name, err)
			}
			patterns = append(patterns, filter.SecretPattern{Name: p.Name, Regex: re})
		}
		scannerOpts = append(scannerOpts, filter.WithPatterns(patterns))
	}
	return filter.NewSecretScannerFilter(deps.Out, scannerOpts...), nil
}

type exprOptions struct {
	Expr string `mapstructure:"expr"`
}

func newExprFilter(options map[string]any, deps Deps) (filter.Filter, error) {
	var opts exprOptions
	if err := decodeOptions(options, &opts); err != nil {
		return nil, err
	}
	if opts.Expr == "" {
		return nil, errors.New("expr is required")
	}
	return filter.NewExprFilter(opts.Expr, deps.Out, deps.Logger)
}

// PolicyOptions configures a policy filter. Engine is "rules" or "rego";
// when empty it is inferred from whether Rego source is present.
type PolicyOptions struct {
	Engine        string         `mapstructure:"engine"`
	DefaultAction string         `mapstructure:"default_action"`
	Rules         []policy.Rule  `mapstructure:"rules"`
	Rego          string         `mapstructure:"rego"`
	RegoFile      string         `mapstructure:"rego_file"`
	Package       string         `mapstructure:"package"`
	Data          map[string]any `mapstructure:"data"`
}

// NewPolicyEngine builds the engine described by a policy filter's options.
func NewPolicyEngine(options map[string]any) (policy.Engine, error) {
	var opts PolicyOptions
	if err := decodeOptions(options, &opts); err != nil {
		return nil, err
	}

	engine := opts.Engine
	if engine == "" {
		engine = "rules"
		if opts.Rego != "" || opts.RegoFile != "" {
			engine = "rego"
		}
	}

	switch engine {
	case "rules":
		return policy.NewRuleEngine(api.Verdict(opts.DefaultAction), opts.Rules)
	case "rego":
		regoOpts := []policy.OPAOption{policy.WithPackage(opts.Package)}
		if opts.Data != nil {
			regoOpts = append(regoOpts, policy.WithData(opts.Data))
		}
		if opts.RegoFile != "" {
			return policy.NewOPAEngine(opts.RegoFile, regoOpts...)
		}
		if opts.Rego == "" {
			return nil, errors.New("rego engine requires rego or rego_file")
		}
		return policy.NewOPAEngineFromSource(opts.Rego, regoOpts...)
	default:
		return nil, fmt.Errorf("unknown policy engine %q", engine)
	}
}

func newPolicyFilter(options map[string]any, deps Deps) (filter.Filter, error) {
	engine, err := NewPolicyEngine(options)
	if err != nil {
		return nil, err
	}
	return filter.NewPolicyFilter(engine, deps.Out, deps.Logger), nil
}
