package filter

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tkingovr/interceptor/api"
	"github.com/tkingovr/interceptor/internal/policy"
)

// PolicyFilter evaluates the request against a policy engine and reports the
// verdict. The verdict is informational; it never stops the chain.
type PolicyFilter struct {
	engine policy.Engine
	out    io.Writer
	logger *slog.Logger
}

func NewPolicyFilter(engine policy.Engine, out io.Writer, logger *slog.Logger) *PolicyFilter {
	return &PolicyFilter{engine: engine, out: out, logger: logger}
}

func (f *PolicyFilter) Name() string { return "policy" }

func (f *PolicyFilter) Apply(ctx context.Context, req api.Request) {
	result, err := f.engine.Evaluate(ctx, &policy.EvalInput{Request: req})
	if err != nil {
		f.logger.Error("policy evaluation failed", "request", req.String(), "error", err)
		fmt.Fprintf(f.out, "Policy check: error %s\n", req)
		return
	}

	f.logger.Debug("policy evaluated",
		"request", req.String(),
		"verdict", result.Verdict,
		"rule", result.Rule,
	)
	fmt.Fprintf(f.out, "Policy check: %s %s\n", result.Verdict, req)
}
