package filter

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/tkingovr/interceptor/api"
)

// ExprFilter evaluates a boolean expr-lang expression against each request
// and reports the outcome. The expression sees two variables: request (the
// payload) and length (its size in bytes).
type ExprFilter struct {
	source  string
	program *vm.Program
	out     io.Writer
	logger  *slog.Logger
}

func exprEnv(req api.Request) map[string]any {
	return map[string]any{
		"request": req.String(),
		"length":  len(req),
	}
}

// NewExprFilter compiles source once; compile errors are returned here so
// that Apply only has runtime failures to deal with.
func NewExprFilter(source string, out io.Writer, logger *slog.Logger) (*ExprFilter, error) {
	program, err := expr.Compile(source, expr.Env(exprEnv("")), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling expression %q: %w", source, err)
	}
	return &ExprFilter{
		source:  source,
		program: program,
		out:     out,
		logger:  logger,
	}, nil
}

func (f *ExprFilter) Name() string { return "expr" }

func (f *ExprFilter) Apply(_ context.Context, req api.Request) {
	out, err := vm.Run(f.program, exprEnv(req))
	if err != nil {
		f.logger.Error("expression evaluation failed",
			"expr", f.source,
			"request", req.String(),
			"error", err,
		)
		fmt.Fprintf(f.out, "Expression match: error %s\n", req)
		return
	}
	matched, _ := out.(bool)
	fmt.Fprintf(f.out, "Expression match: %t %s\n", matched, req)
}
