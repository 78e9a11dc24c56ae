package policy

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/open-policy-agent/opa/ast"
	"github.com/open-policy-agent/opa/rego"
	"github.com/open-policy-agent/opa/storage/inmem"
	"github.com/open-policy-agent/opa/topdown"

	"github.com/tkingovr/interceptor/api"
)

// DefaultRegoPackage is the package queried when none is configured.
const DefaultRegoPackage = "interceptor"

// OPAEngine implements the Engine interface using embedded OPA/Rego.
//
// The policy package must define:
//
//	verdict: "allow" | "deny" | "log"
//	rule_name: string (optional)
//	message: string (optional)
//
// and may read input.request (the request payload) and any documents
// supplied through WithData under data.
type OPAEngine struct {
	mu     sync.RWMutex
	path   string
	source string
	pkg    string
	data   map[string]any

	query rego.PreparedEvalQuery
}

// OPAOption configures an OPAEngine.
type OPAOption func(*OPAEngine)

// WithPackage sets the Rego package holding the verdict documents.
func WithPackage(pkg string) OPAOption {
	return func(e *OPAEngine) {
		if pkg != "" {
			e.pkg = pkg
		}
	}
}

// WithData preloads base documents into the engine's in-memory store.
func WithData(data map[string]any) OPAOption {
	return func(e *OPAEngine) {
		e.data = data
	}
}

// NewOPAEngine creates an OPA engine from a .rego policy file.
func NewOPAEngine(path string, opts ...OPAOption) (*OPAEngine, error) {
	e := newOPAEngine(opts)
	e.path = path
	if err := e.Reload(context.Background()); err != nil {
		return nil, err
	}
	return e, nil
}

// NewOPAEngineFromSource creates an OPA engine from raw Rego source.
func NewOPAEngineFromSource(source string, opts ...OPAOption) (*OPAEngine, error) {
	e := newOPAEngine(opts)
	e.source = source
	if err := e.Reload(context.Background()); err != nil {
		return nil, err
	}
	return e, nil
}

func newOPAEngine(opts []OPAOption) *OPAEngine {
	e := &OPAEngine{pkg: DefaultRegoPackage}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs the prepared query with the request as input.
func (e *OPAEngine) Evaluate(ctx context.Context, input *EvalInput) (*EvalResult, error) {
	e.mu.RLock()
	query := e.query
	e.mu.RUnlock()

	rs, err := query.Eval(ctx, rego.EvalInput(map[string]any{
		"request": input.Request.String(),
	}))
	if err != nil {
		// Runtime errors inside the policy fail closed.
		if topdown.IsError(err) {
			return &EvalResult{
				Verdict: api.VerdictDeny,
				Rule:    "_opa_error",
				Message: "OPA evaluation error: " + err.Error(),
			}, nil
		}
		return nil, fmt.Errorf("OPA evaluation failed: %w", err)
	}

	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return &EvalResult{
			Verdict: api.VerdictDeny,
			Rule:    "_opa_default",
			Message: "OPA policy returned no result",
		}, nil
	}

	doc, ok := rs[0].Expressions[0].Value.(map[string]any)
	if !ok {
		return &EvalResult{
			Verdict: api.VerdictDeny,
			Rule:    "_opa_parse_error",
			Message: "unexpected OPA result type",
		}, nil
	}
	return resultFromDocument(doc), nil
}

// Reload recompiles the policy, re-reading it from disk when the engine was
// created from a file.
func (e *OPAEngine) Reload(ctx context.Context) error {
	e.mu.RLock()
	source := e.source
	e.mu.RUnlock()

	if e.path != "" {
		data, err := os.ReadFile(e.path)
		if err != nil {
			return fmt.Errorf("reading OPA policy file: %w", err)
		}
		source = string(data)
	}

	if _, err := ast.ParseModuleWithOpts("policy.rego", source, ast.ParserOptions{RegoVersion: ast.RegoV1}); err != nil {
		return fmt.Errorf("parsing Rego policy: %w", err)
	}

	store := inmem.New()
	if e.data != nil {
		store = inmem.NewFromObject(e.data)
	}

	query, err := rego.New(
		rego.Query("data."+e.pkg),
		rego.Module("policy.rego", source),
		rego.Store(store),
	).PrepareForEval(ctx)
	if err != nil {
		return fmt.Errorf("preparing OPA query: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.source = source
	e.query = query
	return nil
}

func resultFromDocument(doc map[string]any) *EvalResult {
	result := &EvalResult{Verdict: api.VerdictDeny}

	if v, ok := doc["verdict"].(string); ok && api.Verdict(v).Valid() {
		result.Verdict = api.Verdict(v)
	}
	if r, ok := doc["rule_name"].(string); ok {
		result.Rule = r
	}
	if msg, ok := doc["message"].(string); ok {
		result.Message = msg
	}
	return result
}
