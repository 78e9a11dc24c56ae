package filter

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/tkingovr/interceptor/api"
	"github.com/tkingovr/interceptor/internal/policy"
)

type failingEngine struct{}

func (failingEngine) Evaluate(context.Context, *policy.EvalInput) (*policy.EvalResult, error) {
	return nil, errors.New("engine unavailable")
}

func (failingEngine) Reload(context.Context) error { return nil }

func TestPolicyFilter_ReportsVerdict(t *testing.T) {
	engine, err := policy.NewRuleEngine(api.VerdictAllow, []policy.Rule{
		{Name: "deny-admin", Match: policy.RuleMatch{Prefix: "/admin"}, Action: "deny"},
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	f := NewPolicyFilter(engine, &buf, newTestLogger())
	f.Apply(context.Background(), "Home")
	f.Apply(context.Background(), "/admin")

	want := "Policy check: allow Home\nPolicy check: deny /admin\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestPolicyFilter_EngineErrorDoesNotStopChain(t *testing.T) {
	var buf bytes.Buffer
	chain := NewChain(newTestLogger(),
		NewPolicyFilter(failingEngine{}, &buf, newTestLogger()),
		NewDebugFilter(&buf),
	)
	chain.SetTarget(NewConsoleTarget(&buf))

	chain.Execute(context.Background(), "Home")

	want := "Policy check: error Home\nrequest log: Home\nExecuting request: Home\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestExprFilter(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewExprFilter(`request startsWith "Ho" && length < 10`, &buf, newTestLogger())
	if err != nil {
		t.Fatal(err)
	}

	f.Apply(context.Background(), "Home")
	f.Apply(context.Background(), "Away")

	want := "Expression match: true Home\nExpression match: false Away\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestExprFilter_CompileErrors(t *testing.T) {
	tests := []string{
		`request +`,
		`length + 1`,
		`unknown == "x"`,
	}
	for _, src := range tests {
		if _, err := NewExprFilter(src, &bytes.Buffer{}, newTestLogger()); err == nil {
			t.Errorf("expected compile error for %q", src)
		}
	}
}
