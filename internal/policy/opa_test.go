package policy

import (
	"context"
	"sync"
	"testing"

	"github.com/tkingovr/interceptor/api"
)

const testRegoPolicy = `package interceptor

import rego.v1

default verdict := "allow"
default rule_name := "_default"
default message := "default allow"

verdict := "deny" if {
	startswith(input.request, "/admin")
}
rule_name := "block-admin" if {
	startswith(input.request, "/admin")
}
message := "admin pages are blocked" if {
	startswith(input.request, "/admin")
}

verdict := "log" if {
	input.request in data.watched
}
rule_name := "log-watched" if {
	input.request in data.watched
}
`

func evaluate(t *testing.T, e Engine, req string) *EvalResult {
	t.Helper()
	result, err := e.Evaluate(context.Background(), &EvalInput{Request: api.Request(req)})
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestOPAEngine_DefaultAllow(t *testing.T) {
	engine, err := NewOPAEngineFromSource(testRegoPolicy, WithData(map[string]any{"watched": []any{}}))
	if err != nil {
		t.Fatal(err)
	}

	result := evaluate(t, engine, "Home")
	if result.Verdict != api.VerdictAllow {
		t.Errorf("expected allow, got %s", result.Verdict)
	}
	if result.Rule != "_default" {
		t.Errorf("expected rule _default, got %s", result.Rule)
	}
}

func TestOPAEngine_DenyAdmin(t *testing.T) {
	engine, err := NewOPAEngineFromSource(testRegoPolicy, WithData(map[string]any{"watched": []any{}}))
	if err != nil {
		t.Fatal(err)
	}

	result := evaluate(t, engine, "/admin/users")
	if result.Verdict != api.VerdictDeny {
		t.Errorf("expected deny, got %s (rule: %s)", result.Verdict, result.Rule)
	}
	if result.Rule != "block-admin" {
		t.Errorf("expected rule block-admin, got %s", result.Rule)
	}
	if result.Message != "admin pages are blocked" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestOPAEngine_DataDocuments(t *testing.T) {
	engine, err := NewOPAEngineFromSource(testRegoPolicy, WithData(map[string]any{
		"watched": []any{"Checkout"},
	}))
	if err != nil {
		t.Fatal(err)
	}

	result := evaluate(t, engine, "Checkout")
	if result.Verdict != api.VerdictLog {
		t.Errorf("expected log, got %s", result.Verdict)
	}
	if result.Rule != "log-watched" {
		t.Errorf("expected rule log-watched, got %s", result.Rule)
	}
}

func TestOPAEngine_CustomPackage(t *testing.T) {
	src := `package gate

import rego.v1

verdict := "log"
`
	engine, err := NewOPAEngineFromSource(src, WithPackage("gate"))
	if err != nil {
		t.Fatal(err)
	}
	if got := evaluate(t, engine, "anything").Verdict; got != api.VerdictLog {
		t.Errorf("expected log, got %s", got)
	}
}

func TestOPAEngine_UnknownVerdictDenies(t *testing.T) {
	src := `package interceptor

import rego.v1

verdict := "maybe"
`
	engine, err := NewOPAEngineFromSource(src)
	if err != nil {
		t.Fatal(err)
	}
	if got := evaluate(t, engine, "Home").Verdict; got != api.VerdictDeny {
		t.Errorf("expected deny for unknown verdict, got %s", got)
	}
}

func TestOPAEngine_InvalidRego(t *testing.T) {
	_, err := NewOPAEngineFromSource("this is not valid rego {{{")
	if err == nil {
		t.Fatal("expected error for invalid Rego")
	}
}

func TestOPAEngine_FromFile(t *testing.T) {
	engine, err := NewOPAEngine("../../testdata/policies/example.rego")
	if err != nil {
		t.Fatal(err)
	}

	if got := evaluate(t, engine, "Home").Verdict; got != api.VerdictAllow {
		t.Errorf("expected allow, got %s", got)
	}
	if got := evaluate(t, engine, "/admin").Verdict; got != api.VerdictDeny {
		t.Errorf("expected deny, got %s", got)
	}
	if err := engine.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
}

func TestOPAEngine_MissingFile(t *testing.T) {
	if _, err := NewOPAEngine("does-not-exist.rego"); err == nil {
		t.Fatal("expected error for missing policy file")
	}
}

func TestOPAEngine_ConcurrentReload(t *testing.T) {
	engine, err := NewOPAEngineFromSource(testRegoPolicy)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs <- engine.Reload(context.Background())
		}()
		go func() {
			defer wg.Done()
			_, err := engine.Evaluate(context.Background(), &EvalInput{Request: "/admin"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent reload/evaluate: %v", err)
		}
	}
	if got := evaluate(t, engine, "/admin").Verdict; got != api.VerdictDeny {
		t.Errorf("expected deny after reloads, got %s", got)
	}
}
