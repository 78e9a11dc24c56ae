package filter

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tkingovr/interceptor/api"
)

func TestManager_SubmitRunsChain(t *testing.T) {
	rec := &recorder{}
	m := NewManager(newTestLogger(), rec.target("T"))
	m.RegisterFilter(rec.filter("Authentication"))
	m.RegisterFilter(rec.filter("Debug"))

	m.Submit(context.Background(), "Home")

	want := []string{"Authentication-on(Home)", "Debug-on(Home)", "T-handles(Home)"}
	if diff := cmp.Diff(want, rec.take()); diff != "" {
		t.Errorf("effects mismatch (-want +got):\n%s", diff)
	}
}

func TestManager_RegisterFilterIsCumulative(t *testing.T) {
	rec := &recorder{}
	m := NewManager(newTestLogger(), rec.target("T"))

	var want []string
	for i := 0; i < 4; i++ {
		name := fmt.Sprintf("f%d", i)
		m.RegisterFilter(rec.filter(name))
		want = append(want, name)
	}

	var got []string
	for _, f := range m.Chain().Filters() {
		got = append(got, f.Name())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filters mismatch (-want +got):\n%s", diff)
	}
}

func TestManager_TargetBoundAtConstruction(t *testing.T) {
	rec := &recorder{}
	target := rec.target("T")
	m := NewManager(newTestLogger(), target)

	got, ok := m.Chain().Target()
	if !ok || got != target {
		t.Fatal("expected constructor target to be bound to the chain")
	}
}

func TestManager_NilTarget(t *testing.T) {
	rec := &recorder{}
	m := NewManager(newTestLogger(), nil)
	m.RegisterFilter(rec.filter("F"))

	m.Submit(context.Background(), "Y")

	if diff := cmp.Diff([]string{"F-on(Y)"}, rec.take()); diff != "" {
		t.Errorf("effects mismatch (-want +got):\n%s", diff)
	}
}

func TestManager_SubmitTagsRequestID(t *testing.T) {
	var ids []string
	m := NewManager(newTestLogger(), nil)
	m.RegisterFilter(Func("capture", func(ctx context.Context, _ api.Request) {
		id, _ := RequestIDFromContext(ctx)
		ids = append(ids, id)
	}))

	m.Submit(context.Background(), "a")
	m.Submit(context.Background(), "b")
	m.Submit(ContextWithRequestID(context.Background(), "fixed"), "c")

	if len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %d", len(ids))
	}
	if ids[0] == "" || ids[0] == ids[1] {
		t.Errorf("expected distinct generated ids, got %q and %q", ids[0], ids[1])
	}
	if ids[2] != "fixed" {
		t.Errorf("expected caller id to be kept, got %q", ids[2])
	}
}

func TestClient_SendWithoutManager(t *testing.T) {
	c := NewClient()
	c.Send(context.Background(), "Home")
	if c.Manager() != nil {
		t.Error("expected no manager")
	}
}

func TestClient_SendDelegates(t *testing.T) {
	rec := &recorder{}
	m := NewManager(newTestLogger(), rec.target("T"))
	m.RegisterFilter(rec.filter("Authentication"))
	m.RegisterFilter(rec.filter("Debug"))

	c := NewClient()
	c.SetManager(m)
	c.Send(context.Background(), "Home")

	want := []string{"Authentication-on(Home)", "Debug-on(Home)", "T-handles(Home)"}
	if diff := cmp.Diff(want, rec.take()); diff != "" {
		t.Errorf("effects mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_ReplaceAndUnsetManager(t *testing.T) {
	rec := &recorder{}
	first := NewManager(newTestLogger(), rec.target("first"))
	second := NewManager(newTestLogger(), rec.target("second"))

	c := NewClient()
	c.SetManager(first)
	c.SetManager(second)
	c.Send(context.Background(), "R")

	if diff := cmp.Diff([]string{"second-handles(R)"}, rec.take()); diff != "" {
		t.Errorf("effects mismatch (-want +got):\n%s", diff)
	}

	c.SetManager(nil)
	c.Send(context.Background(), "R")
	if got := rec.take(); len(got) != 0 {
		t.Errorf("expected no effects after unsetting manager, got %v", got)
	}
}
