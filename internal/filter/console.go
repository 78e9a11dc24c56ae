package filter

import (
	"context"
	"fmt"
	"io"

	"github.com/tkingovr/interceptor/api"
)

// AuthenticationFilter announces that a request is being authenticated.
// It performs no real authentication.
type AuthenticationFilter struct {
	out io.Writer
}

func NewAuthenticationFilter(out io.Writer) *AuthenticationFilter {
	return &AuthenticationFilter{out: out}
}

func (f *AuthenticationFilter) Name() string { return "authentication" }

func (f *AuthenticationFilter) Apply(_ context.Context, req api.Request) {
	fmt.Fprintf(f.out, "Authentication request: %s\n", req)
}

// DebugFilter writes a log line for each request.
type DebugFilter struct {
	out io.Writer
}

func NewDebugFilter(out io.Writer) *DebugFilter {
	return &DebugFilter{out: out}
}

func (f *DebugFilter) Name() string { return "debug" }

func (f *DebugFilter) Apply(_ context.Context, req api.Request) {
	fmt.Fprintf(f.out, "request log: %s\n", req)
}

// ConsoleTarget executes a request by reporting it on the console.
type ConsoleTarget struct {
	out io.Writer
}

func NewConsoleTarget(out io.Writer) *ConsoleTarget {
	return &ConsoleTarget{out: out}
}

func (t *ConsoleTarget) Name() string { return "console" }

func (t *ConsoleTarget) Handle(_ context.Context, req api.Request) {
	fmt.Fprintf(t.out, "Executing request: %s\n", req)
}
