package api

// Request is the opaque textual payload carried through a filter chain.
// Filters and targets observe it; none of them rewrite it.
type Request string

// String returns the request payload.
func (r Request) String() string { return string(r) }

// Verdict represents the outcome of a policy evaluation.
type Verdict string

const (
	VerdictAllow Verdict = "allow"
	VerdictDeny  Verdict = "deny"
	VerdictLog   Verdict = "log"
)

// Valid reports whether v is one of the known verdicts.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictAllow, VerdictDeny, VerdictLog:
		return true
	}
	return false
}

// Stage identifies where in the pipeline a step runs.
type Stage string

const (
	StageFilter Stage = "filter"
	StageTarget Stage = "target"
)

// CheckResponse is the result of a dry-run policy check.
type CheckResponse struct {
	Verdict Verdict `json:"verdict"`
	Rule    string  `json:"rule,omitempty"`
	Message string  `json:"message,omitempty"`
}
