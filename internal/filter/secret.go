package filter

import (
	"context"
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/tkingovr/interceptor/api"
)

// SecretPattern defines a named regex pattern for detecting secrets.
type SecretPattern struct {
	Name  string
	Regex *regexp.Regexp
}

// DefaultSecretPatterns returns the patterns checked when none are configured.
// They target credentials that end up inside a request line: pasted tokens,
// keys and credential-bearing query parameters.
func DefaultSecretPatterns() []SecretPattern {
	return []SecretPattern{
		{Name: "aws_access_key", Regex: regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`)},
		{Name: "github_token", Regex: regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36}`)},
		{Name: "private_key", Regex: regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----`)},
		{Name: "jwt_token", Regex: regexp.MustCompile(`eyJ[\w-]+\.eyJ[\w-]+\.[\w-]+`)},
		{Name: "query_credential", Regex: regexp.MustCompile(`(?i)[?&](?:access_token|api_?key|password|secret|token)=[^&\s]+`)},
	}
}

// SecretScannerFilter reports whether a request looks like it carries a secret,
// using regex patterns and Shannon entropy. It only reports; the request is
// passed on unchanged.
type SecretScannerFilter struct {
	out              io.Writer
	patterns         []SecretPattern
	entropyThreshold float64
	minTokenLength   int
}

// SecretScannerOption configures the SecretScannerFilter.
type SecretScannerOption func(*SecretScannerFilter)

// WithPatterns sets custom secret patterns (replaces defaults).
func WithPatterns(patterns []SecretPattern) SecretScannerOption {
	return func(f *SecretScannerFilter) {
		f.patterns = patterns
	}
}

// WithEntropyThreshold sets the bits per character at which a token counts as
// random. The default is 4.5.
func WithEntropyThreshold(bits float64) SecretScannerOption {
	return func(f *SecretScannerFilter) {
		f.entropyThreshold = bits
	}
}

// WithMinTokenLength sets the shortest token considered for entropy analysis.
func WithMinTokenLength(n int) SecretScannerOption {
	return func(f *SecretScannerFilter) {
		f.minTokenLength = n
	}
}

// NewSecretScannerFilter creates a new secret scanner filter.
func NewSecretScannerFilter(out io.Writer, opts ...SecretScannerOption) *SecretScannerFilter {
	f := &SecretScannerFilter{
		out:              out,
		patterns:         DefaultSecretPatterns(),
		entropyThreshold: 4.5,
		minTokenLength:   20,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *SecretScannerFilter) Name() string { return "secret_scanner" }

func (f *SecretScannerFilter) Apply(_ context.Context, req api.Request) {
	fmt.Fprintf(f.out, "Secret scan: %s %s\n", f.Scan(req.String()), req)
}

// Scan returns the name of the first matching pattern, "high_entropy" for a
// suspicious token, or "clean".
func (f *SecretScannerFilter) Scan(text string) string {
	for _, p := range f.patterns {
		if p.Regex.MatchString(text) {
			return p.Name
		}
	}
	if _, found := f.findHighEntropyToken(text); found {
		return "high_entropy"
	}
	return "clean"
}

// findHighEntropyToken splits text into tokens and checks each for high entropy.
func (f *SecretScannerFilter) findHighEntropyToken(text string) (string, bool) {
	tokens := extractTokens(text)
	for _, token := range tokens {
		if len(token) >= f.minTokenLength && shannonEntropy(token) >= f.entropyThreshold {
			return token, true
		}
	}
	return "", false
}

// extractTokens splits text on whitespace and common delimiters.
func extractTokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '"', '\'', '=', ':', ',', ';', '&', '?':
			return true
		}
		return unicode.IsSpace(r)
	})
}

// shannonEntropy returns the entropy of s in bits per rune.
func shannonEntropy(s string) float64 {
	counts := map[rune]int{}
	n := 0
	for _, r := range s {
		counts[r]++
		n++
	}

	var bits float64
	for _, c := range counts {
		p := float64(c) / float64(n)
		bits -= p * math.Log2(p)
	}
	return bits
}
