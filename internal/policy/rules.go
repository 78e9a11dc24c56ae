package policy

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tkingovr/interceptor/api"
)

// RuleEngine implements first-match-wins evaluation over an ordered rule list.
type RuleEngine struct {
	rules         []Rule
	defaultAction api.Verdict

	// compiled regexes, aligned with rules
	regexes []*regexp.Regexp
}

// NewRuleEngine validates rules and compiles their regexes. An empty default
// action means allow.
func NewRuleEngine(defaultAction api.Verdict, rules []Rule) (*RuleEngine, error) {
	if defaultAction == "" {
		defaultAction = api.VerdictAllow
	}
	if !defaultAction.Valid() {
		return nil, fmt.Errorf("invalid default action %q", defaultAction)
	}

	e := &RuleEngine{
		rules:         append([]Rule(nil), rules...),
		defaultAction: defaultAction,
		regexes:       make([]*regexp.Regexp, len(rules)),
	}
	for i, rule := range e.rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("rule %d: name is required", i)
		}
		if !api.Verdict(rule.Action).Valid() {
			return nil, fmt.Errorf("rule %q: invalid action %q", rule.Name, rule.Action)
		}
		if rule.Match.Regex != "" {
			re, err := regexp.Compile(rule.Match.Regex)
			if err != nil {
				return nil, fmt.Errorf("rule %q: regex invalid: %w", rule.Name, err)
			}
			e.regexes[i] = re
		}
	}
	return e, nil
}

// Evaluate checks the input against rules in order, returning the first match.
func (e *RuleEngine) Evaluate(_ context.Context, input *EvalInput) (*EvalResult, error) {
	req := input.Request.String()
	for i, rule := range e.rules {
		if e.matches(i, req) {
			return &EvalResult{
				Verdict: api.Verdict(rule.Action),
				Rule:    rule.Name,
				Message: rule.Message,
			}, nil
		}
	}

	// No rule matched: use the default action.
	return &EvalResult{
		Verdict: e.defaultAction,
		Rule:    "_default",
		Message: "no matching rule; default action applied",
	}, nil
}

// Reload is a no-op; rules are fixed at construction.
func (e *RuleEngine) Reload(_ context.Context) error {
	return nil
}

// Rules returns a copy of the configured rules.
func (e *RuleEngine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

func (e *RuleEngine) matches(i int, req string) bool {
	rule := &e.rules[i]
	if rule.Match.Exact != "" && rule.Match.Exact != req {
		return false
	}
	if rule.Match.Prefix != "" && !strings.HasPrefix(req, rule.Match.Prefix) {
		return false
	}
	if rule.Match.Regex != "" {
		if re := e.regexes[i]; re == nil || !re.MatchString(req) {
			return false
		}
	}
	return true
}
