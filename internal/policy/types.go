package policy

import "github.com/tkingovr/interceptor/api"

// Rule represents a single policy rule.
type Rule struct {
	Name    string    `yaml:"name" json:"name" mapstructure:"name"`
	Match   RuleMatch `yaml:"match" json:"match" mapstructure:"match"`
	Action  string    `yaml:"action" json:"action" mapstructure:"action"`
	Message string    `yaml:"message,omitempty" json:"message,omitempty" mapstructure:"message"`
}

// RuleMatch specifies conditions for matching a request. Every non-empty
// condition must hold; an empty match accepts every request.
type RuleMatch struct {
	Exact  string `yaml:"exact,omitempty" json:"exact,omitempty" mapstructure:"exact"`
	Prefix string `yaml:"prefix,omitempty" json:"prefix,omitempty" mapstructure:"prefix"`
	Regex  string `yaml:"regex,omitempty" json:"regex,omitempty" mapstructure:"regex"`
}

// EvalInput is the input to a policy engine evaluation.
type EvalInput struct {
	Request api.Request `json:"request"`
}

// EvalResult is the output of a policy engine evaluation.
type EvalResult struct {
	Verdict api.Verdict `json:"verdict"`
	Rule    string      `json:"rule,omitempty"`
	Message string      `json:"message,omitempty"`
}
