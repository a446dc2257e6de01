// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

import "fmt"

// Action represents a decision action of one path rule.
type Action uint8

const (
	// ActionUnknown is unset/invalid action placeholder.
	ActionUnknown Action = iota
	// ActionExclude means matching category path is dropped with its descendants.
	ActionExclude
	// ActionInclude means matching category path is classified.
	ActionInclude
)

// Rule is one user-visible category path rule.
type Rule struct {
	// Pattern is a dot-separated glob over category paths.
	Pattern string `json:"pattern" yaml:"pattern"`
	// Action is applied when the rule matches.
	Action Action `json:"action" yaml:"action"`
}

// String returns rule in rules-file syntax.
func (r Rule) String() string {
	if r.Action == ActionInclude {
		return "!" + r.Pattern
	}

	return r.Pattern
}

// MatcherOptions controls path rules matcher behavior.
type MatcherOptions struct {
	// CaseInsensitive enables ASCII case-insensitive key matching.
	CaseInsensitive bool `json:"case_insensitive,omitempty" yaml:"case_insensitive,omitempty"`
	// DefaultAction is applied when no rule matched. Zero value means include.
	DefaultAction Action `json:"default_action,omitempty" yaml:"default_action,omitempty"`
}

// MatchResult is a deterministic decision produced by matcher.
type MatchResult struct {
	// Included reports final include decision.
	Included bool `json:"included" yaml:"included"`
	// Matched reports whether at least one rule matched.
	Matched bool `json:"matched" yaml:"matched"`
	// RuleIndex is the last matched rule index in input order, -1 when no match.
	RuleIndex int `json:"rule_index" yaml:"rule_index"`
	// Rule is the deciding rule, zero when no rule matched.
	Rule Rule `json:"rule" yaml:"rule"`
}

// Reason describes what produced the decision.
func (r MatchResult) Reason() string {
	if !r.Matched {
		return "no rule matched"
	}

	return fmt.Sprintf("rule #%d %q", r.RuleIndex+1, r.Rule.String())
}

// PatternRecord is one generated highlighting rule.
type PatternRecord struct {
	// Name is category path followed by the category suffix.
	Name string `json:"name" yaml:"name"`
	// Match is the serialized keyword regex.
	Match string `json:"match" yaml:"match"`
}

// Warning reports a skipped source value.
type Warning struct {
	// Source is source name, empty when classifying a bare value.
	Source string
	// Path is category path of the skipped value.
	Path string
	// Kind is type name of the skipped value.
	Kind string
}

// String formats warning for logs.
func (w Warning) String() string {
	if w.Source == "" {
		return "ignoring " + w.Kind + " at " + w.Path
	}

	return w.Source + ": ignoring " + w.Kind + " at " + w.Path
}

// applyDefaults fills zero-valued options with defaults.
func (opts *MatcherOptions) applyDefaults() {
	if !opts.DefaultAction.valid() {
		opts.DefaultAction = ActionInclude
	}
}

// valid reports whether action value is supported.
func (a Action) valid() bool {
	return a == ActionExclude || a == ActionInclude
}
