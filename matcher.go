// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

import "fmt"

// Matcher decides category paths against ordered compiled rules.
//
// The last matching rule decides, so rules are scanned from the end and the
// scan stops at the first hit.
type Matcher struct {
	rules    []compiledRule
	fallback Action
	fold     bool
}

// NewMatcher compiles ordered rules. Errors name the 1-based rule position.
func NewMatcher(rules []Rule, opts MatcherOptions) (*Matcher, error) {
	opts.applyDefaults()

	m := &Matcher{
		rules:    make([]compiledRule, len(rules)),
		fallback: opts.DefaultAction,
		fold:     opts.CaseInsensitive,
	}

	for i, rule := range rules {
		cr, err := compileRule(rule, opts.CaseInsensitive)
		if err != nil {
			return nil, fmt.Errorf("rule #%d: %w", i+1, err)
		}

		m.rules[i] = *cr
	}

	return m, nil
}

// Decide returns the verdict for one category path and the rule behind it.
func (m *Matcher) Decide(path string, isBranch bool) MatchResult {
	candidate := normalizePath(path)
	if m.fold {
		candidate = asciiLower(candidate)
	}

	for i := len(m.rules) - 1; i >= 0; i-- {
		r := &m.rules[i]
		if !r.matches(candidate, isBranch) {
			continue
		}

		return MatchResult{
			Included:  r.source.Action == ActionInclude,
			Matched:   true,
			RuleIndex: i,
			Rule:      r.source,
		}
	}

	return MatchResult{
		Included:  m.fallback == ActionInclude,
		RuleIndex: -1,
	}
}

// Included reports whether path is kept.
func (m *Matcher) Included(path string, isBranch bool) bool {
	return m.Decide(path, isBranch).Included
}

// Excluded reports whether path is dropped.
func (m *Matcher) Excluded(path string, isBranch bool) bool {
	return !m.Decide(path, isBranch).Included
}
