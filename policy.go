// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

import (
	"fmt"
	"regexp"
	"strings"
)

// PolicyOptions is the raw filter and collapse configuration.
type PolicyOptions struct {
	// Include is a regexp every classified path must match. Empty disables it.
	Include string `json:"include,omitempty" yaml:"include,omitempty"`
	// Exclude is a regexp no classified path may match. Empty disables it.
	Exclude string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	// Collapse lists paths whose descendants classify into the path itself.
	Collapse []string `json:"collapse,omitempty" yaml:"collapse,omitempty"`
	// Rules are ordered path rules evaluated after Include and Exclude.
	Rules []Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
	// RulesOptions controls path rules matching.
	RulesOptions MatcherOptions `json:"rules_options" yaml:"rules_options"`
	// OnSkip is called for every path rejected during classification.
	OnSkip func(path string, d Decision) `json:"-" yaml:"-"`
}

// Decision is a policy verdict for one path.
type Decision struct {
	// Allowed reports whether the path is classified.
	Allowed bool
	// Reason names the filter that rejected the path, empty when allowed.
	Reason string
}

// Policy is an immutable compiled classification policy.
//
// The zero value includes every path and collapses nothing.
type Policy struct {
	include  *regexp.Regexp
	exclude  *regexp.Regexp
	rules    *Matcher
	collapse map[string]struct{}
	onSkip   func(path string, d Decision)
}

// NewPolicy compiles policy options.
//
// Malformed regexps return ErrInvalidFilter, malformed rules return
// ErrInvalidRule or ErrInvalidPattern.
func NewPolicy(opts PolicyOptions) (Policy, error) {
	p := Policy{onSkip: opts.OnSkip}

	if opts.Include != "" {
		re, err := regexp.Compile(opts.Include)
		if err != nil {
			return Policy{}, fmt.Errorf("%w: include %q: %v", ErrInvalidFilter, opts.Include, err)
		}

		p.include = re
	}

	if opts.Exclude != "" {
		re, err := regexp.Compile(opts.Exclude)
		if err != nil {
			return Policy{}, fmt.Errorf("%w: exclude %q: %v", ErrInvalidFilter, opts.Exclude, err)
		}

		p.exclude = re
	}

	if len(opts.Rules) > 0 {
		m, err := NewMatcher(opts.Rules, opts.RulesOptions)
		if err != nil {
			return Policy{}, fmt.Errorf("compile rules: %w", err)
		}

		p.rules = m
	}

	collapse := ParseCollapsePaths(opts.Collapse)
	if len(collapse) > 0 {
		p.collapse = make(map[string]struct{}, len(collapse))
		for _, path := range collapse {
			p.collapse[path] = struct{}{}
		}
	}

	return p, nil
}

// Decide checks path against include, exclude and rules filters in that order.
func (p Policy) Decide(path string, isBranch bool) Decision {
	if p.include != nil && !p.include.MatchString(path) {
		return Decision{Reason: fmt.Sprintf("include %q not matched", p.include.String())}
	}

	if p.exclude != nil && p.exclude.MatchString(path) {
		return Decision{Reason: fmt.Sprintf("exclude %q matched", p.exclude.String())}
	}

	if p.rules != nil {
		if res := p.rules.Decide(path, isBranch); !res.Included {
			return Decision{Reason: res.Reason()}
		}
	}

	return Decision{Allowed: true}
}

// Allows reports whether path survives all filters.
func (p Policy) Allows(path string, isBranch bool) bool {
	return p.Decide(path, isBranch).Allowed
}

// skip reports rejected path to the OnSkip hook.
func (p Policy) skip(path string, d Decision) {
	if p.onSkip != nil {
		p.onSkip(path, d)
	}
}

// Collapsed reports whether descendants of path classify into path itself.
func (p Policy) Collapsed(path string) bool {
	_, ok := p.collapse[path]
	return ok
}

// ParseCollapsePaths normalizes collapse path list.
//
// Accepted forms per item:
//   - "function"
//   - "function.internal"
//   - "function, keyword" (comma-separated)
//
// Empty values and duplicates are skipped. Returned paths preserve input order.
func ParseCollapsePaths(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			path := normalizePath(part)
			if path == "" {
				continue
			}

			if _, ok := seen[path]; ok {
				continue
			}

			seen[path] = struct{}{}
			out = append(out, path)
		}
	}

	return out
}
