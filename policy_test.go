// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPolicyInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts PolicyOptions
		want error
	}{
		{name: "include", opts: PolicyOptions{Include: "("}, want: ErrInvalidFilter},
		{name: "exclude", opts: PolicyOptions{Exclude: "[a-"}, want: ErrInvalidFilter},
		{name: "rule action", opts: PolicyOptions{Rules: []Rule{{Pattern: "keyword"}}}, want: ErrInvalidRule},
		{name: "rule pattern", opts: PolicyOptions{Rules: []Rule{{Action: ActionExclude, Pattern: "."}}}, want: ErrInvalidPattern},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewPolicy(tt.opts); !errors.Is(err, tt.want) {
				t.Fatalf("NewPolicy: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPolicyAllows(t *testing.T) {
	t.Parallel()

	p, err := NewPolicy(PolicyOptions{
		Include: `^function`,
		Exclude: `internal`,
		Rules:   []Rule{{Action: ActionExclude, Pattern: "deprecated"}},
	})
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{path: "function", want: true},
		{path: "function.math", want: true},
		{path: "keyword", want: false},
		{path: "function.internal", want: false},
		{path: "function.deprecated", want: false},
	}

	for _, tt := range tests {
		tt := tt
		if got := p.Allows(tt.path, false); got != tt.want {
			t.Fatalf("Allows(%q)=%v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestPolicyZeroValue(t *testing.T) {
	t.Parallel()

	var p Policy
	if !p.Allows("anything.at.all", true) {
		t.Fatalf("zero policy must allow every path")
	}

	if p.Collapsed("function") {
		t.Fatalf("zero policy must not collapse paths")
	}
}

func TestParseCollapsePaths(t *testing.T) {
	t.Parallel()

	got := ParseCollapsePaths([]string{"function, keyword", " function ", "", ".plugin..core."})
	want := []string{"function", "keyword", "plugin.core"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("collapse paths mismatch (-want +got):\n%s", diff)
	}

	p, err := NewPolicy(PolicyOptions{Collapse: []string{"plugin.core,"}})
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}

	if !p.Collapsed("plugin.core") || p.Collapsed("plugin") {
		t.Fatalf("unexpected collapse set")
	}
}

func TestPolicyDecideReason(t *testing.T) {
	t.Parallel()

	p, err := NewPolicy(PolicyOptions{
		Include: `^function`,
		Exclude: `internal`,
		Rules: []Rule{
			{Action: ActionExclude, Pattern: "deprecated*"},
			{Action: ActionInclude, Pattern: "deprecated_keep"},
		},
	})
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}

	tests := []struct {
		path string
		want Decision
	}{
		{path: "function.math", want: Decision{Allowed: true}},
		{path: "function.deprecated_keep", want: Decision{Allowed: true}},
		{path: "keyword", want: Decision{Reason: `include "^function" not matched`}},
		{path: "function.internal", want: Decision{Reason: `exclude "internal" matched`}},
		{path: "function.deprecated_x", want: Decision{Reason: `rule #1 "deprecated*"`}},
	}

	for _, tt := range tests {
		tt := tt
		if diff := cmp.Diff(tt.want, p.Decide(tt.path, false)); diff != "" {
			t.Fatalf("Decide(%q) mismatch (-want +got):\n%s", tt.path, diff)
		}
	}
}

func TestPolicyOnSkip(t *testing.T) {
	t.Parallel()

	var skipped []string
	p, err := NewPolicy(PolicyOptions{
		Exclude: `^function\.trig$`,
		OnSkip: func(path string, d Decision) {
			skipped = append(skipped, path+": "+d.Reason)
		},
	})
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}

	cats := make(Categories)
	Classify(cats, Branch{
		{Key: "function", Value: Branch{
			{Key: "math", Value: Leaf{"abs"}},
			{Key: "trig", Value: Branch{{Key: "deep", Value: Leaf{"sin"}}}},
		}},
	}, p)

	want := []string{`function.trig: exclude "^function\\.trig$" matched`}
	if diff := cmp.Diff(want, skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
}
