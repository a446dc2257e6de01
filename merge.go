// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

import "sort"

// Categories maps category path to its identifiers in encounter order.
type Categories map[string][]string

// Add appends identifiers to the list stored at path.
//
// The stored list never aliases ids.
func (c Categories) Add(path string, ids []string) {
	existing := c[path]
	out := make([]string, 0, len(existing)+len(ids))
	out = append(out, existing...)
	out = append(out, ids...)
	c[path] = out
}

// Merge appends every list of other into c, visiting paths in sorted order.
func (c Categories) Merge(other Categories) {
	for _, path := range other.Paths() {
		c.Add(path, other[path])
	}
}

// Paths returns category paths in lexicographic order.
func (c Categories) Paths() []string {
	paths := make([]string, 0, len(c))
	for path := range c {
		paths = append(paths, path)
	}

	sort.Strings(paths)
	return paths
}

// MergeRules merges rule slices preserving input order.
func MergeRules(ruleSets ...[]Rule) []Rule {
	total := 0
	for _, set := range ruleSets {
		total += len(set)
	}

	out := make([]Rule, 0, total)
	for _, set := range ruleSets {
		out = append(out, set...)
	}

	return out
}
