// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

// DefaultSuffix is appended to category paths in pattern record names.
const DefaultSuffix = ".avs"

// Assemble builds one pattern record per category in lexicographic path order.
//
// Empty suffix means DefaultSuffix. Categories with no identifiers get NeverMatch.
func Assemble(cats Categories, suffix string) []PatternRecord {
	if suffix == "" {
		suffix = DefaultSuffix
	}

	paths := cats.Paths()
	out := make([]PatternRecord, 0, len(paths))
	for _, path := range paths {
		out = append(out, PatternRecord{
			Name:  path + suffix,
			Match: BuildPattern(cats[path]),
		})
	}

	return out
}
