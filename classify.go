// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

// Classify flattens src into dst and returns warnings for skipped values.
//
// Path rules:
// - top-level keys are used as is
// - below a collapsed path the key is not appended
// - otherwise key is appended with "."
//
// Paths rejected by policy are neither stored nor recursed into; each one is
// passed to PolicyOptions.OnSkip when set. Lists at the same path are
// concatenated in encounter order.
func Classify(dst Categories, src Branch, policy Policy) []Warning {
	var warnings []Warning
	classifyBranch(dst, "", src, policy, &warnings)
	return warnings
}

// ClassifySources classifies sources in order into one category mapping.
func ClassifySources(sources []*Source, policy Policy) (Categories, []Warning) {
	cats := make(Categories)
	var warnings []Warning
	for _, src := range sources {
		if src == nil {
			continue
		}

		for _, w := range Classify(cats, src.Data, policy) {
			w.Source = src.Name
			warnings = append(warnings, w)
		}
	}

	return cats, warnings
}

func classifyBranch(dst Categories, path string, branch Branch, policy Policy, warnings *[]Warning) {
	for _, entry := range branch {
		var p string
		switch {
		case path == "":
			p = entry.Key
		case policy.Collapsed(path):
			p = path
		default:
			p = JoinPath(path, entry.Key)
		}

		_, isBranch := entry.Value.(Branch)
		if d := policy.Decide(p, isBranch); !d.Allowed {
			policy.skip(p, d)
			continue
		}

		switch v := entry.Value.(type) {
		case Leaf:
			dst.Add(p, v)
		case Branch:
			classifyBranch(dst, p, v, policy, warnings)
		case Invalid:
			*warnings = append(*warnings, Warning{Path: p, Kind: v.Kind})
		default:
			*warnings = append(*warnings, Warning{Path: p, Kind: "unknown"})
		}
	}
}
