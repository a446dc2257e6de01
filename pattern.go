// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

import (
	"fmt"
	"regexp"
	"strings"
)

// compiledRule is matcher-internal compiled representation of one path rule.
type compiledRule struct {
	// segmentRE matches single-segment glob patterns.
	segmentRE *regexp.Regexp
	// segmentExact matches single-segment patterns without glob meta.
	segmentExact string
	// pathExact matches multi-segment patterns without glob meta.
	pathExact string
	// pathRE matches multi-segment glob patterns.
	pathRE *regexp.Regexp
	// source is original source rule.
	source Rule
	// anchored means source pattern starts with ".".
	anchored bool
	// branchOnly means source pattern ends with "." and only matches branch paths.
	branchOnly bool
	// hasSep means pattern contains "." after normalization or is anchored.
	hasSep bool
}

// compileRule compiles one source rule into exact or regexp matching.
func compileRule(rule Rule, caseInsensitive bool) (*compiledRule, error) {
	if !rule.Action.valid() {
		return nil, fmt.Errorf("%w: unsupported action %d", ErrInvalidRule, rule.Action)
	}

	pattern := strings.TrimSpace(rule.Pattern)
	if caseInsensitive {
		pattern = asciiLower(pattern)
	}

	if pattern == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPattern)
	}

	cr := &compiledRule{
		source:     rule,
		anchored:   strings.HasPrefix(pattern, PathSeparator),
		branchOnly: strings.HasSuffix(pattern, PathSeparator),
	}

	pattern = normalizePath(pattern)
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty after normalization (%q)", ErrInvalidPattern, rule.Pattern)
	}

	cr.hasSep = strings.Contains(pattern, PathSeparator) || cr.anchored
	hasMeta := patternHasGlobMeta(pattern)

	if !cr.hasSep {
		if !hasMeta {
			cr.segmentExact = pattern
			return cr, nil
		}

		re, err := regexp.Compile("^" + globToRegexSegment(pattern) + "$")
		if err != nil {
			return nil, fmt.Errorf("%w: compile segment %q: %v", ErrInvalidPattern, rule.Pattern, err)
		}

		cr.segmentRE = re
		return cr, nil
	}

	if !hasMeta {
		cr.pathExact = pattern
		return cr, nil
	}

	prefix := `(?:^|.*\.)`
	if cr.anchored {
		prefix = `^`
	}

	suffix := `$`
	if cr.branchOnly {
		// Branch rules also match everything below the branch.
		suffix = `(?:\..*)?$`
	}

	re, err := regexp.Compile(prefix + globToRegexPath(pattern) + suffix)
	if err != nil {
		return nil, fmt.Errorf("%w: compile path %q: %v", ErrInvalidPattern, rule.Pattern, err)
	}

	cr.pathRE = re
	return cr, nil
}

// matches reports whether compiled rule matches normalized candidate path.
func (r *compiledRule) matches(candidate string, isBranch bool) bool {
	if candidate == "" {
		return false
	}

	if r.hasSep {
		if r.pathExact != "" {
			return matchExactPathRule(r.pathExact, candidate, isBranch, r.anchored, r.branchOnly)
		}

		return r.pathRE != nil && r.pathRE.MatchString(candidate)
	}

	if !r.branchOnly {
		return r.matchSegment(pathBase(candidate))
	}

	return r.matchBranchSegment(candidate, isBranch)
}

// matchSegment matches one segment against exact or regexp form.
func (r *compiledRule) matchSegment(segment string) bool {
	if r.segmentExact != "" {
		return segment == r.segmentExact
	}

	return r.segmentRE != nil && r.segmentRE.MatchString(segment)
}

// matchBranchSegment matches branch-only single-segment rule at any branch level.
func (r *compiledRule) matchBranchSegment(candidate string, isBranch bool) bool {
	segments := strings.Split(candidate, PathSeparator)
	for i, seg := range segments {
		// For leaf paths, skip the last segment.
		if i == len(segments)-1 && !isBranch {
			return false
		}

		if r.matchSegment(seg) {
			return true
		}
	}

	return false
}

// matchExactPathRule matches separator-containing literal pattern without regexp.
func matchExactPathRule(pattern string, candidate string, isBranch bool, anchored bool, branchOnly bool) bool {
	if anchored {
		if !branchOnly {
			return candidate == pattern
		}

		return (candidate == pattern && isBranch) || strings.HasPrefix(candidate, pattern+PathSeparator)
	}

	if !branchOnly {
		return candidate == pattern || strings.HasSuffix(candidate, PathSeparator+pattern)
	}

	for start := 0; start < len(candidate); {
		idx := strings.Index(candidate[start:], pattern)
		if idx < 0 {
			return false
		}

		idx += start
		after := idx + len(pattern)
		beforeOK := idx == 0 || candidate[idx-1] == '.'
		afterOK := after == len(candidate) || candidate[after] == '.'
		if beforeOK && afterOK && (after < len(candidate) || isBranch) {
			return true
		}

		start = idx + 1
	}

	return false
}

// patternHasGlobMeta reports whether pattern contains supported glob meta.
func patternHasGlobMeta(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '*', '?':
			return true
		case '[':
			if findCharClassEnd(pattern, i) >= 0 {
				return true
			}
		}
	}

	return false
}

// globToRegexSegment converts a single-segment glob to regex body.
func globToRegexSegment(pat string) string {
	var b strings.Builder

	for i := 0; i < len(pat); i++ {
		if next, ok := appendCharClassRegex(pat, i, &b); ok {
			i = next
			continue
		}

		switch c := pat[i]; c {
		case '*':
			// Treat ** as * inside one segment.
			if i+1 < len(pat) && pat[i+1] == '*' {
				i++
			}
			b.WriteString(`[^.]*`)
		case '?':
			b.WriteString(`[^.]`)
		default:
			b.WriteString(regexEscapeByte(c))
		}
	}

	return b.String()
}

// globToRegexPath converts a multi-segment glob to regex body.
func globToRegexPath(pat string) string {
	var b strings.Builder

	for i := 0; i < len(pat); i++ {
		// "**." matches zero or more leading segments.
		if pat[i] == '*' && i+2 < len(pat) && pat[i+1] == '*' && pat[i+2] == '.' {
			b.WriteString(`(?:.*\.)?`)
			i += 2
			continue
		}

		if next, ok := appendCharClassRegex(pat, i, &b); ok {
			i = next
			continue
		}

		switch c := pat[i]; c {
		case '*':
			if i+1 < len(pat) && pat[i+1] == '*' {
				b.WriteString(`.*`)
				i++
				continue
			}
			b.WriteString(`[^.]*`)
		case '?':
			b.WriteString(`[^.]`)
		default:
			b.WriteString(regexEscapeByte(c))
		}
	}

	return b.String()
}

// appendCharClassRegex appends a parsed glob char class (`[...]`) as regex class.
func appendCharClassRegex(pat string, start int, b *strings.Builder) (int, bool) {
	end := findCharClassEnd(pat, start)
	if end < 0 {
		return start, false
	}

	b.WriteByte('[')

	idx := start + 1
	if idx < end && pat[idx] == '!' {
		b.WriteByte('^')
		idx++
	} else if idx < end && pat[idx] == '^' {
		b.WriteString(`\^`)
		idx++
	}

	if idx < end && pat[idx] == ']' {
		b.WriteByte(']')
		idx++
	}

	for ; idx < end; idx++ {
		if pat[idx] == '\\' {
			b.WriteString(`\\`)
			continue
		}

		b.WriteByte(pat[idx])
	}

	b.WriteByte(']')
	return end, true
}

// findCharClassEnd locates closing bracket for a glob char class.
func findCharClassEnd(pat string, start int) int {
	if start < 0 || start >= len(pat) || pat[start] != '[' {
		return -1
	}

	idx := start + 1
	if idx < len(pat) && (pat[idx] == '!' || pat[idx] == '^') {
		idx++
	}

	if idx < len(pat) && pat[idx] == ']' {
		idx++
	}

	for ; idx < len(pat); idx++ {
		if pat[idx] == ']' {
			return idx
		}
	}

	return -1
}

// regexEscapeByte escapes one byte for regexp source.
func regexEscapeByte(c byte) string {
	switch c {
	case '.', '+', '(', ')', '|', '{', '}', '[', ']', '^', '$', '\\':
		return `\` + string(c)
	default:
		return string(c)
	}
}
