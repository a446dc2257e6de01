// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseRules parses category path rules from reader.
//
// Semantics:
// - blank lines and "#" comments are ignored
// - "!" creates include rule
// - plain lines create exclude rule
// - "\#" and "\!" escape leading comment/negation tokens
// - a line made only of separators is rejected with its line number
func ParseRules(r io.Reader) ([]Rule, error) {
	s := bufio.NewScanner(r)
	rules := make([]Rule, 0, 16)

	for lineNo := 1; s.Scan(); lineNo++ {
		rule, ok := parseRuleLine(s.Text())
		if !ok {
			continue
		}

		if normalizePath(rule.Pattern) == "" {
			return nil, fmt.Errorf("%w: line %d: pattern %q has no segments", ErrInvalidRule, lineNo, rule.Pattern)
		}

		rules = append(rules, rule)
	}

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scan rules: %w", err)
	}

	return rules, nil
}

// ParseRulesString parses rules from string input.
func ParseRulesString(src string) ([]Rule, error) {
	return ParseRules(strings.NewReader(src))
}

// parseRuleLine converts one source line; ok is false for blank and comment lines.
func parseRuleLine(line string) (Rule, bool) {
	line = strings.TrimSpace(strings.TrimRight(line, "\r"))
	if line == "" || strings.HasPrefix(line, "#") {
		return Rule{}, false
	}

	action := ActionExclude
	switch {
	case strings.HasPrefix(line, `\#`), strings.HasPrefix(line, `\!`):
		line = line[1:]
	case strings.HasPrefix(line, "!"):
		action = ActionInclude
		line = strings.TrimSpace(line[1:])
	}

	if line == "" {
		return Rule{}, false
	}

	return Rule{Action: action, Pattern: line}, true
}
