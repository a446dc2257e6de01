// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

import (
	"regexp"
	"strings"
)

// NeverMatch is the pattern rendered for an empty identifier set.
//
// "[^\w\W]" is an empty class in both RE2 and Oniguruma, so the pattern stays
// well-formed while matching nothing.
const NeverMatch = `\b(?i:[^\w\W])\b`

// Expr is one node of the regex syntax tree produced from a compacted trie.
type Expr interface {
	// write appends rendered expression to b.
	write(b *strings.Builder)
}

// Literal matches its text exactly; metacharacters are escaped on render.
type Literal string

// Concat matches its parts in sequence.
type Concat []Expr

// Alternation matches any of its branches, rendered as "(?:a|b)".
type Alternation []Expr

// Optional makes a grouped expression optional by appending "?".
type Optional struct {
	Expr Expr
}

// CaseInsensitive renders branches as one "(?i:a|b)" group.
type CaseInsensitive []Expr

// Boundary is a "\b" word boundary assertion.
type Boundary struct{}

// never is an empty character class.
type never struct{}

func (e Literal) write(b *strings.Builder) {
	b.WriteString(regexp.QuoteMeta(string(e)))
}

func (e Concat) write(b *strings.Builder) {
	for _, part := range e {
		part.write(b)
	}
}

func (e Alternation) write(b *strings.Builder) {
	b.WriteString("(?:")
	writeBranches(b, e)
	b.WriteByte(')')
}

func (e Optional) write(b *strings.Builder) {
	e.Expr.write(b)
	b.WriteByte('?')
}

func (e CaseInsensitive) write(b *strings.Builder) {
	b.WriteString("(?i:")
	writeBranches(b, e)
	b.WriteByte(')')
}

func (Boundary) write(b *strings.Builder) {
	b.WriteString(`\b`)
}

func (never) write(b *strings.Builder) {
	b.WriteString(`[^\w\W]`)
}

// writeBranches appends branches joined by "|".
func writeBranches(b *strings.Builder, branches []Expr) {
	for i, branch := range branches {
		if i > 0 {
			b.WriteByte('|')
		}

		branch.write(b)
	}
}

// Render serializes expression into regexp source.
func Render(e Expr) string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

// Expr returns regex syntax tree for trie as it is now.
//
// Callers normally run Compact first; an uncompacted trie yields an equivalent
// but longer expression.
func (t *Trie) Expr() Expr {
	root := t.Root()
	if len(root.children) == 0 {
		return Concat{Boundary{}, CaseInsensitive{never{}}, Boundary{}}
	}

	return Concat{Boundary{}, CaseInsensitive(childExprs(root)), Boundary{}}
}

// Pattern compacts trie and renders its pattern.
func (t *Trie) Pattern() string {
	t.Compact()
	return Render(t.Expr())
}

// BuildPattern renders the pattern matching exactly words, case-insensitively
// on word boundaries.
//
// Identifiers must start and end with a word character: "\b" next to a
// trailing "+" or "#" needs a word character after it, so words like "c++"
// never match.
func BuildPattern(words []string) string {
	return NewTrie(words...).Pattern()
}

// nodeExpr converts one non-root node.
func nodeExpr(n *Node) Expr {
	if len(n.children) == 0 {
		return Literal(n.label)
	}

	var rest Expr = Alternation(childExprs(n))
	if n.terminal {
		rest = Optional{Expr: rest}
	}

	if n.label == "" {
		return rest
	}

	return Concat{Literal(n.label), rest}
}

// childExprs converts children in label order.
func childExprs(n *Node) []Expr {
	children := n.Children()
	out := make([]Expr, 0, len(children))
	for _, c := range children {
		out = append(out, nodeExpr(c))
	}

	return out
}
