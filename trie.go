// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

import (
	"sort"
	"strings"
)

// Node is one prefix tree node owned exclusively by its parent.
type Node struct {
	// children are keyed by the first rune of the child label.
	children map[rune]*Node
	// label is one rune after insertion and a merged run after compaction.
	label string
	// terminal reports whether the path up to this node is a complete identifier.
	terminal bool
}

// Trie is a prefix tree over case-folded identifiers.
type Trie struct {
	root *Node
}

// NewTrie creates a trie and inserts all words.
func NewTrie(words ...string) *Trie {
	t := &Trie{root: &Node{}}
	for _, word := range words {
		t.Insert(word)
	}

	return t
}

// Insert folds word to lower-case and adds it to the trie.
//
// Empty word marks the root terminal, which is ignored by pattern rendering.
func (t *Trie) Insert(word string) {
	if t.root == nil {
		t.root = &Node{}
	}

	current := t.root
	for _, r := range asciiLower(word) {
		current = current.child(r)
	}

	current.terminal = true
}

// Root returns trie root node.
func (t *Trie) Root() *Node {
	if t.root == nil {
		t.root = &Node{}
	}

	return t.root
}

// Empty reports whether trie holds no non-empty identifier.
func (t *Trie) Empty() bool {
	return t.root == nil || len(t.root.children) == 0
}

// child returns existing child for r or creates one.
func (n *Node) child(r rune) *Node {
	if c, ok := n.children[r]; ok {
		return c
	}

	if n.children == nil {
		n.children = make(map[rune]*Node, 1)
	}

	c := &Node{label: string(r)}
	n.children[r] = c
	return c
}

// Label returns node label.
func (n *Node) Label() string {
	return n.label
}

// Terminal reports whether node ends an identifier.
func (n *Node) Terminal() bool {
	return n.terminal
}

// Len returns the number of distinct children (branch count).
func (n *Node) Len() int {
	return len(n.children)
}

// Children returns node children sorted by label.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].label < out[j].label
	})

	return out
}

// only returns the single child of a one-branch node.
func (n *Node) only() *Node {
	for _, c := range n.children {
		return c
	}

	return nil
}

// String renders node subtree in a stable debug form.
//
// Leaf nodes render as "true", other nodes as `{"label": ..., ...}` with
// terminal nodes prefixed by "*".
func (n *Node) String() string {
	var b strings.Builder
	n.writeDebug(&b)
	return b.String()
}

func (n *Node) writeDebug(b *strings.Builder) {
	if len(n.children) == 0 {
		b.WriteString("true")
		return
	}

	if n.terminal {
		b.WriteByte('*')
	}

	b.WriteByte('{')
	for i, c := range n.Children() {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteByte('"')
		b.WriteString(c.label)
		b.WriteString(`": `)
		c.writeDebug(b)
	}

	b.WriteByte('}')
}
