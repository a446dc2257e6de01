// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

import "strings"

// Compact merges every chain of single-child non-terminal nodes into one node.
//
// So a branch -a-> o -b-> o -c-> o becomes -abc-> o. Terminal nodes are never
// merged away: they may absorb the chain leading to them but always keep their
// own branch point. Compact is idempotent.
func (t *Trie) Compact() {
	t.Root().Compact()
}

// Compact merges single-child chains below n. See Trie.Compact.
func (n *Node) Compact() {
	for key, c := range n.children {
		if len(c.children) != 1 || c.terminal {
			continue
		}

		var label strings.Builder
		label.WriteString(c.label)
		for len(c.children) == 1 && !c.terminal {
			c = c.only()
			label.WriteString(c.label)
		}

		// Key stays valid: merged label starts with the same rune.
		c.label = label.String()
		n.children[key] = c
	}

	for _, c := range n.children {
		c.Compact()
	}
}
