// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

// Value is one node of nested category configuration.
//
// Exactly three implementations exist: Branch, Leaf and Invalid.
type Value interface {
	isValue()
}

// Entry is one ordered key/value pair of a Branch.
type Entry struct {
	// Key is a category path segment.
	Key string
	// Value is nested value for the key.
	Value Value
}

// Branch is an ordered mapping from key to nested value.
type Branch []Entry

// Leaf is an ordered list of identifiers.
type Leaf []string

// Invalid is a value that is neither a mapping nor an identifier list.
type Invalid struct {
	// Kind is a short type name used in warnings ("string", "int", "list", ...).
	Kind string
	// Raw is source text of the value when available.
	Raw string
}

func (Branch) isValue()  {}
func (Leaf) isValue()    {}
func (Invalid) isValue() {}

// Get returns value stored under key.
func (b Branch) Get(key string) (Value, bool) {
	for i := range b {
		if b[i].Key == key {
			return b[i].Value, true
		}
	}

	return nil, false
}

// Without returns a copy of branch with all entries named key removed.
func (b Branch) Without(key string) Branch {
	out := make(Branch, 0, len(b))
	for i := range b {
		if b[i].Key == key {
			continue
		}

		out = append(out, b[i])
	}

	return out
}
