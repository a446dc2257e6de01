// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MetaKey is the reserved top-level key holding source metadata.
//
// It is removed before classification and never treated as category data.
const MetaKey = "meta"

// Source is one decoded configuration file.
type Source struct {
	// Name is source file name or caller-provided label.
	Name string
	// Meta is the value stored under MetaKey, nil when absent.
	Meta Value
	// Data is category data with MetaKey removed.
	Data Branch
}

// LoadSourceFile reads and decodes one YAML or JSON source file.
func LoadSourceFile(path string) (*Source, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	src, err := ParseSource(path, content)
	if err != nil {
		return nil, fmt.Errorf("parse source %s: %w", path, err)
	}

	return src, nil
}

// LoadSourceFiles reads sources in the given order and stops at first failure.
func LoadSourceFiles(paths ...string) ([]*Source, error) {
	out := make([]*Source, 0, len(paths))
	for _, path := range paths {
		src, err := LoadSourceFile(path)
		if err != nil {
			return nil, err
		}

		out = append(out, src)
	}

	return out, nil
}

// ParseSource decodes YAML or JSON content into a Source.
//
// Key order of mappings is preserved. The top-level node must be a mapping;
// empty content yields an empty source.
func ParseSource(name string, content []byte) (*Source, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	src := &Source{Name: name}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return src, nil
		}

		root = root.Content[0]
	}

	if root.Kind == 0 {
		return src, nil
	}

	root = resolveAlias(root)
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top-level value is %s, want mapping", ErrInvalidDocument, nodeKindName(root))
	}

	data := branchFromNode(root)
	if meta, ok := data.Get(MetaKey); ok {
		src.Meta = meta
		data = data.Without(MetaKey)
	}

	src.Data = data
	return src, nil
}

// valueFromNode converts one YAML node to the tagged value model.
func valueFromNode(n *yaml.Node) Value {
	n = resolveAlias(n)

	switch n.Kind {
	case yaml.MappingNode:
		return branchFromNode(n)
	case yaml.SequenceNode:
		leaf := make(Leaf, 0, len(n.Content))
		for _, item := range n.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.ScalarNode {
				return Invalid{Kind: "list of " + nodeKindName(item)}
			}

			// Raw scalar text keeps "true", "null" and "1e3" usable as identifiers.
			leaf = append(leaf, item.Value)
		}

		return leaf
	default:
		return Invalid{Kind: nodeKindName(n), Raw: n.Value}
	}
}

// branchFromNode converts mapping node entries preserving order.
//
// Merge keys ("<<") are expanded in place. Keys written in the mapping itself
// win over merged ones, and earlier merged mappings win over later ones.
func branchFromNode(n *yaml.Node) Branch {
	explicit := make(map[string]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if key := resolveAlias(n.Content[i]); !isMergeKey(key) {
			explicit[key.Value] = struct{}{}
		}
	}

	out := make(Branch, 0, len(n.Content)/2)
	merged := make(map[string]struct{})
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := resolveAlias(n.Content[i])
		if !isMergeKey(key) {
			out = append(out, Entry{
				Key:   key.Value,
				Value: valueFromNode(n.Content[i+1]),
			})
			continue
		}

		entries, bad := mergeEntries(n.Content[i+1])
		if bad != nil {
			out = append(out, Entry{Key: key.Value, Value: *bad})
			continue
		}

		for _, e := range entries {
			if _, ok := explicit[e.Key]; ok {
				continue
			}

			if _, ok := merged[e.Key]; ok {
				continue
			}

			merged[e.Key] = struct{}{}
			out = append(out, e)
		}
	}

	return out
}

// mergeEntries returns entries of a merge value: one mapping or a list of mappings.
func mergeEntries(n *yaml.Node) (Branch, *Invalid) {
	n = resolveAlias(n)

	switch n.Kind {
	case yaml.MappingNode:
		return branchFromNode(n), nil
	case yaml.SequenceNode:
		var out Branch
		for _, item := range n.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.MappingNode {
				return nil, &Invalid{Kind: "merge of " + nodeKindName(item), Raw: item.Value}
			}

			out = append(out, branchFromNode(item)...)
		}

		return out, nil
	default:
		return nil, &Invalid{Kind: "merge of " + nodeKindName(n), Raw: n.Value}
	}
}

// isMergeKey reports whether key is an unquoted "<<" merge key.
func isMergeKey(key *yaml.Node) bool {
	return key.Kind == yaml.ScalarNode && key.ShortTag() == "!!merge"
}

// resolveAlias follows alias chains to the anchored node.
func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}

	return n
}

// nodeKindName returns short type name for warnings and errors.
func nodeKindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str":
			return "string"
		case "!!int":
			return "int"
		case "!!float":
			return "float"
		case "!!bool":
			return "bool"
		case "!!null":
			return "null"
		default:
			return strings.TrimPrefix(n.ShortTag(), "!!")
		}
	default:
		return "unknown"
	}
}
