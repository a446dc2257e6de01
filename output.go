// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"
)

// Format is an output serialization format.
type Format string

const (
	// FormatYAML writes YAML.
	FormatYAML Format = "yaml"
	// FormatJSON writes indented JSON.
	FormatJSON Format = "json"
)

// PatternsKey is the grammar document key holding pattern records.
const PatternsKey = "patterns"

// GeneratedHeader starts every generated YAML grammar document.
const GeneratedHeader = "# This is an auto-generated file.\n"

// Grammar document defaults.
const (
	DefaultScopeName   = "source.builtins.avs"
	DefaultGrammarName = "AviSynth Builtins"
)

// GrammarOptions describes a generated grammar document.
type GrammarOptions struct {
	// ScopeName is grammar scope, DefaultScopeName when empty.
	ScopeName string `json:"scope_name,omitempty" yaml:"scope_name,omitempty"`
	// Name is human-readable grammar name, DefaultGrammarName when empty.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// FileTypes lists file extensions handled by grammar.
	FileTypes []string `json:"file_types,omitempty" yaml:"file_types,omitempty"`
	// Format is output format, FormatYAML when empty.
	Format Format `json:"format,omitempty" yaml:"format,omitempty"`
}

// grammarDocument is the serialized grammar layout; field order is output order.
type grammarDocument struct {
	ScopeName string          `json:"scopeName" yaml:"scopeName"`
	FileTypes []string        `json:"fileTypes" yaml:"fileTypes"`
	Name      string          `json:"name" yaml:"name"`
	Patterns  []PatternRecord `json:"patterns" yaml:"patterns"`
}

// ParseFormat converts format name to Format. Empty name means FormatYAML.
func ParseFormat(name string) (Format, error) {
	switch Format(asciiLower(strings.TrimSpace(name))) {
	case "", FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// WritePatterns writes records standalone for inspection and testing.
func WritePatterns(w io.Writer, records []PatternRecord, format Format) error {
	if records == nil {
		records = []PatternRecord{}
	}

	var (
		data []byte
		err  error
	)

	switch format {
	case "", FormatYAML:
		data, err = sigsyaml.Marshal(records)
	case FormatJSON:
		data, err = marshalJSON(records)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return fmt.Errorf("marshal patterns: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write patterns: %w", err)
	}

	return nil
}

// WriteGrammar writes a new grammar document holding records.
func WriteGrammar(w io.Writer, opts GrammarOptions, records []PatternRecord) error {
	doc := grammarDocument{
		ScopeName: opts.ScopeName,
		FileTypes: opts.FileTypes,
		Name:      opts.Name,
		Patterns:  records,
	}

	if doc.ScopeName == "" {
		doc.ScopeName = DefaultScopeName
	}

	if doc.Name == "" {
		doc.Name = DefaultGrammarName
	}

	if doc.FileTypes == nil {
		doc.FileTypes = []string{}
	}

	if doc.Patterns == nil {
		doc.Patterns = []PatternRecord{}
	}

	var buf bytes.Buffer
	switch opts.Format {
	case "", FormatYAML:
		buf.WriteString(GeneratedHeader)
		if err := encodeYAML(&buf, doc); err != nil {
			return fmt.Errorf("encode grammar: %w", err)
		}
	case FormatJSON:
		data, err := marshalJSON(doc)
		if err != nil {
			return fmt.Errorf("encode grammar: %w", err)
		}

		buf.Write(data)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write grammar: %w", err)
	}

	return nil
}

// MergePatterns adds records to the "patterns" list of an existing document.
//
// The list is appended when absent and extended when present. Empty doc is
// treated as an empty mapping. YAML output keeps document key order and
// comments; JSON output is re-indented with sorted keys.
func MergePatterns(doc []byte, records []PatternRecord, format Format) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	if root.Kind == 0 || len(root.Content) == 0 {
		root = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}

	mapping := resolveAlias(root.Content[0])
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: document root is %s, want mapping", ErrInvalidDocument, nodeKindName(mapping))
	}

	if records == nil {
		records = []PatternRecord{}
	}

	var list yaml.Node
	if err := list.Encode(records); err != nil {
		return nil, fmt.Errorf("encode patterns: %w", err)
	}

	if existing := mappingValue(mapping, PatternsKey); existing != nil {
		existing = resolveAlias(existing)
		if existing.Kind != yaml.SequenceNode {
			// "patterns:" with no value decodes as null.
			if existing.Kind != yaml.ScalarNode || existing.ShortTag() != "!!null" {
				return nil, fmt.Errorf("%w: %q is %s, want list", ErrInvalidDocument, PatternsKey, nodeKindName(existing))
			}

			*existing = yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		}

		existing.Style &^= yaml.FlowStyle
		existing.Content = append(existing.Content, list.Content...)
	} else {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: PatternsKey},
			&list,
		)
	}

	var buf bytes.Buffer
	if err := encodeYAML(&buf, &root); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	switch format {
	case "", FormatYAML:
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := sigsyaml.YAMLToJSON(buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("convert document to json: %w", err)
		}

		var out bytes.Buffer
		if err := json.Indent(&out, data, "", "  "); err != nil {
			return nil, fmt.Errorf("indent document: %w", err)
		}

		out.WriteByte('\n')
		return out.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteListing writes every identifier grouped by category for manual pattern testing.
//
// Lines end with CRLF. Categories named "function" or "function.*" get "()"
// appended to identifiers.
func WriteListing(w io.Writer, cats Categories, prologue string) error {
	bw := bufio.NewWriter(w)

	if prologue != "" {
		prologue = strings.ReplaceAll(prologue, "\r\n", "\n")
		bw.WriteString(strings.ReplaceAll(prologue, "\n", "\r\n"))
		bw.WriteString("\r\n")
	}

	for _, category := range cats.Paths() {
		bw.WriteString("# " + category + "\r\n\r\n")

		suffix := ""
		if category == "function" || strings.HasPrefix(category, "function.") {
			suffix = "()"
		}

		for _, id := range cats[category] {
			bw.WriteString(id + suffix + "\r\n")
		}

		bw.WriteString("\r\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write listing: %w", err)
	}

	return nil
}

// mappingValue returns value node stored under key in mapping node.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if resolveAlias(mapping.Content[i]).Value == key {
			return mapping.Content[i+1]
		}
	}

	return nil
}

// encodeYAML encodes v with two-space indentation.
func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}

// marshalJSON encodes v as indented JSON with trailing newline and no HTML escaping.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
