// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"
)

var outputRecords = []PatternRecord{
	{Name: "function.avs", Match: `\b(?i:abs)\b`},
	{Name: "keyword.avs", Match: `\b(?i:else|if)\b`},
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]Format{
		"":      FormatYAML,
		"yaml":  FormatYAML,
		"YML":   FormatYAML,
		" json": FormatJSON,
	} {
		got, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", name, err)
		}

		if got != want {
			t.Fatalf("ParseFormat(%q)=%q, want %q", name, got, want)
		}
	}

	if _, err := ParseFormat("toml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("got %v, want ErrUnknownFormat", err)
	}
}

func TestWritePatternsJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WritePatterns(&buf, outputRecords[:1], FormatJSON); err != nil {
		t.Fatalf("WritePatterns: %v", err)
	}

	want := "[\n  {\n    \"name\": \"function.avs\",\n    \"match\": \"\\\\b(?i:abs)\\\\b\"\n  }\n]\n"
	if got := buf.String(); got != want {
		t.Fatalf("json=%q, want %q", got, want)
	}

	buf.Reset()
	if err := WritePatterns(&buf, nil, FormatJSON); err != nil {
		t.Fatalf("WritePatterns(nil): %v", err)
	}

	if got := buf.String(); got != "[]\n" {
		t.Fatalf("empty json=%q", got)
	}
}

func TestWritePatternsYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WritePatterns(&buf, outputRecords, FormatYAML); err != nil {
		t.Fatalf("WritePatterns: %v", err)
	}

	var got []PatternRecord
	if err := sigsyaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, buf.String())
	}

	if diff := cmp.Diff(outputRecords, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	if err := WritePatterns(&buf, outputRecords, Format("xml")); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("got %v, want ErrUnknownFormat", err)
	}
}

func TestWriteGrammarYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteGrammar(&buf, GrammarOptions{FileTypes: []string{"avs", "avsi"}}, outputRecords)
	if err != nil {
		t.Fatalf("WriteGrammar: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, GeneratedHeader) {
		t.Fatalf("grammar must start with generated header:\n%s", out)
	}

	order := []string{"scopeName:", "\nfileTypes:", "\nname:", "\npatterns:"}
	last := -1
	for _, key := range order {
		idx := strings.Index(out, key)
		if idx <= last {
			t.Fatalf("key %q out of order:\n%s", key, out)
		}

		last = idx
	}

	var doc grammarDocument
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := grammarDocument{
		ScopeName: DefaultScopeName,
		FileTypes: []string{"avs", "avsi"},
		Name:      DefaultGrammarName,
		Patterns:  outputRecords,
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("grammar mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteGrammarJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteGrammar(&buf, GrammarOptions{
		ScopeName: "source.test",
		Name:      "Test",
		Format:    FormatJSON,
	}, nil)
	if err != nil {
		t.Fatalf("WriteGrammar: %v", err)
	}

	want := "{\n  \"scopeName\": \"source.test\",\n  \"fileTypes\": [],\n  \"name\": \"Test\",\n  \"patterns\": []\n}\n"
	if got := buf.String(); got != want {
		t.Fatalf("json=%q, want %q", got, want)
	}
}

func TestMergePatternsYAML(t *testing.T) {
	t.Parallel()

	doc := []byte(`# grammar
scopeName: source.avs
patterns:
  - include: '#comments'
repository: {}
`)

	out, err := MergePatterns(doc, outputRecords, FormatYAML)
	if err != nil {
		t.Fatalf("MergePatterns: %v", err)
	}

	text := string(out)
	if !strings.Contains(text, "# grammar") {
		t.Fatalf("comment lost:\n%s", text)
	}

	if strings.Index(text, "patterns:") > strings.Index(text, "repository:") {
		t.Fatalf("key order changed:\n%s", text)
	}

	var got struct {
		ScopeName string           `yaml:"scopeName"`
		Patterns  []map[string]any `yaml:"patterns"`
	}
	if err := yaml.Unmarshal(out, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := []map[string]any{
		{"include": "#comments"},
		{"name": "function.avs", "match": `\b(?i:abs)\b`},
		{"name": "keyword.avs", "match": `\b(?i:else|if)\b`},
	}
	if diff := cmp.Diff(want, got.Patterns); diff != "" {
		t.Fatalf("patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestMergePatternsCreatesList(t *testing.T) {
	t.Parallel()

	for name, doc := range map[string]string{
		"absent": "scopeName: source.avs\n",
		"null":   "scopeName: source.avs\npatterns:\n",
		"empty":  "",
	} {
		out, err := MergePatterns([]byte(doc), outputRecords[:1], FormatYAML)
		if err != nil {
			t.Fatalf("%s: MergePatterns: %v", name, err)
		}

		var got struct {
			Patterns []PatternRecord `yaml:"patterns"`
		}
		if err := yaml.Unmarshal(out, &got); err != nil {
			t.Fatalf("%s: Unmarshal: %v", name, err)
		}

		if diff := cmp.Diff(outputRecords[:1], got.Patterns); diff != "" {
			t.Fatalf("%s: patterns mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestMergePatternsInvalid(t *testing.T) {
	t.Parallel()

	for name, doc := range map[string]string{
		"scalar patterns": "patterns: 3\n",
		"mapping patterns": "patterns:\n  a: b\n",
		"list root":       "- a\n- b\n",
	} {
		if _, err := MergePatterns([]byte(doc), outputRecords, FormatYAML); !errors.Is(err, ErrInvalidDocument) {
			t.Fatalf("%s: got %v, want ErrInvalidDocument", name, err)
		}
	}
}

func TestMergePatternsJSON(t *testing.T) {
	t.Parallel()

	doc := []byte(`{"scopeName": "source.avs", "patterns": []}`)
	out, err := MergePatterns(doc, outputRecords[:1], FormatJSON)
	if err != nil {
		t.Fatalf("MergePatterns: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, out)
	}

	want := map[string]any{
		"scopeName": "source.avs",
		"patterns": []any{
			map[string]any{"name": "function.avs", "match": `\b(?i:abs)\b`},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}

	if !bytes.HasSuffix(out, []byte("}\n")) {
		t.Fatalf("json must end with newline: %q", out)
	}
}

func TestWriteListing(t *testing.T) {
	t.Parallel()

	cats := Categories{
		"keyword":       {"if", "else"},
		"function.math": {"abs"},
	}

	var buf bytes.Buffer
	if err := WriteListing(&buf, cats, "# generated\n# listing"); err != nil {
		t.Fatalf("WriteListing: %v", err)
	}

	want := "# generated\r\n# listing\r\n" +
		"# function.math\r\n\r\nabs()\r\n\r\n" +
		"# keyword\r\n\r\nif\r\nelse\r\n\r\n"
	if got := buf.String(); got != want {
		t.Fatalf("listing=%q, want %q", got, want)
	}
}
