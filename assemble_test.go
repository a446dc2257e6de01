// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAssemble(t *testing.T) {
	t.Parallel()

	cats := Categories{
		"keyword":       {"if", "else"},
		"function.math": {"abs"},
		"empty":         nil,
	}

	want := []PatternRecord{
		{Name: "empty.avs", Match: NeverMatch},
		{Name: "function.math.avs", Match: `\b(?i:abs)\b`},
		{Name: "keyword.avs", Match: `\b(?i:else|if)\b`},
	}

	if diff := cmp.Diff(want, Assemble(cats, "")); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleSuffix(t *testing.T) {
	t.Parallel()

	got := Assemble(Categories{"keyword": {"if"}}, ".lang")
	if len(got) != 1 || got[0].Name != "keyword.lang" {
		t.Fatalf("unexpected records: %+v", got)
	}

	if got := Assemble(nil, ""); len(got) != 0 {
		t.Fatalf("nil categories must yield no records: %+v", got)
	}
}
