// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

/*
Package kwregex builds compact case-insensitive keyword patterns for syntax highlighting rule tables.

Identifiers are grouped into categories by nested configuration keys. Every category is
turned into one regular expression that matches exactly its identifiers on word boundaries.

Basic flow:
  - load sources from YAML or JSON (`LoadSourceFile` / `ParseSource`)
  - build an immutable filter policy (`NewPolicy`)
  - flatten sources into categories (`Classify`)
  - build ordered pattern records (`Assemble`)
  - write them out (`WritePatterns` / `WriteGrammar` / `MergePatterns` / `WriteListing`)

The pattern core can be used directly:
  - insert identifiers into a prefix tree (`NewTrie` / `Trie.Insert`)
  - merge non-branching chains (`Trie.Compact`)
  - render the regex (`Trie.Pattern`) or inspect its syntax tree (`Trie.Expr`)

Category paths can additionally be filtered with gitignore-like rules over
dot-separated paths (`ParseRules`, `NewMatcher`, `LoadRulesFile`).
*/
package kwregex
