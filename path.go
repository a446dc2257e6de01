// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

import "strings"

// PathSeparator joins nested configuration keys into a category path.
const PathSeparator = "."

// JoinPath appends key to parent category path.
func JoinPath(parent, key string) string {
	if parent == "" {
		return key
	}

	return parent + PathSeparator + key
}

// normalizePath trims spaces and outer separators and drops empty segments.
func normalizePath(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, PathSeparator)
	if raw == "" {
		return ""
	}

	// Fast path for already-normalized paths.
	if !strings.Contains(raw, "..") {
		return raw
	}

	segments := strings.Split(raw, PathSeparator)
	out := segments[:0]
	for _, seg := range segments {
		if seg != "" {
			out = append(out, seg)
		}
	}

	return strings.Join(out, PathSeparator)
}

// asciiLower converts only ASCII A-Z to a-z and leaves all other bytes unchanged.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}

			return string(b)
		}
	}

	return s
}

// pathBase returns final segment of category path.
func pathBase(path string) string {
	if i := strings.LastIndex(path, PathSeparator); i >= 0 {
		return path[i+len(PathSeparator):]
	}

	return path
}
