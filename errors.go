// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

package kwregex

import "errors"

// Sentinel errors for kwregex operations.
var (
	// ErrInvalidRule indicates malformed or unsupported rule input.
	ErrInvalidRule = errors.New("invalid rule")
	// ErrInvalidPattern indicates malformed or unsupported rule pattern.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrInvalidFilter indicates malformed include/exclude regular expression.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidDocument indicates source or target document with unsupported structure.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrUnknownFormat indicates unsupported output format name.
	ErrUnknownFormat = errors.New("unknown format")
)
