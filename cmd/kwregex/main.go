// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

/*
kwregex converts categorized identifier lists into case-insensitive keyword patterns.

Usage is

	kwregex [flags] [input...]

Inputs are YAML or JSON files with nested categories of identifier lists. See
"kwregex --help" for flags; every flag can also be set in the --config file or
with a KWREGEX_* environment variable.
*/
package main

import "github.com/woozymasta/kwregex/internal/cli"

func main() {
	cli.Execute()
}
