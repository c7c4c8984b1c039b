// Swatch - An interactive previewer for palette files
//
// Swatch renders palette files (one 6-digit hex colour code per line)
// with inline swatches, copyable index/label tokens, a colour picker and
// warnings for non-conforming lines.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	cli.Execute()
}
