// Package labels resolves human-readable names for palette indices from an
// optional sibling constants source file. A palette file foo.hex may ship
// with a foo.go, foo.h, foo.c, foo.py, foo.js or foo.ts next to it that
// defines constants of the form COLOR_<NAME> = <value>; those names label
// the palette entries whose index equals the constant's value.
package labels

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// constantRe matches a named non-negative integer constant assignment
// following the fixed naming pattern: COLOR_ prefix plus an uppercase name.
var constantRe = regexp.MustCompile(`\b(COLOR_[A-Z][A-Z0-9_]*)\s*=\s*([0-9]+)\b`)

// siblingExtensions are the source file extensions probed for a constants
// sibling, in preference order.
var siblingExtensions = []string{".go", ".h", ".c", ".py", ".js", ".ts"}

// maxSourceSize caps how much of a constants source file is read. A
// palette sibling larger than this is not a constants file.
const maxSourceSize = 1 << 20

// Table maps palette index values to constant names.
type Table struct {
	names map[int]string
}

// Lookup returns the name mapped to a value, if any.
func (t *Table) Lookup(value int) (string, bool) {
	if t == nil {
		return "", false
	}
	name, ok := t.names[value]
	return name, ok
}

// Len returns the number of named values in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Load reads the constants sibling of a palette file and builds a value to
// name table. It returns an error when no sibling exists or the sibling
// defines no matching constants; callers treat that as a silent fallback
// to the static label table, never a user-facing failure.
func Load(ctx context.Context, palettePath string) (*Table, error) {
	sibling, size, err := findSibling(palettePath)
	if err != nil {
		return nil, err
	}
	if size > maxSourceSize {
		// Rejected by size alone; never read into memory.
		return nil, fmt.Errorf("constants source %s too large (%d bytes)", sibling, size)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(sibling) // #nosec G304 - sibling of a user-specified palette file
	if err != nil {
		return nil, fmt.Errorf("failed to read constants source: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table := Parse(string(data))
	if table.Len() == 0 {
		return nil, fmt.Errorf("no constants matching pattern in %s", sibling)
	}

	return table, nil
}

// Parse scans source text for constant assignments and builds a table.
// When a value is defined more than once the first definition wins.
func Parse(source string) *Table {
	names := make(map[int]string)

	for _, match := range constantRe.FindAllStringSubmatch(source, -1) {
		value, err := strconv.Atoi(match[2])
		if err != nil {
			// Literal overflows int; not a palette index.
			continue
		}
		if _, exists := names[value]; exists {
			continue
		}
		names[value] = match[1]
	}

	return &Table{names: names}
}

// findSibling locates the same-named source file next to a palette file
// and reports its size, so oversized candidates can be rejected unread.
func findSibling(palettePath string) (string, int64, error) {
	stem := strings.TrimSuffix(palettePath, filepath.Ext(palettePath))

	for _, ext := range siblingExtensions {
		candidate := stem + ext
		if candidate == palettePath {
			continue
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, info.Size(), nil
		}
	}

	return "", 0, fmt.Errorf("no constants source next to %s", palettePath)
}
