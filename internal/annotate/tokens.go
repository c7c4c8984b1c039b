package annotate

import (
	"strconv"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/labels"
)

// TokenKind distinguishes the two token flavours a valid line can carry.
type TokenKind int

const (
	// TokenIndex is the textual form of the line's index.
	TokenIndex TokenKind = iota
	// TokenLabel is a resolved symbolic name for the line's index.
	TokenLabel
)

// Token is a copyable annotation attached to a valid colour line. Text is
// exactly what a copy action places on the clipboard, with no adornment.
type Token struct {
	Line int
	Text string
	Kind TokenKind
}

// Tokens derives index and label tokens for every valid colour line at
// line index i.
//
// Label resolution order: the external constants table by value i, then
// the static 16-entry table by position, then no label at all. The index
// token is emitted unconditionally, labels only when one resolves.
func Tokens(lines []string, table *labels.Table) []Token {
	var out []Token

	for i, line := range lines {
		trimmed, _ := trimmedSpan(line)
		if !colour.IsColourLine(trimmed) {
			continue
		}

		out = append(out, Token{Line: i, Text: strconv.Itoa(i), Kind: TokenIndex})

		if label, ok := resolveLabel(i, table); ok {
			out = append(out, Token{Line: i, Text: label, Kind: TokenLabel})
		}
	}

	return out
}

// resolveLabel applies the label resolution order for one line index.
func resolveLabel(index int, table *labels.Table) (string, bool) {
	if name, ok := table.Lookup(index); ok {
		return name, true
	}
	return colour.LabelFor(index)
}
