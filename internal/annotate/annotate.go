// Package annotate derives presentation annotations from a palette
// document's lines: one colour-picker binding per valid line, index/label
// tokens per valid line, and a warning marker per invalid line inside the
// used range. All derivations are pure functions of the line slice and are
// re-run in full on every change; a scan produces a complete replacement
// Set, never an incremental patch.
package annotate

import (
	"strings"

	"github.com/jmylchreest/swatch/internal/labels"
)

// Span is a half-open byte range within a raw line.
type Span struct {
	Start int
	End   int
}

// Set is the complete annotation state derived from one scan of a
// document. It is immutable once built and replaced atomically by the
// next scan.
type Set struct {
	Bindings []Binding
	Tokens   []Token
	Markers  []Marker
}

// Scan runs all three adapters over the document lines. The label table
// may be nil, in which case label tokens fall back to the static table.
func Scan(lines []string, table *labels.Table) *Set {
	return &Set{
		Bindings: Bindings(lines),
		Tokens:   Tokens(lines, table),
		Markers:  Markers(lines),
	}
}

// BindingAt returns the colour-picker binding for a line, if the line is a
// colour line.
func (s *Set) BindingAt(line int) (Binding, bool) {
	for _, b := range s.Bindings {
		if b.Line == line {
			return b, true
		}
	}
	return Binding{}, false
}

// TokensAt returns the tokens emitted for a line.
func (s *Set) TokensAt(line int) []Token {
	var out []Token
	for _, tok := range s.Tokens {
		if tok.Line == line {
			out = append(out, tok)
		}
	}
	return out
}

// MarkerAt returns the warning marker for a line, if any.
func (s *Set) MarkerAt(line int) (Marker, bool) {
	for _, m := range s.Markers {
		if m.Line == line {
			return m, true
		}
	}
	return Marker{}, false
}

// UsedRange returns the index of the last line with non-blank trimmed
// content, or -1 when every line is blank. Lines past the used range are
// a trailing blank run and are never marked.
func UsedRange(lines []string) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return -1
}

// trimmedSpan locates the trimmed content of a raw line and returns it
// together with its span within the line.
func trimmedSpan(line string) (string, Span) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", Span{}
	}
	start := strings.Index(line, trimmed)
	return trimmed, Span{Start: start, End: start + len(trimmed)}
}
