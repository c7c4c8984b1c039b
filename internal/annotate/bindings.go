package annotate

import "github.com/jmylchreest/swatch/internal/colour"

// Binding attaches a decoded colour to the trimmed text span of a valid
// colour line. It is the handle the colour picker works through.
type Binding struct {
	Line   int
	Span   Span
	Colour colour.Colour
}

// Edit is a full-span text substitution produced by accepting a picker
// colour. The span is always the binding's original span, never a partial
// range and never the whole line.
type Edit struct {
	Line int
	Span Span
	Text string
}

// Bindings derives one colour-picker binding per valid colour line.
func Bindings(lines []string) []Binding {
	var out []Binding
	for i, line := range lines {
		trimmed, span := trimmedSpan(line)
		if !colour.IsColourLine(trimmed) {
			continue
		}

		c, err := colour.Decode(trimmed)
		if err != nil {
			// Unreachable for classified lines; skip rather than bind garbage.
			continue
		}

		out = append(out, Binding{Line: i, Span: span, Colour: c})
	}
	return out
}

// Present answers a user-chosen replacement colour with the canonical
// encoded hex text and the exact span to replace.
func (b Binding) Present(c colour.Colour) Edit {
	return Edit{Line: b.Line, Span: b.Span, Text: colour.Encode(c)}
}
