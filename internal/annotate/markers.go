package annotate

import "github.com/jmylchreest/swatch/internal/colour"

// MarkerMessage is the fixed advisory attached to every invalid line.
const MarkerMessage = "not a recognized color value"

// Marker is a warning-severity annotation spanning a full invalid line.
// Markers are advisory only; they never block any workflow.
type Marker struct {
	Line    int
	Message string
}

// Markers flags every line inside the used range that fails the
// classifier. The scan covers index 0 through the last line with
// non-blank trimmed content; a trailing blank run is not in use and is
// never marked, regardless of content.
func Markers(lines []string) []Marker {
	last := UsedRange(lines)

	var out []Marker
	for i := 0; i <= last; i++ {
		trimmed, _ := trimmedSpan(lines[i])
		if colour.IsColourLine(trimmed) {
			continue
		}
		out = append(out, Marker{Line: i, Message: MarkerMessage})
	}
	return out
}
