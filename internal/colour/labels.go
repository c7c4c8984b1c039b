package colour

// Static label table for palette indices 0-15: the basic ANSI terminal
// colour names (xterm-256 basic 16). Used when no external constants
// source resolves a label for a line's index. Indices beyond 15 have no
// static label.
var staticLabels = [16]string{
	"black",
	"red",
	"green",
	"yellow",
	"blue",
	"magenta",
	"cyan",
	"white",
	"brightblack",
	"brightred",
	"brightgreen",
	"brightyellow",
	"brightblue",
	"brightmagenta",
	"brightcyan",
	"brightwhite",
}

// LabelFor returns the static label for a palette index. The second return
// is false when the index is outside the 16-entry table.
func LabelFor(index int) (string, bool) {
	if index < 0 || index >= len(staticLabels) {
		return "", false
	}
	return staticLabels[index], true
}

// StaticLabelCount is the number of entries in the static label table.
const StaticLabelCount = 16
