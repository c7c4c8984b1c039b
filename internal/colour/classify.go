// Package colour provides palette line classification, hex colour
// encoding/decoding and the colour math used by the presentation layer.
package colour

import "regexp"

// colourLineRe matches exactly six hex digits with nothing around them.
// No # prefix, no shorthand, no whitespace.
var colourLineRe = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// IsColourLine reports whether trimmed is a valid colour line: exactly six
// case-insensitive hex digits. This is the single source of truth for line
// classification; every adapter must use it so they agree on which lines
// are colour lines.
func IsColourLine(trimmed string) bool {
	return colourLineRe.MatchString(trimmed)
}
