package colour

import (
	"fmt"
	"math"
	"strconv"
)

// Colour is a normalised RGB triple. Each component is in [0, 1] and is
// only ever derived from an exact 2-hex-digit byte value divided by 255.
// Alpha is always fully opaque and not represented.
type Colour struct {
	R, G, B float64
}

// Decode parses a 6-character hex colour string into a Colour.
// Input casing is not significant. Callers normally classify the string
// with IsColourLine first; Decode only fails on malformed input.
func Decode(hex string) (Colour, error) {
	if len(hex) != 6 {
		return Colour{}, fmt.Errorf("invalid hex colour length: expected 6 characters, got %d", len(hex))
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return Colour{}, fmt.Errorf("invalid red component: %w", err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return Colour{}, fmt.Errorf("invalid green component: %w", err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return Colour{}, fmt.Errorf("invalid blue component: %w", err)
	}

	return Colour{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}, nil
}

// Encode formats a Colour as a 6-character hex string. Each channel is
// multiplied by 255 and rounded ties-away-from-zero. Output is always
// uppercase; input casing is never preserved.
func Encode(c Colour) string {
	return fmt.Sprintf("%02X%02X%02X", channelByte(c.R), channelByte(c.G), channelByte(c.B))
}

// channelByte converts a unit-interval channel to its byte value, clamping
// out-of-range inputs rather than wrapping.
func channelByte(v float64) uint8 {
	scaled := math.Round(v * 255.0)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

// ToRGB converts a normalised Colour to its byte representation.
func (c Colour) ToRGB() RGB {
	return RGB{R: channelByte(c.R), G: channelByte(c.G), B: channelByte(c.B)}
}

// FromRGB converts a byte RGB value to a normalised Colour.
func FromRGB(rgb RGB) Colour {
	return Colour{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}
