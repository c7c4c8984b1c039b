package colour

import (
	"strings"
	"testing"
)

func TestPreview(t *testing.T) {
	got := Preview(RGB{R: 255, G: 0, B: 0}, 4)

	if !strings.HasPrefix(got, "\x1b[48;2;255;0;0m") {
		t.Errorf("Preview() = %q, want red background escape", got)
	}
	if !strings.Contains(got, "    ") {
		t.Errorf("Preview() = %q, want 4-space block", got)
	}
	if !strings.HasSuffix(got, "\x1b[0m") {
		t.Errorf("Preview() = %q, want reset suffix", got)
	}

	// Zero or negative width falls back to the default block.
	if got := Preview(RGB{}, 0); !strings.Contains(got, strings.Repeat(" ", 8)) {
		t.Errorf("Preview() with zero width = %q, want default block", got)
	}
}

func TestPreviewWithText(t *testing.T) {
	tests := []struct {
		name     string
		rgb      RGB
		text     string
		width    int
		wantText string
		wantFg   string
	}{
		{
			name:     "dark background gets white text",
			rgb:      RGB{R: 0, G: 0, B: 128},
			text:     "000080",
			width:    8,
			wantText: " 000080 ",
			wantFg:   "\x1b[38;2;255;255;255m",
		},
		{
			name:     "light background gets black text",
			rgb:      RGB{R: 255, G: 255, B: 0},
			text:     "FFFF00",
			width:    8,
			wantText: " FFFF00 ",
			wantFg:   "\x1b[38;2;0;0;0m",
		},
		{
			name:     "overlong text truncates to the block",
			rgb:      RGB{R: 255, G: 255, B: 255},
			text:     "FFFFFF",
			width:    4,
			wantText: "FFFF",
			wantFg:   "\x1b[38;2;0;0;0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PreviewWithText(tt.rgb, tt.text, tt.width)
			if !strings.Contains(got, tt.wantText) {
				t.Errorf("PreviewWithText() = %q, want text %q", got, tt.wantText)
			}
			if !strings.Contains(got, tt.wantFg) {
				t.Errorf("PreviewWithText() = %q, want foreground %q", got, tt.wantFg)
			}
		})
	}
}

func TestContrastRatio(t *testing.T) {
	black := RGB{}
	white := RGB{R: 255, G: 255, B: 255}

	// Black on white is the WCAG maximum.
	if got := ContrastRatio(black, white); got < 20.9 || got > 21.1 {
		t.Errorf("ContrastRatio(black, white) = %f, want 21", got)
	}
	// Order must not matter.
	if ContrastRatio(black, white) != ContrastRatio(white, black) {
		t.Error("ContrastRatio() is not symmetric")
	}
	// A colour against itself is the minimum.
	if got := ContrastRatio(white, white); got != 1 {
		t.Errorf("ContrastRatio(white, white) = %f, want 1", got)
	}
}
