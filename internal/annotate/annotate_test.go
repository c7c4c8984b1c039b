package annotate

import (
	"testing"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/labels"
)

func TestUsedRange(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{
			name:  "no lines",
			lines: []string{},
			want:  -1,
		},
		{
			name:  "all blank",
			lines: []string{"", "   ", "\t"},
			want:  -1,
		},
		{
			name:  "single colour line",
			lines: []string{"FF0000"},
			want:  0,
		},
		{
			name:  "trailing blank run",
			lines: []string{"FF0000", "00FF00", "", "", ""},
			want:  1,
		},
		{
			name:  "interior blank counts toward range",
			lines: []string{"FF0000", "", "00FF00"},
			want:  2,
		},
		{
			name:  "invalid content still extends range",
			lines: []string{"FF0000", "garbage"},
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UsedRange(tt.lines); got != tt.want {
				t.Errorf("UsedRange() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBindings(t *testing.T) {
	lines := []string{"FF0000", "  00ff00  ", "nope", ""}

	bindings := Bindings(lines)

	if len(bindings) != 2 {
		t.Fatalf("Bindings() returned %d bindings, want 2", len(bindings))
	}

	if bindings[0].Line != 0 {
		t.Errorf("first binding line = %d, want 0", bindings[0].Line)
	}
	if bindings[0].Span != (Span{Start: 0, End: 6}) {
		t.Errorf("first binding span = %+v, want {0 6}", bindings[0].Span)
	}
	if bindings[0].Colour.R != 1.0 || bindings[0].Colour.G != 0.0 || bindings[0].Colour.B != 0.0 {
		t.Errorf("first binding colour = %+v, want red", bindings[0].Colour)
	}

	// Span covers the trimmed text only, not the surrounding whitespace.
	if bindings[1].Line != 1 {
		t.Errorf("second binding line = %d, want 1", bindings[1].Line)
	}
	if bindings[1].Span != (Span{Start: 2, End: 8}) {
		t.Errorf("second binding span = %+v, want {2 8}", bindings[1].Span)
	}
}

func TestBindingPresent(t *testing.T) {
	lines := []string{"  ff00aa  "}

	bindings := Bindings(lines)
	if len(bindings) != 1 {
		t.Fatalf("Bindings() returned %d bindings, want 1", len(bindings))
	}

	edit := bindings[0].Present(colour.Colour{R: 0.0, G: 1.0, B: 0.0})

	if edit.Text != "00FF00" {
		t.Errorf("Present() text = %q, want canonical uppercase 00FF00", edit.Text)
	}
	if edit.Span != bindings[0].Span {
		t.Errorf("Present() span = %+v, want the original span %+v", edit.Span, bindings[0].Span)
	}
	if edit.Line != 0 {
		t.Errorf("Present() line = %d, want 0", edit.Line)
	}
}

func TestTokensStaticFallback(t *testing.T) {
	lines := []string{"FF0000", "bad", "00FF00"}

	tokens := Tokens(lines, nil)

	want := []Token{
		{Line: 0, Text: "0", Kind: TokenIndex},
		{Line: 0, Text: "black", Kind: TokenLabel},
		{Line: 2, Text: "2", Kind: TokenIndex},
		{Line: 2, Text: "green", Kind: TokenLabel},
	}

	if len(tokens) != len(want) {
		t.Fatalf("Tokens() returned %d tokens, want %d: %+v", len(tokens), len(want), tokens)
	}
	for i, tok := range tokens {
		if tok != want[i] {
			t.Errorf("Tokens()[%d] = %+v, want %+v", i, tok, want[i])
		}
	}
}

func TestTokensBeyondStaticTable(t *testing.T) {
	lines := make([]string, 18)
	for i := range lines {
		lines[i] = "FF0000"
	}

	tokens := Tokens(lines, nil)

	// Line 17 is beyond the 16-entry table: index token only.
	var line17 []Token
	for _, tok := range tokens {
		if tok.Line == 17 {
			line17 = append(line17, tok)
		}
	}

	if len(line17) != 1 {
		t.Fatalf("line 17 has %d tokens, want index token only", len(line17))
	}
	if line17[0].Kind != TokenIndex || line17[0].Text != "17" {
		t.Errorf("line 17 token = %+v, want index token \"17\"", line17[0])
	}
}

func TestTokensExternalTablePrecedence(t *testing.T) {
	table := labels.Parse("COLOR_FIRE = 0\nCOLOR_EXTRA = 20\n")

	lines := make([]string, 21)
	for i := range lines {
		lines[i] = "FF0000"
	}

	tokens := Tokens(lines, table)

	byLine := make(map[int][]Token)
	for _, tok := range tokens {
		byLine[tok.Line] = append(byLine[tok.Line], tok)
	}

	// External table wins over the static entry for index 0.
	if got := byLine[0][1].Text; got != "COLOR_FIRE" {
		t.Errorf("line 0 label = %q, want COLOR_FIRE", got)
	}

	// Static fallback still applies where the external table is silent.
	if got := byLine[1][1].Text; got != "red" {
		t.Errorf("line 1 label = %q, want red", got)
	}

	// External table can label indices past the static range.
	if got := byLine[20][1].Text; got != "COLOR_EXTRA" {
		t.Errorf("line 20 label = %q, want COLOR_EXTRA", got)
	}
}

func TestMarkers(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []int
	}{
		{
			name:  "all valid",
			lines: []string{"FF0000", "00FF00"},
			want:  nil,
		},
		{
			name:  "invalid inside range",
			lines: []string{"FF0000", "zz00aa", "00FF00"},
			want:  []int{1},
		},
		{
			name:  "interior blank is marked",
			lines: []string{"FF0000", "", "00FF00"},
			want:  []int{1},
		},
		{
			name:  "trailing blanks never marked",
			lines: []string{"FF0000", "", ""},
			want:  nil,
		},
		{
			name:  "hash prefix is invalid",
			lines: []string{"#FF0000"},
			want:  []int{0},
		},
		{
			name:  "empty document",
			lines: []string{},
			want:  nil,
		},
		{
			name:  "every line invalid",
			lines: []string{"one", "two"},
			want:  []int{0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markers := Markers(tt.lines)

			if len(markers) != len(tt.want) {
				t.Fatalf("Markers() returned %d markers, want %d: %+v", len(markers), len(tt.want), markers)
			}
			for i, m := range markers {
				if m.Line != tt.want[i] {
					t.Errorf("Markers()[%d].Line = %d, want %d", i, m.Line, tt.want[i])
				}
				if m.Message != MarkerMessage {
					t.Errorf("Markers()[%d].Message = %q, want the fixed advisory", i, m.Message)
				}
			}
		})
	}
}

func TestScan(t *testing.T) {
	// Line 1 blank, used range ends at 2.
	lines := []string{"FF0000", "", "00FF00"}

	set := Scan(lines, nil)

	if len(set.Bindings) != 2 {
		t.Errorf("Scan() bindings = %d, want 2", len(set.Bindings))
	}
	if len(set.Markers) != 1 || set.Markers[0].Line != 1 {
		t.Errorf("Scan() markers = %+v, want one marker on line 1", set.Markers)
	}

	if _, ok := set.BindingAt(1); ok {
		t.Error("BindingAt(1) reported a binding for a blank line")
	}
	if b, ok := set.BindingAt(2); !ok || b.Colour.G != 1.0 {
		t.Errorf("BindingAt(2) = %+v, %v, want green binding", b, ok)
	}

	if toks := set.TokensAt(2); len(toks) != 2 {
		t.Errorf("TokensAt(2) = %+v, want index and label tokens", toks)
	}
	if _, ok := set.MarkerAt(1); !ok {
		t.Error("MarkerAt(1) missing the blank-line marker")
	}
	if _, ok := set.MarkerAt(0); ok {
		t.Error("MarkerAt(0) reported a marker for a valid line")
	}
}
