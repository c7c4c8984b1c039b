package colour

import "testing"

func TestIsColourLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{
			name: "lowercase hex",
			line: "ff00aa",
			want: true,
		},
		{
			name: "uppercase hex",
			line: "FF00AA",
			want: true,
		},
		{
			name: "mixed case hex",
			line: "Ff00Aa",
			want: true,
		},
		{
			name: "all digits",
			line: "123456",
			want: true,
		},
		{
			name: "empty string",
			line: "",
			want: false,
		},
		{
			name: "too short",
			line: "ff00a",
			want: false,
		},
		{
			name: "too long",
			line: "ff00aab",
			want: false,
		},
		{
			name: "hash prefix",
			line: "#ff00aa",
			want: false,
		},
		{
			name: "non-hex characters",
			line: "zz00aa",
			want: false,
		},
		{
			name: "internal whitespace",
			line: "ff 0aa",
			want: false,
		},
		{
			name: "leading whitespace not trimmed by classifier",
			line: " ff00aa",
			want: false,
		},
		{
			name: "trailing garbage",
			line: "ff00aa;",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsColourLine(tt.line); got != tt.want {
				t.Errorf("IsColourLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
