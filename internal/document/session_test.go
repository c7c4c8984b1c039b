package document

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmylchreest/swatch/internal/annotate"
)

func TestSessionInitialScan(t *testing.T) {
	doc := New("palette.hex", []string{"FF0000", "bad", "00FF00"})
	s := NewSession(doc, nil, 0)
	defer s.Close()

	set := s.Annotations()
	if set == nil {
		t.Fatal("Annotations() = nil after initial scan")
	}

	if len(set.Bindings) != 2 {
		t.Errorf("initial scan bindings = %d, want 2", len(set.Bindings))
	}
	if len(set.Markers) != 1 || set.Markers[0].Line != 1 {
		t.Errorf("initial scan markers = %+v, want one on line 1", set.Markers)
	}
}

func TestSessionChangedRescans(t *testing.T) {
	doc := New("palette.hex", []string{"FF0000"})
	s := NewSession(doc, nil, 0)
	defer s.Close()

	if err := doc.SetLine(0, "nothex"); err != nil {
		t.Fatal(err)
	}
	s.Changed()

	set := s.Annotations()
	if len(set.Bindings) != 0 {
		t.Errorf("bindings after invalidating edit = %d, want 0", len(set.Bindings))
	}
	if len(set.Markers) != 1 {
		t.Errorf("markers after invalidating edit = %d, want 1", len(set.Markers))
	}
}

func TestSessionReplacesSetAtomically(t *testing.T) {
	doc := New("palette.hex", []string{"FF0000", "00FF00"})
	s := NewSession(doc, nil, 0)
	defer s.Close()

	before := s.Annotations()
	s.Rescan()
	after := s.Annotations()

	if before == after {
		t.Error("Rescan() did not install a fresh annotation set")
	}
	if len(after.Bindings) != len(before.Bindings) {
		t.Errorf("fresh set bindings = %d, want %d", len(after.Bindings), len(before.Bindings))
	}
}

func TestSessionStaleInstallDiscarded(t *testing.T) {
	doc := New("palette.hex", []string{"FF0000"})
	s := NewSession(doc, nil, 0)
	defer s.Close()

	current := s.Annotations()

	// A derivation carrying a superseded generation must install nothing.
	stale := annotate.Scan([]string{"00FF00"}, nil)
	if s.install(0, stale) {
		t.Error("install() accepted a stale generation")
	}
	if s.Annotations() != current {
		t.Error("stale install replaced the current annotation set")
	}
}

func TestSessionLabelsFromSibling(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "theme.hex")
	if err := os.WriteFile(path, []byte("FF0000\n00FF00\n"), 0644); err != nil {
		t.Fatal(err)
	}
	sibling := filepath.Join(dir, "theme.go")
	if err := os.WriteFile(sibling, []byte("COLOR_FIRE = 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	updates := make(chan *annotate.Set, 4)
	s := NewSession(doc, nil, 0)
	defer s.Close()
	s.OnUpdate(func(set *annotate.Set) { updates <- set })
	s.Rescan()

	deadline := time.After(2 * time.Second)
	for {
		var set *annotate.Set
		select {
		case set = <-updates:
		case <-deadline:
			t.Fatal("timed out waiting for constants-source labels")
		}

		for _, tok := range set.TokensAt(0) {
			if tok.Kind == annotate.TokenLabel && tok.Text == "COLOR_FIRE" {
				return
			}
		}
	}
}

func TestSessionFallsBackWithoutSibling(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "plain.hex")
	if err := os.WriteFile(path, []byte("FF0000\n"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	s := NewSession(doc, nil, 0)
	defer s.Close()

	// Static fallback label is available immediately, without waiting for
	// the async lookup to fail.
	set := s.Annotations()
	toks := set.TokensAt(0)
	if len(toks) != 2 || toks[1].Text != "black" {
		t.Errorf("TokensAt(0) = %+v, want index token and static label black", toks)
	}
}

func TestSessionDebounceCoalesces(t *testing.T) {
	doc := New("palette.hex", []string{"FF0000"})
	s := NewSession(doc, nil, 20*time.Millisecond)
	defer s.Close()

	if err := doc.SetLine(0, "00FF00"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		s.Changed()
	}

	time.Sleep(100 * time.Millisecond)

	set := s.Annotations()
	b, ok := set.BindingAt(0)
	if !ok || b.Colour.G != 1.0 {
		t.Errorf("BindingAt(0) = %+v, %v, want the debounced rescan to observe the edit", b, ok)
	}
}

func TestSessionClose(t *testing.T) {
	doc := New("palette.hex", []string{"FF0000"})
	s := NewSession(doc, nil, 0)

	before := s.Annotations()
	s.Close()

	// Nothing installs after Close; the last set stays readable but no
	// derivation carrying an old generation may replace it.
	if s.install(1, annotate.Scan([]string{"bad"}, nil)) {
		t.Error("install() accepted work after Close")
	}
	if s.Annotations() != before {
		t.Error("annotation set changed after Close")
	}
}
