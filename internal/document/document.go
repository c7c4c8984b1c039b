// Package document models an open palette file: an ordered sequence of
// text lines plus the per-document session that owns the derived
// annotation state.
package document

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jmylchreest/swatch/internal/annotate"
)

// Document is an open palette file. The line slice is the single source
// the adapters read from; everything derived from it is recomputed on
// every change and never cached across edits. A debounced rescan fires
// from a timer goroutine, so reads and edits are mutex-guarded.
type Document struct {
	mu       sync.RWMutex
	path     string
	lines    []string
	modified bool
}

// New creates a document from already-split lines.
func New(path string, lines []string) *Document {
	return &Document{path: path, lines: lines}
}

// Load reads a palette file and splits it into lines. CRLF and lone CR
// line endings are normalised to LF before splitting.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 - user-specified palette file
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimSuffix(content, "\n")

	var lines []string
	if content != "" || len(data) > 0 {
		lines = strings.Split(content, "\n")
	}

	return &Document{path: path, lines: lines}, nil
}

// Path returns the file path the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

// Len returns the number of lines.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.lines)
}

// Snapshot returns a copy of the current lines. Scans work on snapshots
// so an in-flight derivation never observes a concurrent edit.
func (d *Document) Snapshot() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	lines := make([]string, len(d.lines))
	copy(lines, d.lines)
	return lines
}

// Line returns the raw text of one line.
func (d *Document) Line(i int) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i < 0 || i >= len(d.lines) {
		return "", fmt.Errorf("line %d out of range (document has %d lines)", i, len(d.lines))
	}
	return d.lines[i], nil
}

// UsedRange returns the index of the last line with non-blank trimmed
// content, or -1 when the document is all blank.
func (d *Document) UsedRange() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return annotate.UsedRange(d.lines)
}

// Modified reports whether the document has unsaved edits.
func (d *Document) Modified() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.modified
}

// Apply performs a picker edit: a full-span text substitution of the
// edit's span on its line. This is the only mutation the colour-picker
// path ever performs.
func (d *Document) Apply(edit annotate.Edit) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if edit.Line < 0 || edit.Line >= len(d.lines) {
		return fmt.Errorf("line %d out of range (document has %d lines)", edit.Line, len(d.lines))
	}

	line := d.lines[edit.Line]
	if edit.Span.Start < 0 || edit.Span.End > len(line) || edit.Span.Start > edit.Span.End {
		return fmt.Errorf("span [%d, %d) out of range for line of length %d", edit.Span.Start, edit.Span.End, len(line))
	}

	d.lines[edit.Line] = line[:edit.Span.Start] + edit.Text + line[edit.Span.End:]
	d.modified = true
	return nil
}

// SetLine replaces the raw text of one line.
func (d *Document) SetLine(i int, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.lines) {
		return fmt.Errorf("line %d out of range (document has %d lines)", i, len(d.lines))
	}
	d.lines[i] = text
	d.modified = true
	return nil
}

// Insert adds a line at index i, shifting later lines down. i may equal
// Len() to append.
func (d *Document) Insert(i int, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i > len(d.lines) {
		return fmt.Errorf("insert position %d out of range (document has %d lines)", i, len(d.lines))
	}
	d.lines = append(d.lines[:i], append([]string{text}, d.lines[i:]...)...)
	d.modified = true
	return nil
}

// Delete removes the line at index i.
func (d *Document) Delete(i int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.lines) {
		return fmt.Errorf("line %d out of range (document has %d lines)", i, len(d.lines))
	}
	d.lines = append(d.lines[:i], d.lines[i+1:]...)
	d.modified = true
	return nil
}

// Save writes the document back to its path with LF line endings and a
// trailing newline.
func (d *Document) Save() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	content := strings.Join(d.lines, "\n")
	if content != "" {
		content += "\n"
	}

	if err := os.WriteFile(d.path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write palette file: %w", err)
	}

	d.modified = false
	return nil
}
