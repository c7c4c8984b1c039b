package document

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/annotate"
	"github.com/jmylchreest/swatch/internal/labels"
)

// Session owns the current annotation set for one open document. Each
// triggering event (open, change, view switch) bumps a generation,
// cancels any in-flight work and derives a complete replacement set; a
// superseded derivation installs nothing. The optional constants-source
// lookup runs asynchronously through the same generation gate, so the
// classifier and marker paths never wait on it.
type Session struct {
	mu         sync.Mutex
	doc        *Document
	logger     hclog.Logger
	generation uint64
	cancel     context.CancelFunc
	set        *annotate.Set
	table      *labels.Table
	onUpdate   func(*annotate.Set)

	debounce time.Duration
	timer    *time.Timer
}

// NewSession creates a session for a document and performs the initial
// scan. debounce coalesces rapid successive Changed calls; zero means
// every change rescans immediately. Correctness never depends on the
// debounce, it only trims redundant recomputation.
func NewSession(doc *Document, logger hclog.Logger, debounce time.Duration) *Session {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	s := &Session{
		doc:      doc,
		logger:   logger,
		debounce: debounce,
	}
	s.Rescan()
	return s
}

// Document returns the session's document.
func (s *Session) Document() *Document {
	return s.doc
}

// Annotations returns the most recently installed annotation set.
func (s *Session) Annotations() *annotate.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set
}

// OnUpdate registers a callback invoked whenever a new annotation set is
// installed, including the late arrival of constants-source labels. The
// callback runs outside the session lock.
func (s *Session) OnUpdate(fn func(*annotate.Set)) {
	s.mu.Lock()
	s.onUpdate = fn
	s.mu.Unlock()
}

// Changed signals a document edit. With a debounce configured the rescan
// is deferred and coalesced; otherwise it runs immediately.
func (s *Session) Changed() {
	if s.debounce <= 0 {
		s.Rescan()
		return
	}

	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.Rescan)
	s.mu.Unlock()
}

// Rescan re-derives the full annotation set from the document's current
// lines and installs it atomically, then kicks off the asynchronous
// constants-source lookup for the same generation.
func (s *Session) Rescan() {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	lines := s.doc.Snapshot()
	table := s.table
	s.mu.Unlock()

	s.install(gen, annotate.Scan(lines, table))

	go s.loadLabels(ctx, gen, lines)
}

// Close abandons any in-flight work. No annotation set is installed after
// Close returns.
func (s *Session) Close() {
	s.mu.Lock()
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
}

// install publishes a derived set if its generation is still current.
// Returns false when the scan was superseded.
func (s *Session) install(gen uint64, set *annotate.Set) bool {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return false
	}
	s.set = set
	fn := s.onUpdate
	s.mu.Unlock()

	if fn != nil {
		fn(set)
	}
	return true
}

// loadLabels reads the constants sibling asynchronously. A table that
// arrives after a newer rescan started is discarded; a missing or
// unparseable sibling is a silent fallback to the static table.
func (s *Session) loadLabels(ctx context.Context, gen uint64, lines []string) {
	table, err := labels.Load(ctx, s.doc.Path())
	if err != nil {
		s.logger.Debug("constants source unavailable, using static labels", "error", err)
		return
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.table = table
	s.mu.Unlock()

	s.logger.Debug("constants source loaded", "entries", table.Len())
	s.install(gen, annotate.Scan(lines, table))
}
