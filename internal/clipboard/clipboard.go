// Package clipboard provides the write-only clipboard target for the copy
// actions. Failures are surfaced to the caller as errors and rendered as
// transient notifications, never fatal.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

// WriteText places text on the system clipboard. The underlying clipboard
// is initialised once on first use; an unavailable clipboard (headless
// session, unsupported platform build) reports the same error on every
// call rather than retrying.
func WriteText(text string) error {
	initOnce.Do(func() {
		initErr = clipboard.Init()
	})
	if initErr != nil {
		return fmt.Errorf("clipboard unavailable: %w", initErr)
	}

	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
