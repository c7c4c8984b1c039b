// Package ui implements the interactive palette surface: one row per
// document line with index/label tokens, an inline swatch, the line text
// and warning markers, plus a colour picker, copy actions and a
// minibuffer for raw line edits.
package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hashicorp/go-hclog"
	"github.com/rivo/tview"

	"github.com/jmylchreest/swatch/internal/annotate"
	"github.com/jmylchreest/swatch/internal/clipboard"
	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/document"
)

const (
	statusMessageTTL = 3 * time.Second
	swatchWidth      = 8
)

// App is the interactive application. It hosts one session per opened
// palette file and renders the active session's annotation set.
type App struct {
	app      *tview.Application
	sessions []*document.Session
	active   int

	table      *tview.Table
	status     *tview.TextView
	minibuffer *tview.InputField
	layout     *tview.Flex
	pages      *tview.Pages

	logger hclog.Logger

	// copyText is the clipboard seam; tests replace it.
	copyText func(string) error

	messageTime time.Time
}

// New creates the application for one or more open documents. The first
// document is active.
func New(sessions []*document.Session, logger hclog.Logger) *App {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	a := &App{
		app:      tview.NewApplication(),
		sessions: sessions,
		logger:   logger,
		copyText: clipboard.WriteText,
	}

	a.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	a.table.SetBorder(true)

	a.status = tview.NewTextView().
		SetDynamicColors(true)

	a.minibuffer = tview.NewInputField().
		SetFieldBackgroundColor(tcell.ColorBlack)

	a.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.table, 0, 1, true).
		AddItem(a.minibuffer, 0, 0, false).
		AddItem(a.status, 1, 0, false)

	a.pages = tview.NewPages().
		AddPage("main", a.layout, true, true)

	a.app.SetRoot(a.pages, true)
	a.setupKeyBindings()
	a.table.SetSelectedFunc(func(row, column int) {
		a.openPicker()
	})

	for _, s := range sessions {
		s.OnUpdate(a.annotationsUpdated)
	}

	a.rebuild(a.session().Annotations())
	a.updateTitle()

	return a
}

// Run starts the event loop and blocks until quit.
func (a *App) Run() error {
	defer func() {
		for _, s := range a.sessions {
			s.Close()
		}
	}()
	return a.app.Run()
}

func (a *App) session() *document.Session {
	return a.sessions[a.active]
}

// annotationsUpdated is the session callback. It may fire from the
// debounce timer or the async constants lookup, so the redraw is queued
// rather than performed inline.
func (a *App) annotationsUpdated(set *annotate.Set) {
	go a.app.QueueUpdateDraw(func() {
		if set == a.session().Annotations() {
			a.rebuild(set)
		}
	})
}

func (a *App) setupKeyBindings() {
	a.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlS:
			a.saveDocument()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q':
				a.app.Stop()
				return nil
			case 'i':
				a.copyToken(annotate.TokenIndex)
				return nil
			case 'l':
				a.copyToken(annotate.TokenLabel)
				return nil
			case 'y':
				a.copyHex()
				return nil
			case 'e':
				a.editLine()
				return nil
			case 'a':
				a.appendLine()
				return nil
			case 'd':
				a.deleteLine()
				return nil
			case ']':
				a.switchDocument(1)
				return nil
			case '[':
				a.switchDocument(-1)
				return nil
			case '?':
				a.showHelp()
				return nil
			}
		}
		return event
	})
}

// selectedLine maps the table selection to a document line index. Row 0
// is the header.
func (a *App) selectedLine() (int, bool) {
	row, _ := a.table.GetSelection()
	line := row - 1
	if line < 0 || line >= a.session().Document().Len() {
		return 0, false
	}
	return line, true
}

// rebuild repaints the table from an annotation set. The table is fully
// rebuilt on every change; there is no incremental patching.
func (a *App) rebuild(set *annotate.Set) {
	if set == nil {
		return
	}

	a.table.Clear()

	for col, heading := range []string{"idx", "label", "colour", "text", ""} {
		a.table.SetCell(0, col, tview.NewTableCell(heading).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	}

	doc := a.session().Document()
	for i, line := range doc.Snapshot() {
		row := i + 1

		indexText, labelText := "", ""
		for _, tok := range set.TokensAt(i) {
			switch tok.Kind {
			case annotate.TokenIndex:
				indexText = tok.Text
			case annotate.TokenLabel:
				labelText = tok.Text
			}
		}

		a.table.SetCell(row, 0, tview.NewTableCell(indexText).SetTextColor(tcell.ColorGrey))
		a.table.SetCell(row, 1, tview.NewTableCell(labelText).SetTextColor(tcell.ColorTeal))
		a.table.SetCell(row, 2, a.swatchCell(set, i))
		a.table.SetCell(row, 3, tview.NewTableCell(line))
		a.table.SetCell(row, 4, a.markerCell(set, i))
	}

	a.updateTitle()
}

// swatchCell paints a solid block in the line's colour, with the hex text
// overlaid in whichever of black or white reads better on it.
func (a *App) swatchCell(set *annotate.Set, line int) *tview.TableCell {
	b, ok := set.BindingAt(line)
	if !ok {
		return tview.NewTableCell("")
	}

	rgb := b.Colour.ToRGB()
	return tview.NewTableCell(centerText(rgb.Hex(), swatchWidth)).
		SetBackgroundColor(tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))).
		SetTextColor(contrastColour(rgb))
}

// contrastColour picks black or white for text over a swatch, whichever
// contrasts more with the background.
func contrastColour(rgb colour.RGB) tcell.Color {
	black := colour.RGB{}
	white := colour.RGB{R: 255, G: 255, B: 255}
	if colour.ContrastRatio(rgb, white) > colour.ContrastRatio(rgb, black) {
		return tcell.ColorWhite
	}
	return tcell.ColorBlack
}

func (a *App) markerCell(set *annotate.Set, line int) *tview.TableCell {
	m, ok := set.MarkerAt(line)
	if !ok {
		return tview.NewTableCell("")
	}
	return tview.NewTableCell("⚠ " + m.Message).SetTextColor(tcell.ColorOrange)
}

// copyToken copies the selected line's token of the given kind. The copied
// text is exactly the token text, no adornment.
func (a *App) copyToken(kind annotate.TokenKind) {
	line, ok := a.selectedLine()
	if !ok {
		return
	}

	var text string
	found := false
	for _, tok := range a.session().Annotations().TokensAt(line) {
		if tok.Kind == kind {
			text = tok.Text
			found = true
			break
		}
	}
	if !found {
		if kind == annotate.TokenLabel {
			a.setMessage(fmt.Sprintf("no label for line %d", line))
		} else {
			a.setMessage(fmt.Sprintf("line %d is not a colour line", line))
		}
		return
	}

	a.copyWithFeedback(text)
}

// copyHex copies the selected line's canonical encoded hex.
func (a *App) copyHex() {
	line, ok := a.selectedLine()
	if !ok {
		return
	}

	b, ok := a.session().Annotations().BindingAt(line)
	if !ok {
		a.setMessage(fmt.Sprintf("line %d is not a colour line", line))
		return
	}

	a.copyWithFeedback(colour.Encode(b.Colour))
}

func (a *App) copyWithFeedback(text string) {
	if err := a.copyText(text); err != nil {
		a.logger.Debug("clipboard write failed", "error", err)
		a.setMessage(fmt.Sprintf("copy failed: %v", err))
		return
	}
	a.setMessage(fmt.Sprintf("copied %q", text))
}

func (a *App) saveDocument() {
	doc := a.session().Document()
	if err := doc.Save(); err != nil {
		a.setMessage(fmt.Sprintf("save failed: %v", err))
		return
	}
	a.setMessage(fmt.Sprintf("saved %s", doc.Path()))
	a.updateTitle()
}

func (a *App) appendLine() {
	line, ok := a.selectedLine()
	doc := a.session().Document()
	at := doc.Len()
	if ok {
		at = line + 1
	}

	if err := doc.Insert(at, ""); err != nil {
		a.setMessage(fmt.Sprintf("insert failed: %v", err))
		return
	}
	a.session().Changed()
	a.table.Select(at+1, 0)
}

func (a *App) deleteLine() {
	line, ok := a.selectedLine()
	if !ok {
		return
	}

	if err := a.session().Document().Delete(line); err != nil {
		a.setMessage(fmt.Sprintf("delete failed: %v", err))
		return
	}
	a.session().Changed()
}

// switchDocument cycles the active session. The newly active view is
// rescanned so its annotations reflect the current file state.
func (a *App) switchDocument(direction int) {
	if len(a.sessions) < 2 {
		return
	}

	a.active = (a.active + direction + len(a.sessions)) % len(a.sessions)
	a.session().Rescan()
	a.rebuild(a.session().Annotations())
	a.table.Select(1, 0)
}

func (a *App) updateTitle() {
	doc := a.session().Document()
	title := fmt.Sprintf(" %s ", doc.Path())
	if doc.Modified() {
		title = fmt.Sprintf(" %s [modified] ", doc.Path())
	}
	if len(a.sessions) > 1 {
		title += fmt.Sprintf("(%d/%d) ", a.active+1, len(a.sessions))
	}
	a.table.SetTitle(title)
}

// setMessage shows a transient status message, cleared after a short
// interval unless a newer message replaced it.
func (a *App) setMessage(msg string) {
	a.status.SetText(msg)
	shown := time.Now()
	a.messageTime = shown

	time.AfterFunc(statusMessageTTL, func() {
		a.app.QueueUpdateDraw(func() {
			if a.messageTime.Equal(shown) {
				a.status.SetText("")
			}
		})
	})
}

func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	left := (width - len(text)) / 2
	right := width - len(text) - left
	out := ""
	for i := 0; i < left; i++ {
		out += " "
	}
	out += text
	for i := 0; i < right; i++ {
		out += " "
	}
	return out
}
