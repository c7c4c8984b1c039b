package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// editLine opens the minibuffer prefilled with the selected line's raw
// text. Enter commits the edit, Esc abandons it. Any text is accepted;
// a non-conforming result simply classifies invalid and picks up a
// warning marker on the next scan.
func (a *App) editLine() {
	line, ok := a.selectedLine()
	if !ok {
		return
	}

	text, err := a.session().Document().Line(line)
	if err != nil {
		return
	}

	a.minibuffer.SetLabel(fmt.Sprintf("line %d: ", line)).
		SetText(text)

	a.minibuffer.SetDoneFunc(func(key tcell.Key) {
		defer a.closeMinibuffer()

		if key != tcell.KeyEnter {
			return
		}

		if err := a.session().Document().SetLine(line, a.minibuffer.GetText()); err != nil {
			a.setMessage(fmt.Sprintf("edit failed: %v", err))
			return
		}
		a.session().Changed()
	})

	a.layout.ResizeItem(a.minibuffer, 1, 0)
	a.app.SetFocus(a.minibuffer)
}

func (a *App) closeMinibuffer() {
	a.layout.ResizeItem(a.minibuffer, 0, 0)
	a.minibuffer.SetText("")
	a.app.SetFocus(a.table)
}
