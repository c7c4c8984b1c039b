package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const helpPage = "help"

const helpText = `swatch keys

  up/down     select line
  enter       edit colour via picker
  i           copy index to clipboard
  l           copy label to clipboard
  y           copy hex to clipboard
  e           edit line text
  a           append line below
  d           delete line
  [ / ]       previous / next file
  ctrl+s      save
  ?           close this help
  q           quit

picker keys

  ctrl+l      lighten
  ctrl+k      darken
  esc         cancel`

// showHelp overlays the key reference until any key is pressed.
func (a *App) showHelp() {
	view := tview.NewTextView().
		SetText(helpText)
	view.SetBorder(true).
		SetTitle(" help ")

	view.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		a.pages.RemovePage(helpPage)
		a.app.SetFocus(a.table)
		return nil
	})

	modal := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(view, 24, 0, true).
			AddItem(nil, 0, 1, false), 44, 0, true).
		AddItem(nil, 0, 1, false)

	a.pages.AddPage(helpPage, modal, true, true)
	a.app.SetFocus(view)
}
