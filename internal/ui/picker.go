package ui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/jmylchreest/swatch/internal/colour"
)

const pickerPage = "picker"

// picker is the modal colour editor for one binding. Applying answers the
// binding with the canonical encoded hex and replaces exactly the
// original text span.
type picker struct {
	app     *App
	line    int
	form    *tview.Form
	preview *tview.TextView
	working colour.RGB
}

// openPicker opens the colour picker for the selected line, if it carries
// a binding. Only valid colour lines are editable this way.
func (a *App) openPicker() {
	line, ok := a.selectedLine()
	if !ok {
		return
	}

	b, ok := a.session().Annotations().BindingAt(line)
	if !ok {
		a.setMessage(fmt.Sprintf("line %d is not a colour line", line))
		return
	}

	p := &picker{
		app:     a,
		line:    line,
		working: b.Colour.ToRGB(),
	}
	p.build()

	a.pages.AddPage(pickerPage, p.modal(), true, true)
	a.app.SetFocus(p.form)
}

func (p *picker) build() {
	p.preview = tview.NewTextView().
		SetTextAlign(tview.AlignCenter)

	p.form = tview.NewForm().
		AddInputField("Red", strconv.Itoa(int(p.working.R)), 5, acceptByte, func(text string) {
			p.setChannel(&p.working.R, text)
		}).
		AddInputField("Green", strconv.Itoa(int(p.working.G)), 5, acceptByte, func(text string) {
			p.setChannel(&p.working.G, text)
		}).
		AddInputField("Blue", strconv.Itoa(int(p.working.B)), 5, acceptByte, func(text string) {
			p.setChannel(&p.working.B, text)
		}).
		AddButton("Apply", p.apply).
		AddButton("Cancel", p.close)

	p.form.SetBorder(true).
		SetTitle(fmt.Sprintf(" edit colour (line %d) ", p.line))
	p.form.SetCancelFunc(p.close)

	// Ctrl+L lightens, Ctrl+K darkens, working through HSL.
	p.form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlL:
			p.adjustLightness(0.05)
			return nil
		case tcell.KeyCtrlK:
			p.adjustLightness(-0.05)
			return nil
		}
		return event
	})

	p.refreshPreview()
}

// modal centres the form with the live preview above it.
func (p *picker) modal() tview.Primitive {
	inner := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(p.preview, 3, 0, false).
		AddItem(p.form, 0, 1, true)

	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(inner, 15, 0, true).
			AddItem(nil, 0, 1, false), 40, 0, true).
		AddItem(nil, 0, 1, false)
}

func (p *picker) setChannel(ch *uint8, text string) {
	v, err := strconv.Atoi(text)
	if err != nil || v < 0 || v > 255 {
		return
	}
	*ch = uint8(v)
	p.refreshPreview()
}

// adjustLightness nudges the working colour's HSL lightness and writes the
// result back into the form fields.
func (p *picker) adjustLightness(delta float64) {
	h, s, l := colour.RGBToHSL(p.working)
	l += delta
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	p.working = colour.HSLToRGB(h, s, l)

	for i, v := range []uint8{p.working.R, p.working.G, p.working.B} {
		if field, ok := p.form.GetFormItem(i).(*tview.InputField); ok {
			field.SetText(strconv.Itoa(int(v)))
		}
	}
	p.refreshPreview()
}

func (p *picker) refreshPreview() {
	p.preview.SetText("\n" + p.working.Hex()).
		SetTextColor(contrastColour(p.working)).
		SetBackgroundColor(tcell.NewRGBColor(int32(p.working.R), int32(p.working.G), int32(p.working.B)))
}

// apply accepts the picked colour: encode canonically, substitute the
// original span, rescan.
func (p *picker) apply() {
	a := p.app

	set := a.session().Annotations()
	b, ok := set.BindingAt(p.line)
	if !ok {
		p.close()
		return
	}

	edit := b.Present(colour.FromRGB(p.working))
	if err := a.session().Document().Apply(edit); err != nil {
		a.setMessage(fmt.Sprintf("edit failed: %v", err))
		p.close()
		return
	}

	a.session().Changed()
	p.close()
	a.setMessage(fmt.Sprintf("line %d set to %s", p.line, edit.Text))
}

func (p *picker) close() {
	p.app.pages.RemovePage(pickerPage)
	p.app.app.SetFocus(p.app.table)
}

// acceptByte limits picker fields to plausible byte values while typing.
func acceptByte(text string, _ rune) bool {
	if text == "" {
		return true
	}
	v, err := strconv.Atoi(text)
	return err == nil && v >= 0 && v <= 255
}
