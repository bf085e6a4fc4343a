package ui

import (
	"fyne.io/fyne/v2"
	fydialog "fyne.io/fyne/v2/dialog"

	"github.com/ytget/ytm-offline/internal/dialog"
)

// DialogPresenter draws the dialog slot as fyne dialogs on one window
type DialogPresenter struct {
	window    fyne.Window
	responder dialog.Responder

	// touched only on the UI goroutine
	open    map[uint64]fydialog.Dialog
	current uint64
}

// NewDialogPresenter creates a presenter for window
func NewDialogPresenter(window fyne.Window) *DialogPresenter {
	return &DialogPresenter{
		window: window,
		open:   make(map[uint64]fydialog.Dialog),
	}
}

// SetResponder sets who is told about closed and answered dialogs
func (p *DialogPresenter) SetResponder(r dialog.Responder) {
	p.responder = r
}

// Present shows d
func (p *DialogPresenter) Present(d dialog.Dialog) {
	fyne.Do(func() {
		p.show(d)
	})
}

func (p *DialogPresenter) show(d dialog.Dialog) {
	id := d.ID

	var dlg fydialog.Dialog
	if d.Style == dialog.StyleChoice {
		dlg = fydialog.NewConfirm(d.Title, d.Body, func(confirmed bool) {
			delete(p.open, id)
			if p.responder != nil {
				p.responder.Resolve(id, confirmed)
			}
		}, p.window)
	} else {
		dlg = fydialog.NewInformation(d.Title, d.Body, p.window)
		dlg.SetOnClosed(func() {
			delete(p.open, id)
			if p.responder != nil {
				p.responder.Dismissed(id)
			}
		})
	}

	p.open[id] = dlg
	p.current = id
	dlg.Show()
}

// Dismiss hides dialog id if it is still shown
func (p *DialogPresenter) Dismiss(id uint64) {
	fyne.Do(func() {
		p.hide(id)
	})
}

func (p *DialogPresenter) hide(id uint64) {
	dlg, ok := p.open[id]
	if !ok {
		return
	}
	delete(p.open, id)
	if p.current == id {
		p.current = 0
	}
	// the close callback reports a stale id, which the controller ignores
	dlg.Hide()
}

// Visible returns the id of the dialog on screen, or 0
func (p *DialogPresenter) Visible() uint64 {
	if _, ok := p.open[p.current]; ok {
		return p.current
	}
	return 0
}
