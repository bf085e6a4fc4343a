package ui

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytm-offline/internal/model"
	"github.com/ytget/ytm-offline/internal/router"
	"github.com/ytget/ytm-offline/internal/transfer"
)

// buildView creates the body for a template
func (ui *RootUI) buildView(t router.Template) fyne.CanvasObject {
	heading := widget.NewLabel(t.Heading)
	heading.Wrapping = fyne.TextWrapWord

	var body fyne.CanvasObject
	switch {
	case t.Route == router.RouteRoot:
		body = ui.buildMenuView(t)
	case t.Action.Kind == router.ActionSubmitURL:
		body = ui.buildURLView(t)
	case t.Action.Kind == router.ActionUploadFiles:
		ui.upload = newUploadView(ui, t)
		body = ui.upload.content
	default:
		body = ui.buildCredentialsView(t)
	}
	return container.NewBorder(heading, nil, nil, nil, body)
}

func (ui *RootUI) buildMenuView(t router.Template) fyne.CanvasObject {
	buttons := container.NewVBox()
	for _, entry := range t.Menu {
		route := entry.Route // Capture for closure
		buttons.Add(widget.NewButton(entry.Label, func() {
			ui.services.Router.Navigate(route)
		}))
	}
	return container.NewVScroll(buttons)
}

// urlView holds the widgets of a URL submission view
type urlView struct {
	entry  *widget.Entry
	submit *widget.Button
	status *widget.Label
}

func (ui *RootUI) buildURLView(t router.Template) fyne.CanvasObject {
	v := &urlView{
		entry:  widget.NewEntry(),
		status: widget.NewLabel(""),
	}
	if len(t.Inputs) > 0 {
		v.entry.SetPlaceHolder(t.Inputs[0].Label)
	}
	v.status.Wrapping = fyne.TextWrapWord

	action := t.Action
	v.submit = widget.NewButton(action.Label, func() {
		ui.submitURL(action, v)
	})
	v.submit.Importance = widget.HighImportance
	v.entry.OnSubmitted = func(string) {
		ui.submitURL(action, v)
	}

	return container.NewVBox(v.entry, v.submit, v.status)
}

// submitURL sends the entry text as it is at the moment of the click
func (ui *RootUI) submitURL(action router.Action, v *urlView) {
	if v.submit.Disabled() {
		return
	}
	text := v.entry.Text

	v.submit.Disable()
	v.status.SetText(ui.localization.GetText(KeySubmitting))

	go func() {
		outcome, err := ui.services.Submitter.SubmitURL(ui.ctx, action.Media, action.Direction, text)
		fyne.Do(func() {
			v.submit.Enable()
			switch {
			case errors.Is(err, model.ErrEmptyURL):
				v.status.SetText(ui.localization.GetText(KeyPleaseEnterURL))
			case err != nil:
				v.status.SetText(err.Error())
			default:
				v.status.SetText(outcome.String())
			}
		})
	}()
}

func (ui *RootUI) buildCredentialsView(t router.Template) fyne.CanvasObject {
	form := container.NewVBox()
	for _, input := range t.Inputs {
		var entry *widget.Entry
		if input.Kind == router.InputSecret {
			entry = widget.NewPasswordEntry()
		} else {
			entry = widget.NewEntry()
		}
		entry.SetPlaceHolder(input.Label)
		form.Add(entry)
	}

	title := t.Title
	submit := widget.NewButton(t.Action.Label, func() {
		ui.services.Dialogs.ShowPersistent(title, ui.localization.GetText(KeyNotAvailable))
	})
	form.Add(submit)
	return form
}

// uploadView holds the selection and rows of a file upload view. Its fields
// are touched only on the UI goroutine.
type uploadView struct {
	ui        *RootUI
	input     router.Input
	selection []model.FileDescriptor
	rows      map[string]*FileRow

	list      *fyne.Container
	hint      *widget.Label
	uploadBtn *widget.Button
	content   fyne.CanvasObject
}

func newUploadView(ui *RootUI, t router.Template) *uploadView {
	uv := &uploadView{
		ui:   ui,
		rows: make(map[string]*FileRow),
		list: container.NewVBox(),
		hint: widget.NewLabel(ui.localization.GetText(KeyNoFilesSelected)),
	}
	if len(t.Inputs) > 0 {
		uv.input = t.Inputs[0]
	}

	selectFile := widget.NewButton(IconFile+" "+ui.localization.GetText(KeySelectFile), func() {
		uv.pick(false)
	})
	pickers := container.NewHBox(selectFile)
	if uv.input.Multiple {
		selectFolder := widget.NewButton(IconFolder+" "+ui.localization.GetText(KeySelectFolder), func() {
			uv.pick(true)
		})
		pickers.Add(selectFolder)
	}

	uv.uploadBtn = widget.NewButton(t.Action.Label, uv.onUpload)
	uv.uploadBtn.Importance = widget.HighImportance
	uv.uploadBtn.Disable()

	top := container.NewVBox(pickers, uv.hint)
	uv.content = container.NewBorder(top, uv.uploadBtn, nil, nil, container.NewVScroll(uv.list))
	return uv
}

func (uv *uploadView) pick(multiple bool) {
	if uv.ui.services.Picker == nil {
		return
	}
	uv.ui.services.Picker.PickFiles(multiple, uv.input.Extensions, func(files []model.FileDescriptor, err error) {
		switch {
		case errors.Is(err, ErrNoMatchingFiles):
			uv.hint.SetText(uv.ui.localization.GetText(KeyNoMatchingFiles))
		case err != nil:
			uv.ui.logger.Error().Err(err).Msg("file selection failed")
			uv.ui.services.Dialogs.ShowPersistent(transfer.TitleError, err.Error())
		case files == nil:
			// cancelled, keep the previous selection
		default:
			uv.setSelection(files)
		}
	})
}

// setSelection replaces the selection and its rows
func (uv *uploadView) setSelection(files []model.FileDescriptor) {
	uv.selection = append([]model.FileDescriptor(nil), files...)
	uv.rows = make(map[string]*FileRow, len(files))
	uv.list.RemoveAll()

	for _, f := range uv.selection {
		row := NewFileRow(f, uv.ui.localization)
		uv.rows[f.Name] = row
		uv.list.Add(row)
	}
	uv.list.Refresh()

	if len(uv.selection) == 0 {
		uv.hint.SetText(uv.ui.localization.GetText(KeyNoFilesSelected))
		uv.uploadBtn.Disable()
		return
	}
	uv.hint.SetText("")
	uv.uploadBtn.Enable()
}

func (uv *uploadView) onUpload() {
	// Fresh rows for the new batch
	uv.setSelection(uv.selection)

	err := uv.ui.services.Submitter.SubmitFiles(uv.ui.ctx, uv.selection)
	if errors.Is(err, model.ErrEmptySelection) {
		uv.hint.SetText(uv.ui.localization.GetText(KeyNoFilesSelected))
		uv.uploadBtn.Disable()
		return
	}
	if err != nil {
		uv.ui.logger.Error().Err(err).Msg("upload could not start")
		uv.ui.services.Dialogs.ShowPersistent(transfer.TitleError, err.Error())
	}
}

func (uv *uploadView) setFraction(name string, fraction float64) {
	if row, ok := uv.rows[name]; ok {
		row.SetFraction(fraction)
	}
}

func (uv *uploadView) setOutcome(name string, outcome model.Outcome) {
	if row, ok := uv.rows[name]; ok {
		row.SetOutcome(outcome)
	}
}
