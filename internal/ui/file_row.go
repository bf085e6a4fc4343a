package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytm-offline/internal/model"
)

// FileRow shows one selected file with its upload progress
type FileRow struct {
	widget.BaseWidget

	file         model.FileDescriptor
	localization *Localization
	fraction     float64
	outcome      *model.Outcome

	// UI components
	nameLabel     *widget.Label
	sizeLabel     *widget.Label
	statusLabel   *widget.Label
	progressLabel *widget.Label
	progressBar   *widget.ProgressBar
}

// NewFileRow creates a new file row widget
func NewFileRow(file model.FileDescriptor, localization *Localization) *FileRow {
	fr := &FileRow{
		file:         file,
		localization: localization,
	}
	fr.ExtendBaseWidget(fr)
	fr.createUI()
	fr.updateLabels()
	return fr
}

// createUI creates the UI components
func (fr *FileRow) createUI() {
	fr.nameLabel = widget.NewLabel(IconMusic + " " + fr.file.Name)
	fr.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	fr.nameLabel.Truncation = fyne.TextTruncateEllipsis

	fr.sizeLabel = widget.NewLabel(fr.file.GetDisplaySize())
	fr.sizeLabel.Alignment = fyne.TextAlignTrailing

	fr.statusLabel = widget.NewLabel("")
	fr.statusLabel.Alignment = fyne.TextAlignTrailing

	fr.progressLabel = widget.NewLabel("")
	fr.progressLabel.Alignment = fyne.TextAlignTrailing
	fr.progressLabel.TextStyle = fyne.TextStyle{Monospace: true}

	fr.progressBar = widget.NewProgressBar()
	fr.progressBar.TextFormatter = func() string { return "" }
}

// Name returns the file name the row tracks
func (fr *FileRow) Name() string {
	return fr.file.Name
}

// SetFraction moves the progress bar. Must be called on the UI goroutine.
func (fr *FileRow) SetFraction(fraction float64) {
	if fraction < fr.fraction {
		return
	}
	fr.fraction = fraction
	fr.updateLabels()
	fr.Refresh()
}

// SetOutcome marks the upload as finished. Must be called on the UI goroutine.
func (fr *FileRow) SetOutcome(outcome model.Outcome) {
	fr.outcome = &outcome
	if outcome.Kind == model.OutcomeSuccess {
		fr.fraction = 1
	}
	fr.updateLabels()
	fr.Refresh()
}

// Percent returns the displayed percentage
func (fr *FileRow) Percent() int {
	return percentOf(fr.fraction)
}

// Status returns the displayed status text
func (fr *FileRow) Status() string {
	return fr.statusLabel.Text
}

// percentOf converts a fraction into a display percentage. Any progress
// above zero shows at least 1%.
func percentOf(fraction float64) int {
	if fraction <= 0 {
		return 0
	}
	percent := int(fraction*MaxProgressPercent + RoundingCoefficient)
	if percent == 0 {
		percent = MinProgressPercent
	}
	if percent > MaxProgressPercent {
		percent = MaxProgressPercent
	}
	return percent
}

// updateLabels updates UI components based on progress and outcome
func (fr *FileRow) updateLabels() {
	fr.progressBar.SetValue(fr.fraction)
	fr.progressLabel.SetText(fmt.Sprintf(ProgressLabelFormat, fr.Percent()))

	switch {
	case fr.outcome == nil:
		fr.statusLabel.Importance = widget.MediumImportance
		fr.statusLabel.SetText(IconPending + " " + fr.localization.GetText(KeyWaiting))
	case fr.outcome.Kind == model.OutcomeSuccess:
		fr.statusLabel.Importance = widget.SuccessImportance
		fr.statusLabel.SetText(IconDone + " " + fr.localization.GetText(KeyUploaded))
		fr.progressLabel.SetText("")
	default:
		fr.statusLabel.Importance = widget.DangerImportance
		fr.statusLabel.SetText(IconError + " " + fr.localization.GetText(KeyFailed))
	}
}

// CreateRenderer creates the widget renderer
func (fr *FileRow) CreateRenderer() fyne.WidgetRenderer {
	// Helper to fix width using a transparent rectangle underneath
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	info := container.NewHBox(
		fixedWidth(SizeLabelWidth, fr.sizeLabel),
		fixedWidth(PercentLabelWidth, fr.progressLabel),
		fixedWidth(StatusLabelWidth, fr.statusLabel),
	)
	top := container.NewBorder(nil, nil, nil, info, fr.nameLabel)

	return widget.NewSimpleRenderer(container.NewVBox(top, fr.progressBar, widget.NewSeparator()))
}

// MinSize keeps rows readable in narrow windows
func (fr *FileRow) MinSize() fyne.Size {
	min := fr.BaseWidget.MinSize()
	if min.Width < RowMinWidth {
		min.Width = RowMinWidth
	}
	if min.Height < RowMinHeight {
		min.Height = RowMinHeight
	}
	return min
}
