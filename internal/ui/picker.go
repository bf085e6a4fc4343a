package ui

import (
	"errors"

	"fyne.io/fyne/v2"
	fydialog "fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/ytget/ytm-offline/internal/model"
	"github.com/ytget/ytm-offline/internal/platform"
)

// ErrNoMatchingFiles is reported when a scanned folder has no allowed files
var ErrNoMatchingFiles = errors.New("no matching files")

// PickResult receives a finished selection. A nil slice with a nil error
// means the user cancelled.
type PickResult func(files []model.FileDescriptor, err error)

// FilePicker opens file dialogs for a window
type FilePicker struct {
	window fyne.Window
}

// NewFilePicker creates a picker bound to window
func NewFilePicker(window fyne.Window) *FilePicker {
	return &FilePicker{window: window}
}

// PickFiles asks for a selection. With multiple set the user picks a folder
// and every allowed file directly inside it is selected; otherwise a single
// file is picked.
func (p *FilePicker) PickFiles(multiple bool, extensions []string, onResult PickResult) {
	if multiple {
		p.pickFolder(extensions, onResult)
		return
	}
	p.pickFile(extensions, onResult)
}

func (p *FilePicker) pickFile(extensions []string, onResult PickResult) {
	d := fydialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			onResult(nil, err)
			return
		}
		if reader == nil {
			onResult(nil, nil) // User cancelled
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()

		fd, err := platform.DescribeFile(path)
		if err != nil {
			onResult(nil, err)
			return
		}
		onResult([]model.FileDescriptor{fd}, nil)
	}, p.window)

	if len(extensions) > 0 {
		d.SetFilter(storage.NewExtensionFileFilter(extensions))
	}
	d.Show()
}

func (p *FilePicker) pickFolder(extensions []string, onResult PickResult) {
	fydialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			onResult(nil, err)
			return
		}
		if uri == nil {
			onResult(nil, nil) // User cancelled
			return
		}

		files, err := platform.ScanFiles(uri.Path(), extensions)
		if err != nil {
			onResult(nil, err)
			return
		}
		if len(files) == 0 {
			onResult(nil, ErrNoMatchingFiles)
			return
		}
		onResult(files, nil)
	}, p.window)
}
