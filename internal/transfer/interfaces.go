package transfer

import (
	"context"
	"time"

	"github.com/ytget/ytm-offline/internal/model"
	"github.com/ytget/ytm-offline/internal/progress"
)

// Submitter defines the interface for the transfer orchestrator.
type Submitter interface {
	// SubmitURL posts url for media/dir and blocks until the outcome is known
	SubmitURL(ctx context.Context, media model.MediaKind, dir model.Direction, url string) (model.Outcome, error)

	// SubmitFiles starts a new upload batch and returns once every file
	// stream has been started
	SubmitFiles(ctx context.Context, files []model.FileDescriptor) error

	// SetFileResultCallback registers the function called once per file
	// with the outcome of its upload
	SetFileResultCallback(func(name string, outcome model.Outcome))

	// Wait blocks until all started uploads have finished
	Wait()
}

// Notifier shows dialogs. *dialog.Controller implements it.
type Notifier interface {
	ShowTransient(title, body string, delay time.Duration) uint64
	ShowPersistent(title, body string) uint64
	ShowModalChoice(title, body string, onConfirm, onCancel func()) uint64
}

// ProgressTracker records per-file progress. *progress.Tracker implements it.
type ProgressTracker interface {
	Reset(total int)
	Register(id string)
	Update(id string, fraction float64) (progress.Update, error)
}

// DestinationProvider hands out time-bounded upload URLs
type DestinationProvider interface {
	UploadDestination(fileName string, ttl time.Duration) (string, error)
}

// Launcher opens a URL outside the application
type Launcher interface {
	Launch(url string) error
}

// LauncherFunc adapts a function to Launcher
type LauncherFunc func(url string) error

// Launch calls f(url)
func (f LauncherFunc) Launch(url string) error {
	return f(url)
}

// ArtifactStore persists downloaded bodies
type ArtifactStore interface {
	// Save writes body under a new unique id and returns the id and the
	// URL the artifact is served at
	Save(body []byte) (id, publicURL string, err error)
}
