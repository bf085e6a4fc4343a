package transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ytget/ytm-offline/internal/logging"
	"github.com/ytget/ytm-offline/internal/model"
	"github.com/ytget/ytm-offline/internal/progress"
	"github.com/ytget/ytm-offline/internal/transport"
)

// maxInFlight caps the fraction reported while bytes are still being sent.
// Only a successful response moves a file to progress.Complete.
const maxInFlight = 0.99

// ErrDuplicateFile is returned when a selection holds two files with the
// same name. Names key the batch, so such a batch could never complete.
var ErrDuplicateFile = fmt.Errorf("%w: duplicate file name in selection", model.ErrInvalidLocalState)

// Options holds orchestrator behaviour taken from configuration
type Options struct {
	SuccessDelay   time.Duration
	DestinationTTL time.Duration
	ConfirmLaunch  bool
	Development    bool // panic on invalid local state
}

// Dependencies are the collaborators of an Orchestrator
type Dependencies struct {
	Poster       transport.Poster
	Tracker      ProgressTracker
	Dialogs      Notifier
	Destinations DestinationProvider
	Launcher     Launcher
	Artifacts    ArtifactStore
}

// Orchestrator executes submissions and reports their outcomes
type Orchestrator struct {
	deps   Dependencies
	opts   Options
	logger *logging.Logger

	batchMu sync.Mutex // guards batch and tracker writes
	batch   uint64     // current batch generation

	callbackMu   sync.RWMutex
	onFileResult func(name string, outcome model.Outcome) // callback for UI updates

	wg sync.WaitGroup
}

// NewOrchestrator creates an orchestrator. Zero durations in opts fall back
// to 10s for SuccessDelay and 600s for DestinationTTL.
func NewOrchestrator(deps Dependencies, opts Options, logger *logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.Nop()
	}
	if opts.SuccessDelay <= 0 {
		opts.SuccessDelay = 10 * time.Second
	}
	if opts.DestinationTTL <= 0 {
		opts.DestinationTTL = 600 * time.Second
	}

	return &Orchestrator{
		deps:   deps,
		opts:   opts,
		logger: logger,
	}
}

// SetFileResultCallback sets the function called when a file upload ends
func (o *Orchestrator) SetFileResultCallback(callback func(name string, outcome model.Outcome)) {
	o.callbackMu.Lock()
	defer o.callbackMu.Unlock()
	o.onFileResult = callback
}

// SubmitURL posts url to the endpoint for media/dir and reports the outcome
// through a dialog. Only an empty url is rejected locally.
func (o *Orchestrator) SubmitURL(ctx context.Context, media model.MediaKind, dir model.Direction, url string) (model.Outcome, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return model.Outcome{}, model.ErrEmptyURL
	}

	path, err := model.Endpoint(media, dir)
	if err != nil {
		return model.Outcome{}, err
	}
	req := model.NewURLRequest(media, dir, url)

	o.logger.Info().
		Str("media", media.String()).
		Str("direction", dir.String()).
		Str("url", url).
		Msg("submitting url")

	resp, err := o.deps.Poster.PostJSON(ctx, path, map[string]string{media.URLField(): req.URL})
	if err != nil {
		outcome := model.TransportFailure(err)
		o.logger.Error().Err(err).Str("path", path).Msg("url submission failed")
		o.reportFailure(outcome, "")
		return outcome, nil
	}

	outcome := model.ClassifyStatus(resp.StatusCode)
	if outcome.Kind.IsFailure() {
		o.logger.Warn().Str("path", path).Int("status", resp.StatusCode).Msg("backend rejected submission")
		o.reportFailure(outcome, "")
		return outcome, nil
	}

	if dir == model.DirectionUpload {
		o.deps.Dialogs.ShowTransient(TitleSuccess, uploadedMessage(media), o.opts.SuccessDelay)
		return outcome, nil
	}

	id, publicURL, err := o.deps.Artifacts.Save(resp.Body)
	if err != nil {
		o.logger.Error().Err(err).Msg("failed to store download")
		o.deps.Dialogs.ShowPersistent(TitleError, fmt.Sprintf("Could not save the download: %v", err))
		return outcome, fmt.Errorf("failed to store download: %w", err)
	}
	outcome.Artifact = id

	o.logger.Info().Str("artifact", id).Int("bytes", len(resp.Body)).Msg("download stored")
	o.deliver(id, publicURL)
	return outcome, nil
}

// deliver launches the stored artifact, asking first when configured to
func (o *Orchestrator) deliver(id, publicURL string) {
	launch := func() {
		if err := o.deps.Launcher.Launch(publicURL); err != nil {
			o.logger.Error().Err(err).Str("url", publicURL).Msg("failed to launch download")
			o.deps.Dialogs.ShowPersistent(TitleError, fmt.Sprintf("Could not open %s: %v", publicURL, err))
			return
		}
		o.deps.Dialogs.ShowTransient(TitleDownloadReady, downloadReadyMessage(id), o.opts.SuccessDelay)
	}

	if o.opts.ConfirmLaunch {
		o.deps.Dialogs.ShowModalChoice(TitleDownloadReady, confirmLaunchMessage(publicURL), launch, func() {
			o.logger.Debug().Str("artifact", id).Msg("launch declined")
		})
		return
	}
	launch()
}

// SubmitFiles starts a new batch for files. Every file is streamed on its
// own goroutine; SubmitFiles returns once they are started. File names must
// be unique within the selection.
func (o *Orchestrator) SubmitFiles(ctx context.Context, files []model.FileDescriptor) error {
	if len(files) == 0 {
		return model.ErrEmptySelection
	}
	req := model.NewFileSetRequest(files)

	seen := make(map[string]struct{}, len(req.Files))
	for _, f := range req.Files {
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateFile, f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	o.batchMu.Lock()
	o.batch++
	batch := o.batch
	o.deps.Tracker.Reset(len(req.Files))
	for _, f := range req.Files {
		o.deps.Tracker.Register(f.Name)
	}
	o.batchMu.Unlock()

	o.logger.Info().
		Int("files", len(req.Files)).
		Int64("bytes", req.TotalSize()).
		Uint64("batch", batch).
		Msg("starting upload batch")

	for _, f := range req.Files {
		o.wg.Add(1)
		go o.uploadFile(ctx, batch, f)
	}
	return nil
}

// Wait blocks until all started uploads have finished
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) uploadFile(ctx context.Context, batch uint64, f model.FileDescriptor) {
	defer o.wg.Done()

	dest, err := o.deps.Destinations.UploadDestination(f.Name, o.opts.DestinationTTL)
	if err != nil {
		o.fileFailed(batch, f, model.TransportFailure(fmt.Errorf("no upload destination: %w", err)))
		return
	}

	resp, err := o.deps.Poster.PostFile(ctx, dest, model.MultipartFileField, f.Path, func(sent, total int64) {
		o.advance(batch, f.Name, inFlightFraction(sent, total))
	})
	if err != nil {
		o.fileFailed(batch, f, model.TransportFailure(err))
		return
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		o.fileFailed(batch, f, model.ClassifyStatus(resp.StatusCode))
		return
	}

	u, ok := o.advance(batch, f.Name, progress.Complete)
	if !ok {
		return
	}
	o.logger.Debug().Str("file", f.Name).Int("completed", u.Completed).Int("total", u.Total).Msg("file uploaded")

	if u.FileDone {
		o.notifyFileResult(f.Name, model.Outcome{Kind: model.OutcomeSuccess, StatusCode: resp.StatusCode})
	}
	if u.BatchDone {
		title, body := batchDoneMessage(u.Total)
		o.logger.Info().Int("files", u.Total).Uint64("batch", batch).Msg("upload batch complete")
		o.deps.Dialogs.ShowPersistent(title, body)
	}
}

// inFlightFraction maps sent bytes onto [0, maxInFlight]
func inFlightFraction(sent, total int64) float64 {
	if total <= 0 {
		return 0
	}
	f := float64(sent) / float64(total)
	if f > maxInFlight {
		return maxInFlight
	}
	return f
}

// advance records fraction for name if batch is still the current one
func (o *Orchestrator) advance(batch uint64, name string, fraction float64) (progress.Update, bool) {
	o.batchMu.Lock()
	if batch != o.batch {
		o.batchMu.Unlock()
		return progress.Update{}, false
	}
	u, err := o.deps.Tracker.Update(name, fraction)
	o.batchMu.Unlock()

	if err != nil {
		o.invalidState(err)
		return progress.Update{}, false
	}
	return u, true
}

func (o *Orchestrator) fileFailed(batch uint64, f model.FileDescriptor, outcome model.Outcome) {
	o.batchMu.Lock()
	stale := batch != o.batch
	o.batchMu.Unlock()

	o.logger.Error().
		Err(outcome.Err).
		Str("file", f.Name).
		Str("outcome", outcome.String()).
		Bool("stale", stale).
		Msg("file upload failed")
	if stale {
		return
	}

	o.notifyFileResult(f.Name, outcome)
	o.reportFailure(outcome, f.Name)
}

// reportFailure shows the dialog for a failed outcome. Unauthorized and
// server errors stay until dismissed.
func (o *Orchestrator) reportFailure(outcome model.Outcome, fileName string) {
	title, body := failureMessage(outcome)
	if fileName != "" {
		body = fileName + ": " + body
	}
	o.deps.Dialogs.ShowPersistent(title, body)
}

func (o *Orchestrator) notifyFileResult(name string, outcome model.Outcome) {
	o.callbackMu.RLock()
	callback := o.onFileResult
	o.callbackMu.RUnlock()

	if callback != nil {
		callback(name, outcome)
	}
}

// invalidState reports an integration error. Development builds fail loudly.
func (o *Orchestrator) invalidState(err error) {
	o.logger.Error().Err(err).Msg("invalid local state")
	if o.opts.Development && errors.Is(err, model.ErrInvalidLocalState) {
		panic(err)
	}
}
