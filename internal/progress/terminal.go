package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"

	"github.com/ytget/ytm-offline/internal/model"
)

// TerminalBars renders one progress bar per uploaded file on a terminal.
// When the output is not a terminal it prints plain start and finish lines.
type TerminalBars struct {
	progress   *mpb.Progress
	out        io.Writer
	isTerminal bool
	totalFiles int

	mu      sync.Mutex
	bars    map[string]*FileBar
	started int
}

// FileBar is the bar of a single file
type FileBar struct {
	bar      *mpb.Bar
	ui       *TerminalBars
	index    int
	name     string
	size     int64
	finished bool
}

// NewTerminalBars creates bars on stderr for a batch of totalFiles
func NewTerminalBars(totalFiles int) *TerminalBars {
	return newTerminalBars(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), totalFiles)
}

func newTerminalBars(out io.Writer, isTerminal bool, totalFiles int) *TerminalBars {
	var p *mpb.Progress
	if isTerminal {
		p = mpb.New(
			mpb.WithOutput(out),
			mpb.WithRefreshRate(200*time.Millisecond),
			mpb.WithWidth(80),
		)
	} else {
		p = mpb.New(mpb.WithOutput(io.Discard))
	}

	return &TerminalBars{
		progress:   p,
		out:        out,
		isTerminal: isTerminal,
		totalFiles: totalFiles,
		bars:       make(map[string]*FileBar),
	}
}

// Add creates the bar for file, keyed by its name
func (t *TerminalBars) Add(file model.FileDescriptor) *FileBar {
	t.mu.Lock()
	defer t.mu.Unlock()

	if fb, ok := t.bars[file.Name]; ok {
		return fb
	}
	t.started++

	size := file.Size
	if size <= 0 {
		size = 1 // mpb needs a positive total
	}
	fb := &FileBar{
		ui:    t,
		index: t.started,
		name:  file.Name,
		size:  size,
	}

	label := fmt.Sprintf("[%d/%d] %s (%s)", fb.index, t.totalFiles, shortPath(file.Name, 2), file.GetDisplaySize())
	if t.isTerminal {
		fb.bar = t.progress.New(size,
			mpb.BarStyle().Lbound("[").Filler("█").Tip("█").Padding("░").Rbound("]"),
			mpb.PrependDecorators(
				decor.Name(label, decor.WCSyncSpaceR),
			),
			mpb.AppendDecorators(
				decor.Percentage(decor.WCSyncSpace),
			),
		)
	} else {
		_, _ = fmt.Fprintf(t.out, "Uploading %s\n", label)
	}

	t.bars[file.Name] = fb
	return fb
}

// Observe moves the bar named by u.ID to u.Fraction. It fits
// Tracker.SetUpdateCallback.
func (t *TerminalBars) Observe(u Update) {
	t.mu.Lock()
	fb, ok := t.bars[u.ID]
	t.mu.Unlock()
	if !ok {
		return
	}

	fb.SetFraction(u.Fraction)
	if u.FileDone {
		fb.Finish(nil)
	}
}

// SetFraction moves the bar to fraction of the file size
func (f *FileBar) SetFraction(fraction float64) {
	if f.bar == nil {
		return
	}
	f.bar.SetCurrent(int64(fraction * float64(f.size)))
}

// Finish completes the bar, or aborts it when err is not nil
func (f *FileBar) Finish(err error) {
	f.ui.mu.Lock()
	if f.finished {
		f.ui.mu.Unlock()
		return
	}
	f.finished = true
	f.ui.mu.Unlock()

	var msg string
	if err == nil {
		if f.bar != nil {
			f.bar.SetTotal(f.size, true)
		}
		msg = fmt.Sprintf("✓ %s\n", shortPath(f.name, 2))
	} else {
		if f.bar != nil {
			f.bar.Abort(false)
		}
		msg = fmt.Sprintf("✗ %s: %v\n", shortPath(f.name, 2), err)
	}
	_, _ = f.ui.Writer().Write([]byte(msg))
}

// Fail aborts the bar named id
func (t *TerminalBars) Fail(id string, err error) {
	t.mu.Lock()
	fb, ok := t.bars[id]
	t.mu.Unlock()
	if ok {
		fb.Finish(err)
	}
}

// Wait finishes any bar still open and blocks until rendering stops
func (t *TerminalBars) Wait() {
	t.mu.Lock()
	open := make([]*FileBar, 0, len(t.bars))
	for _, fb := range t.bars {
		if !fb.finished {
			open = append(open, fb)
		}
	}
	t.mu.Unlock()

	for _, fb := range open {
		fb.Finish(fmt.Errorf("incomplete"))
	}
	t.progress.Wait()
}

// Writer returns a writer that prints above the bars
func (t *TerminalBars) Writer() io.Writer {
	if t.isTerminal {
		return t.progress
	}
	return t.out
}

// IsTerminal reports whether bars are rendered
func (t *TerminalBars) IsTerminal() bool {
	return t.isTerminal
}

// shortPath keeps the last n components, e.g. "…/b/c.mp3"
func shortPath(path string, n int) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) <= n {
		return filepath.Base(path)
	}
	return "…/" + strings.Join(parts[len(parts)-n:], "/")
}
