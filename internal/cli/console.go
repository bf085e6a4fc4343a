package cli

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ytget/ytm-offline/internal/dialog"
	"github.com/ytget/ytm-offline/internal/platform"
	"github.com/ytget/ytm-offline/internal/transfer"
)

// ConsolePresenter prints dialogs to a writer. Choice dialogs are answered
// from in, or confirmed straight away when assumeYes is set.
type ConsolePresenter struct {
	out       io.Writer
	in        *bufio.Reader
	assumeYes bool
	responder dialog.Responder

	mu      sync.Mutex // serializes writes and prompts
	pending sync.WaitGroup
}

// NewConsolePresenter creates a presenter. A nil in answers every choice with no.
func NewConsolePresenter(out io.Writer, in io.Reader, assumeYes bool) *ConsolePresenter {
	p := &ConsolePresenter{out: out, assumeYes: assumeYes}
	if in != nil {
		p.in = bufio.NewReader(in)
	}
	return p
}

// SetResponder sets who receives choice answers
func (p *ConsolePresenter) SetResponder(r dialog.Responder) {
	p.responder = r
}

// Present prints d. Choices are asked on a separate goroutine.
func (p *ConsolePresenter) Present(d dialog.Dialog) {
	p.mu.Lock()
	_, _ = fmt.Fprintf(p.out, "[%s] %s\n", d.Title, d.Body)
	p.mu.Unlock()

	if d.Style != dialog.StyleChoice {
		return
	}

	p.pending.Add(1)
	go func() {
		defer p.pending.Done()
		confirmed := p.ask()
		if p.responder != nil {
			p.responder.Resolve(d.ID, confirmed)
		}
	}()
}

// Dismiss does nothing, printed lines stay
func (p *ConsolePresenter) Dismiss(uint64) {}

// Wait blocks until every choice has been answered
func (p *ConsolePresenter) Wait() {
	p.pending.Wait()
}

func (p *ConsolePresenter) ask() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.assumeYes {
		_, _ = fmt.Fprintln(p.out, "Open it? [y/N]: y")
		return true
	}
	if p.in == nil {
		return false
	}

	_, _ = fmt.Fprint(p.out, "Open it? [y/N]: ")
	input, err := p.in.ReadString('\n')
	if err != nil && input == "" {
		_, _ = fmt.Fprintln(p.out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// consoleLauncher reports where an artifact was saved and optionally opens
// the local file with the system handler
func consoleLauncher(out io.Writer, dir string, open bool) transfer.Launcher {
	return transfer.LauncherFunc(func(rawURL string) error {
		local := filepath.Join(dir, path.Base(rawURL))
		_, _ = fmt.Fprintf(out, "Saved to %s (%s)\n", local, rawURL)
		if !open {
			return nil
		}
		return platform.OpenURL(local)
	})
}
