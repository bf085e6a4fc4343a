// Package dialog owns the single notification slot of the application.
//
// At most one dialog is visible at a time. Opening a new dialog replaces the
// visible one. Transient dialogs close themselves after a delay, persistent
// ones wait for the user, and choice dialogs resolve to exactly one of their
// confirm or cancel callbacks.
package dialog

import (
	"sync"
	"sync/atomic"
	"time"
)

// Style selects how a dialog is closed
type Style int

const (
	// StyleTransient closes after its delay
	StyleTransient Style = iota
	// StylePersistent stays until dismissed
	StylePersistent
	// StyleChoice asks the user to confirm or cancel
	StyleChoice
)

// String returns the string representation of Style
func (s Style) String() string {
	switch s {
	case StyleTransient:
		return "transient"
	case StylePersistent:
		return "persistent"
	case StyleChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// Dialog is one notification as handed to the Presenter
type Dialog struct {
	ID    uint64
	Title string
	Body  string
	Style Style
	Delay time.Duration // StyleTransient only
}

// Presenter shows and hides dialogs on screen. The controller never calls
// Present and Dismiss concurrently.
type Presenter interface {
	Present(d Dialog)
	Dismiss(id uint64)
}

// Responder receives user answers for presented dialogs. *Controller
// implements it; presenters report back through it.
type Responder interface {
	Dismissed(id uint64)
	Resolve(id uint64, confirmed bool)
}

var _ Responder = (*Controller)(nil)

// stopper is the part of *time.Timer the controller uses
type stopper interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) stopper

func realAfterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// choice holds the callbacks of an open choice dialog
type choice struct {
	once      sync.Once
	onConfirm func()
	onCancel  func()
}

func (c *choice) resolve(confirmed bool) {
	c.once.Do(func() {
		if confirmed {
			if c.onConfirm != nil {
				c.onConfirm()
			}
			return
		}
		if c.onCancel != nil {
			c.onCancel()
		}
	})
}

// Controller manages the dialog slot
type Controller struct {
	presenter Presenter
	after     afterFunc

	presentMu sync.Mutex // serializes presenter calls

	mu      sync.Mutex
	current *Dialog
	timer   stopper
	choice  *choice
	nextID  atomic.Uint64
}

// NewController creates a controller drawing through presenter
func NewController(presenter Presenter) *Controller {
	return &Controller{
		presenter: presenter,
		after:     realAfterFunc,
	}
}

// ShowTransient opens a dialog that closes itself after delay. A
// non-positive delay behaves like ShowPersistent.
func (c *Controller) ShowTransient(title, body string, delay time.Duration) uint64 {
	if delay <= 0 {
		return c.ShowPersistent(title, body)
	}
	return c.open(Dialog{Title: title, Body: body, Style: StyleTransient, Delay: delay}, nil)
}

// ShowPersistent opens a dialog that stays until dismissed or replaced
func (c *Controller) ShowPersistent(title, body string) uint64 {
	return c.open(Dialog{Title: title, Body: body, Style: StylePersistent}, nil)
}

// ShowModalChoice opens a confirm/cancel dialog. Exactly one of onConfirm
// and onCancel runs; replacing, dismissing or closing the dialog cancels it.
func (c *Controller) ShowModalChoice(title, body string, onConfirm, onCancel func()) uint64 {
	return c.open(Dialog{Title: title, Body: body, Style: StyleChoice}, &choice{onConfirm: onConfirm, onCancel: onCancel})
}

func (c *Controller) open(d Dialog, ch *choice) uint64 {
	d.ID = c.nextID.Add(1)

	// the replaced choice is cancelled after the new dialog is up, outside
	// presentMu, so its callback may open dialogs itself
	prevChoice := c.present(d, ch)
	if prevChoice != nil {
		prevChoice.resolve(false)
	}
	return d.ID
}

func (c *Controller) present(d Dialog, ch *choice) *choice {
	c.presentMu.Lock()
	defer c.presentMu.Unlock()

	c.mu.Lock()
	prev, prevChoice := c.takeLocked()
	c.current = &d
	c.choice = ch
	if d.Style == StyleTransient {
		id := d.ID
		c.timer = c.after(d.Delay, func() { c.expire(id) })
	}
	c.mu.Unlock()

	if prev != nil {
		c.presenter.Dismiss(prev.ID)
	}
	c.presenter.Present(d)
	return prevChoice
}

// takeLocked clears the slot and returns what was in it. Caller holds mu.
func (c *Controller) takeLocked() (*Dialog, *choice) {
	prev, prevChoice := c.current, c.choice
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.current = nil
	c.choice = nil
	return prev, prevChoice
}

// expire closes dialog id if it is still the visible one
func (c *Controller) expire(id uint64) {
	c.presentMu.Lock()
	defer c.presentMu.Unlock()

	c.mu.Lock()
	if c.current == nil || c.current.ID != id {
		c.mu.Unlock()
		return
	}
	prev, _ := c.takeLocked()
	c.mu.Unlock()

	c.presenter.Dismiss(prev.ID)
}

// Close hides the visible dialog, cancelling it if it is a choice
func (c *Controller) Close() {
	c.presentMu.Lock()
	c.mu.Lock()
	prev, prevChoice := c.takeLocked()
	c.mu.Unlock()
	if prev != nil {
		c.presenter.Dismiss(prev.ID)
	}
	c.presentMu.Unlock()

	if prevChoice != nil {
		prevChoice.resolve(false)
	}
}

// Dismissed is called by the presenter when the user closed dialog id.
// Stale ids are ignored.
func (c *Controller) Dismissed(id uint64) {
	c.Resolve(id, false)
}

// Resolve is called by the presenter when the user answered choice dialog
// id. Non-choice dialogs are simply released. Stale ids are ignored.
func (c *Controller) Resolve(id uint64, confirmed bool) {
	c.mu.Lock()
	if c.current == nil || c.current.ID != id {
		c.mu.Unlock()
		return
	}
	_, ch := c.takeLocked()
	c.mu.Unlock()

	if ch != nil {
		ch.resolve(confirmed)
	}
}

// Current returns the visible dialog
func (c *Controller) Current() (Dialog, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Dialog{}, false
	}
	return *c.current, true
}
