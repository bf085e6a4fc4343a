// Package progress tracks per-file transfer fractions for one upload batch
// and raises a one-time signal when every file in the batch has completed.
package progress

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/ytget/ytm-offline/internal/model"
)

// Errors reported for updates that do not match the batch
var (
	ErrUnknownFile     = fmt.Errorf("%w: file not registered", model.ErrInvalidLocalState)
	ErrInvalidFraction = fmt.Errorf("%w: fraction outside [0, 1]", model.ErrInvalidLocalState)
)

// Complete is the fraction at which a file counts as transferred
const Complete = 1.0

// Update describes one accepted progress change
type Update struct {
	ID        string
	Fraction  float64
	Completed int  // files completed in the batch after this update
	Total     int  // files in the batch
	FileDone  bool // this update moved the file to Complete
	BatchDone bool // this update completed the batch; true at most once per batch
}

// FileProgress is one row of a Snapshot
type FileProgress struct {
	ID       string
	Fraction float64
}

// Tracker maintains the id to fraction mapping and the completed count for
// the current batch. It is safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	fractions map[string]float64
	done      map[string]bool
	total     int
	completed int
	onUpdate  func(Update) // callback for UI updates
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		fractions: make(map[string]float64),
		done:      make(map[string]bool),
	}
}

// SetUpdateCallback sets the function called after every accepted update
// and registration. It runs outside the tracker lock.
func (t *Tracker) SetUpdateCallback(callback func(Update)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onUpdate = callback
}

// Reset discards all prior progress and starts a batch of total files
func (t *Tracker) Reset(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.fractions = make(map[string]float64, total)
	t.done = make(map[string]bool, total)
	t.total = total
	t.completed = 0
}

// Register adds id to the batch at 0.0. Registering an id twice keeps its
// current progress.
func (t *Tracker) Register(id string) {
	t.mu.Lock()
	if _, exists := t.fractions[id]; exists {
		t.mu.Unlock()
		return
	}
	t.fractions[id] = 0
	u := Update{ID: id, Completed: t.completed, Total: t.total}
	callback := t.onUpdate
	t.mu.Unlock()

	if callback != nil {
		callback(u)
	}
}

// Update records a new fraction for id. Unknown ids and fractions outside
// [0, 1] are rejected without touching state. Fractions lower than the
// recorded one are ignored, so progress only moves forward.
func (t *Tracker) Update(id string, fraction float64) (Update, error) {
	if math.IsNaN(fraction) || fraction < 0 || fraction > Complete {
		return Update{}, fmt.Errorf("%w: %s=%v", ErrInvalidFraction, id, fraction)
	}

	t.mu.Lock()
	current, exists := t.fractions[id]
	if !exists {
		t.mu.Unlock()
		return Update{}, fmt.Errorf("%w: %s", ErrUnknownFile, id)
	}

	if fraction < current {
		u := Update{ID: id, Fraction: current, Completed: t.completed, Total: t.total}
		t.mu.Unlock()
		return u, nil
	}

	t.fractions[id] = fraction
	u := Update{ID: id, Fraction: fraction, Total: t.total}

	if fraction == Complete && !t.done[id] {
		t.done[id] = true
		t.completed++
		u.FileDone = true
		// completed never exceeds total, so equality is crossed once
		u.BatchDone = t.completed == t.total
	}
	u.Completed = t.completed
	callback := t.onUpdate
	t.mu.Unlock()

	if callback != nil {
		callback(u)
	}
	return u, nil
}

// IsBatchComplete reports whether every file in a non-empty batch completed
func (t *Tracker) IsBatchComplete() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total > 0 && t.completed == t.total
}

// Counts returns completed and total files
func (t *Tracker) Counts() (completed, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed, t.total
}

// Fraction returns the recorded fraction for id
func (t *Tracker) Fraction(id string) (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, ok := t.fractions[id]
	return f, ok
}

// Snapshot returns all files sorted by id
func (t *Tracker) Snapshot() []FileProgress {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := make([]FileProgress, 0, len(t.fractions))
	for id, f := range t.fractions {
		rows = append(rows, FileProgress{ID: id, Fraction: f})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}
