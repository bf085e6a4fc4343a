package progress

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ytget/ytm-offline/internal/model"
)

func TestTrackerSingleFile(t *testing.T) {
	tr := NewTracker()
	tr.Reset(1)
	tr.Register("a.mp3")

	u, err := tr.Update("a.mp3", 0.5)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if u.FileDone || u.BatchDone {
		t.Errorf("half-way update should not complete anything: %+v", u)
	}

	u, err = tr.Update("a.mp3", 1.0)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !u.FileDone || !u.BatchDone {
		t.Errorf("final update should complete file and batch: %+v", u)
	}
	if !tr.IsBatchComplete() {
		t.Error("batch should be complete")
	}
}

func TestTrackerCompletesOnce(t *testing.T) {
	tr := NewTracker()
	tr.Reset(2)
	tr.Register("a")
	tr.Register("b")

	if _, err := tr.Update("a", 1.0); err != nil {
		t.Fatal(err)
	}
	u, _ := tr.Update("a", 1.0)
	if u.FileDone || u.Completed != 1 {
		t.Errorf("repeated completion counted twice: %+v", u)
	}
	if tr.IsBatchComplete() {
		t.Error("batch with one pending file reported complete")
	}

	u, _ = tr.Update("b", 1.0)
	if !u.BatchDone || u.Completed != 2 || u.Total != 2 {
		t.Errorf("unexpected final update: %+v", u)
	}

	u, _ = tr.Update("b", 1.0)
	if u.BatchDone {
		t.Error("batch completion fired twice")
	}
}

func TestTrackerRejectsInvalidUpdates(t *testing.T) {
	tr := NewTracker()
	tr.Reset(1)
	tr.Register("a")

	tests := []struct {
		name     string
		id       string
		fraction float64
		want     error
	}{
		{"unknown id", "missing", 0.5, ErrUnknownFile},
		{"negative", "a", -0.1, ErrInvalidFraction},
		{"above one", "a", 1.5, ErrInvalidFraction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.Update(tt.id, tt.fraction)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if !errors.Is(err, model.ErrInvalidLocalState) {
				t.Errorf("error should wrap ErrInvalidLocalState: %v", err)
			}
		})
	}

	if f, _ := tr.Fraction("a"); f != 0 {
		t.Errorf("rejected updates changed state: %v", f)
	}
}

func TestTrackerIgnoresRegression(t *testing.T) {
	tr := NewTracker()
	tr.Reset(1)
	tr.Register("a")

	_, _ = tr.Update("a", 0.7)
	u, err := tr.Update("a", 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if u.Fraction != 0.7 {
		t.Errorf("expected fraction to stay at 0.7, got %v", u.Fraction)
	}
}

func TestTrackerResetDiscardsProgress(t *testing.T) {
	tr := NewTracker()
	tr.Reset(1)
	tr.Register("old")
	_, _ = tr.Update("old", 1.0)

	tr.Reset(2)
	if tr.IsBatchComplete() {
		t.Error("new batch should start incomplete")
	}
	if _, err := tr.Update("old", 0.5); !errors.Is(err, ErrUnknownFile) {
		t.Errorf("ids from the previous batch should be unknown, got %v", err)
	}
	if c, total := tr.Counts(); c != 0 || total != 2 {
		t.Errorf("unexpected counts %d/%d", c, total)
	}
}

func TestTrackerEmptyBatchNeverComplete(t *testing.T) {
	tr := NewTracker()
	tr.Reset(0)
	if tr.IsBatchComplete() {
		t.Error("empty batch should not report complete")
	}
}

func TestTrackerConcurrentCompletionFiresOnce(t *testing.T) {
	const files = 50
	tr := NewTracker()
	tr.Reset(files)
	for i := 0; i < files; i++ {
		tr.Register(fmt.Sprintf("f%02d", i))
	}

	var mu sync.Mutex
	fired := 0
	tr.SetUpdateCallback(func(u Update) {
		if u.BatchDone {
			mu.Lock()
			fired++
			mu.Unlock()
		}
	})

	var wg sync.WaitGroup
	for i := 0; i < files; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for _, f := range []float64{0.25, 0.5, 1.0, 1.0} {
				if _, err := tr.Update(id, f); err != nil {
					t.Errorf("Update(%s) failed: %v", id, err)
				}
			}
		}(fmt.Sprintf("f%02d", i))
	}
	wg.Wait()

	if fired != 1 {
		t.Errorf("expected batch completion once, got %d", fired)
	}
	if !tr.IsBatchComplete() {
		t.Error("batch should be complete")
	}
}

func TestTrackerSnapshotSorted(t *testing.T) {
	tr := NewTracker()
	tr.Reset(2)
	tr.Register("b")
	tr.Register("a")
	_, _ = tr.Update("b", 0.5)

	rows := tr.Snapshot()
	if len(rows) != 2 || rows[0].ID != "a" || rows[1].ID != "b" || rows[1].Fraction != 0.5 {
		t.Errorf("unexpected snapshot: %+v", rows)
	}
}

func TestTerminalBarsPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	bars := newTerminalBars(&buf, false, 2)
	if bars.IsTerminal() {
		t.Fatal("expected non-terminal mode")
	}

	bars.Add(model.FileDescriptor{Name: "a.mp3", Size: 2048})
	bars.Add(model.FileDescriptor{Name: "b.mp3", Size: 10})

	bars.Observe(Update{ID: "a.mp3", Fraction: 1, FileDone: true})
	bars.Fail("b.mp3", errors.New("boom"))
	bars.Wait()

	out := buf.String()
	for _, want := range []string{"[1/2] a.mp3 (2.0 KiB)", "[2/2] b.mp3 (10 B)", "✓ a.mp3", "✗ b.mp3: boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShortPath(t *testing.T) {
	if got := shortPath("/a/b/c/d.mp3", 2); got != "…/c/d.mp3" {
		t.Errorf("unexpected %q", got)
	}
	if got := shortPath("d.mp3", 2); got != "d.mp3" {
		t.Errorf("unexpected %q", got)
	}
}
