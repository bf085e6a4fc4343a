package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ytget/ytm-offline/internal/dialog"
	"github.com/ytget/ytm-offline/internal/model"
)

// backend records request paths and answers with status for every path
type backend struct {
	mu     sync.Mutex
	paths  []string
	status map[string]int
	body   []byte
}

func newBackend(t *testing.T, status map[string]int) (*backend, string, string) {
	t.Helper()
	b := &backend{status: status}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.paths = append(b.paths, r.URL.Path)
		code, ok := b.status[r.URL.Path]
		if name := r.URL.Query().Get("name"); name != "" {
			if c, found := b.status[name]; found {
				code, ok = c, true
			}
		}
		body := b.body
		b.mu.Unlock()

		if !ok {
			code = http.StatusOK
		}
		w.WriteHeader(code)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	return b, u.Hostname(), u.Port()
}

func (b *backend) requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.paths...)
}

// isolate keeps user configuration and legacy variables out of a test
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BACKEND_HOST", "")
	t.Setenv("BACKEND_PORT", "")
	assetsDir := t.TempDir()
	t.Setenv("YTM_ASSETS_DIR", assetsDir)
	return assetsDir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd("test")
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

func TestSubmitAudioUpload(t *testing.T) {
	isolate(t)
	b, host, port := newBackend(t, nil)

	out, err := run(t, "", "submit", "--backend-host", host, "--backend-port", port, "--kind", "audio", "http://y/1")
	if err != nil {
		t.Fatalf("submit error = %v", err)
	}
	if !strings.Contains(out, "[Success] File uploaded!") {
		t.Errorf("output = %q", out)
	}
	if got := b.requests(); len(got) != 1 || got[0] != model.PathUploadAudio {
		t.Errorf("requests = %v", got)
	}
}

func TestSubmitUnauthorizedFails(t *testing.T) {
	isolate(t)
	_, host, port := newBackend(t, map[string]int{model.PathUploadPlaylist: http.StatusUnauthorized})

	out, err := run(t, "", "submit", "--backend-host", host, "--backend-port", port, "--kind", "playlist", "http://y/list")
	if err == nil {
		t.Fatal("expected an error for 401")
	}
	if !strings.Contains(out, "[Unauthorized]") {
		t.Errorf("output = %q", out)
	}
}

func TestSubmitPlaylistDownloadSavesArtifact(t *testing.T) {
	assetsDir := isolate(t)
	b, host, port := newBackend(t, nil)
	b.body = []byte("zip bytes")

	out, err := run(t, "", "submit", "--backend-host", host, "--backend-port", port,
		"--kind", "playlist", "--direction", "download", "http://y/list")
	if err != nil {
		t.Fatalf("submit error = %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(assetsDir, "uploads"))
	if err != nil {
		t.Fatalf("uploads dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("uploads has %d entries, want 1", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(assetsDir, "uploads", entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "zip bytes" {
		t.Errorf("artifact = %q", data)
	}
	if !strings.Contains(out, "Saved to ") || !strings.Contains(out, "/assets/uploads/"+entries[0].Name()) {
		t.Errorf("output = %q", out)
	}
}

func TestSubmitRejectsBadFlags(t *testing.T) {
	isolate(t)
	tests := [][]string{
		{"submit", "--kind", "video", "http://y/1"},
		{"submit", "--direction", "sideways", "http://y/1"},
		{"submit"},
		{"submit", "--backend-port", "0", "http://y/1"},
	}
	for _, args := range tests {
		if _, err := run(t, "", args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func writeFiles(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("audio "+name), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	return paths
}

func TestUploadFiles(t *testing.T) {
	isolate(t)
	b, host, port := newBackend(t, nil)
	paths := writeFiles(t, "a.mp3", "b.mp3")

	args := append([]string{"upload", "--backend-host", host, "--backend-port", port}, paths...)
	if _, err := run(t, "", args...); err != nil {
		t.Fatalf("upload error = %v", err)
	}
	if got := b.requests(); len(got) != 2 {
		t.Errorf("requests = %v, want 2", got)
	}
}

func TestUploadPartialFailure(t *testing.T) {
	isolate(t)
	_, host, port := newBackend(t, map[string]int{"bad.mp3": http.StatusUnauthorized})
	paths := writeFiles(t, "good.mp3", "bad.mp3")

	args := append([]string{"upload", "--backend-host", host, "--backend-port", port}, paths...)
	_, err := run(t, "", args...)
	if err == nil {
		t.Fatal("expected an error when a file is rejected")
	}
	if !strings.Contains(err.Error(), "1 of 2 files uploaded") {
		t.Errorf("error = %v", err)
	}
}

func TestUploadMissingFile(t *testing.T) {
	isolate(t)
	if _, err := run(t, "", "upload", filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestConsolePresenterChoice(t *testing.T) {
	tests := []struct {
		name      string
		in        *strings.Reader
		assumeYes bool
		want      bool
	}{
		{"yes", strings.NewReader("y\n"), false, true},
		{"full word", strings.NewReader("YES\n"), false, true},
		{"no", strings.NewReader("n\n"), false, false},
		{"empty line", strings.NewReader("\n"), false, false},
		{"eof", strings.NewReader(""), false, false},
		{"no input", nil, false, false},
		{"assume yes", nil, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			var p *ConsolePresenter
			if tt.in == nil {
				p = NewConsolePresenter(&out, nil, tt.assumeYes)
			} else {
				p = NewConsolePresenter(&out, tt.in, tt.assumeYes)
			}
			c := dialog.NewController(p)
			p.SetResponder(c)

			answers := make(chan bool, 2)
			c.ShowModalChoice("Download ready", "Saved as x. Open it?",
				func() { answers <- true },
				func() { answers <- false })
			p.Wait()

			if got := <-answers; got != tt.want {
				t.Errorf("answer = %v, want %v", got, tt.want)
			}
			if !strings.Contains(out.String(), "[Download ready] Saved as x. Open it?") {
				t.Errorf("output = %q", out.String())
			}
		})
	}
}

func TestConsoleLauncher(t *testing.T) {
	var out bytes.Buffer
	l := consoleLauncher(&out, "/data/uploads", false)
	if err := l.Launch("http://127.0.0.1:5010/assets/uploads/abc"); err != nil {
		t.Fatalf("Launch error = %v", err)
	}
	want := filepath.Join("/data/uploads", "abc")
	if !strings.Contains(out.String(), want) {
		t.Errorf("output = %q, want path %s", out.String(), want)
	}
}
