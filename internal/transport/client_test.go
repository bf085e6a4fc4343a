package transport

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestPostJSON(t *testing.T) {
	var gotPath, gotType string
	var gotBody map[string]string

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get(ContentTypeHeader)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)
	resp, err := client.PostJSON(context.Background(), "/api/global/uploadAudio", map[string]string{"audio_url": "http://y/1"})
	if err != nil {
		t.Fatalf("PostJSON failed: %v", err)
	}

	if resp.StatusCode != nethttp.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if string(resp.Body) != "ok" {
		t.Errorf("Expected body 'ok', got '%s'", resp.Body)
	}
	if gotPath != "/api/global/uploadAudio" {
		t.Errorf("Expected path /api/global/uploadAudio, got %s", gotPath)
	}
	if gotType != ContentTypeJSON {
		t.Errorf("Expected content type %s, got %s", ContentTypeJSON, gotType)
	}
	if gotBody["audio_url"] != "http://y/1" {
		t.Errorf("Expected audio_url in body, got %v", gotBody)
	}
}

func TestPostJSON_ErrorStatusIsNotRetried(t *testing.T) {
	var mu sync.Mutex
	calls := 0

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(nethttp.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)
	resp, err := client.PostJSON(context.Background(), "/api/global/uploadPlaylist", map[string]string{})
	if err != nil {
		t.Fatalf("Expected a response for 503, got error %v", err)
	}
	if resp.StatusCode != nethttp.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", resp.StatusCode)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("Expected exactly 1 call, got %d", calls)
	}
}

func TestPostJSON_TransportFailure(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewClient(baseURL, nil, nil)
	_, err := client.PostJSON(context.Background(), "/api/global/uploadAudio", map[string]string{})
	if err == nil {
		t.Fatal("Expected error for closed server, got nil")
	}
	if !IsTransportFailure(err) {
		t.Errorf("Expected transport failure, got %v", err)
	}
}

func TestPostFile_StreamsMultipartWithProgress(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "track.mp3")
	content := strings.Repeat("a", 64*1024)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	var gotName, gotContent string
	var gotLength int64
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotLength = r.ContentLength
		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(nethttp.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		gotName = header.Filename
		gotContent = string(data)
		w.WriteHeader(nethttp.StatusOK)
	}))
	defer server.Close()

	var mu sync.Mutex
	var lastSent, lastTotal int64
	ticks := 0
	progress := func(sent, total int64) {
		mu.Lock()
		defer mu.Unlock()
		if sent < lastSent {
			t.Errorf("Progress went backwards: %d after %d", sent, lastSent)
		}
		lastSent, lastTotal = sent, total
		ticks++
	}

	client := NewClient(server.URL, nil, nil)
	resp, err := client.PostFile(context.Background(), "/api/global/uploadReceivedAudio", "file", path, progress)
	if err != nil {
		t.Fatalf("PostFile failed: %v", err)
	}
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	if gotName != "track.mp3" {
		t.Errorf("Expected filename track.mp3, got %s", gotName)
	}
	if gotContent != content {
		t.Errorf("Uploaded content mismatch: got %d bytes", len(gotContent))
	}

	mu.Lock()
	defer mu.Unlock()
	if ticks == 0 {
		t.Fatal("Expected progress ticks, got none")
	}
	if lastSent != lastTotal {
		t.Errorf("Expected final progress %d/%d to be complete", lastSent, lastTotal)
	}
	if gotLength != lastTotal {
		t.Errorf("Expected Content-Length %d, got %d", lastTotal, gotLength)
	}
}

func TestPostFile_MissingFile(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil, nil)
	_, err := client.PostFile(context.Background(), "/upload", "file", filepath.Join(t.TempDir(), "absent.mp3"), nil)
	if err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
}

func TestURL(t *testing.T) {
	client := NewClient("http://backend:5000/", nil, nil)

	tests := []struct {
		path     string
		expected string
	}{
		{"/api/global/uploadAudio", "http://backend:5000/api/global/uploadAudio"},
		{"api/global/uploadAudio", "http://backend:5000/api/global/uploadAudio"},
		{"https://elsewhere/upload", "https://elsewhere/upload"},
	}

	for _, test := range tests {
		if result := client.URL(test.path); result != test.expected {
			t.Errorf("URL(%s) = %s, expected %s", test.path, result, test.expected)
		}
	}
}

func TestUploadDestination(t *testing.T) {
	client := NewClient("http://backend:5000", nil, nil)
	dest := NewBackendDestinations(client)
	fixed := time.Unix(1_700_000_000, 0)
	dest.now = func() time.Time { return fixed }

	raw, err := dest.UploadDestination("my song.mp3", 600*time.Second)
	if err != nil {
		t.Fatalf("UploadDestination failed: %v", err)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("Destination is not a URL: %v", err)
	}
	if u.Path != "/api/global/uploadReceivedAudio" {
		t.Errorf("Unexpected destination path %s", u.Path)
	}
	if u.Query().Get(QueryName) != "my song.mp3" {
		t.Errorf("Unexpected name %s", u.Query().Get(QueryName))
	}
	if u.Query().Get(QueryExpires) != "1700000600" {
		t.Errorf("Unexpected expiry %s", u.Query().Get(QueryExpires))
	}
}
