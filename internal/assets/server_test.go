package assets

import (
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestHandlerServesUploads(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "uploads"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "uploads", "abc"), []byte("artifact"), 0644); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(NewServer("", dir, nil).Handler())
	defer server.Close()

	tests := []struct {
		method string
		path   string
		code   int
		body   string
	}{
		{nethttp.MethodGet, "/assets/uploads/abc", 200, "artifact"},
		{nethttp.MethodGet, "/assets/uploads/missing", 404, ""},
		{nethttp.MethodGet, "/assets/uploads/", 404, ""},
		{nethttp.MethodPost, "/assets/uploads/abc", 405, ""},
		{nethttp.MethodGet, "/other", 404, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, _ := nethttp.NewRequest(tt.method, server.URL+tt.path, nil)
			resp, err := nethttp.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.code {
				t.Errorf("expected %d, got %d", tt.code, resp.StatusCode)
			}
			if tt.body != "" && string(body) != tt.body {
				t.Errorf("expected body %q, got %q", tt.body, body)
			}
		})
	}
}

func TestStartAndShutdown(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets")
	s := NewServer("127.0.0.1:0", dir, nil)

	addr, err := s.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("assets directory not created: %v", err)
	}
	if _, err := s.Start(); err == nil {
		t.Error("second Start should fail")
	}

	resp, err := nethttp.Get("http://" + addr + "/assets/nothing")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != nethttp.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}

	if err := s.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
	if err := s.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown should be a no-op: %v", err)
	}
}
