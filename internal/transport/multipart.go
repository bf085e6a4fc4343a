package transport

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-retryablehttp"
)

// envelope is the multipart framing around one file. The framing is built
// once so the body length is known before streaming starts.
type envelope struct {
	path        string
	prefix      []byte
	trailer     []byte
	contentType string
}

func newEnvelope(field, localPath string) (*envelope, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if _, err := w.CreateFormFile(field, filepath.Base(localPath)); err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	prefix := append([]byte(nil), buf.Bytes()...)

	buf.Reset()
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}
	trailer := append([]byte(nil), buf.Bytes()...)

	return &envelope{
		path:        localPath,
		prefix:      prefix,
		trailer:     trailer,
		contentType: w.FormDataContentType(),
	}, nil
}

// readerFunc opens a fresh body for every call. retryablehttp calls it once
// to learn the length and once per attempt.
func (e *envelope) readerFunc(progress ProgressFunc) retryablehttp.ReaderFunc {
	return func() (io.Reader, error) {
		f, err := os.Open(e.path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", e.path, err)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to stat %s: %w", e.path, err)
		}

		total := int64(len(e.prefix)) + info.Size() + int64(len(e.trailer))
		return &streamBody{
			r:        io.MultiReader(bytes.NewReader(e.prefix), f, bytes.NewReader(e.trailer)),
			file:     f,
			total:    total,
			progress: progress,
		}, nil
	}
}

// streamBody counts bytes as the HTTP transport consumes them
type streamBody struct {
	r        io.Reader
	file     *os.File
	sent     int64
	total    int64
	progress ProgressFunc
}

func (b *streamBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if n > 0 {
		b.sent += int64(n)
		if b.progress != nil {
			b.progress(b.sent, b.total)
		}
	}
	return n, err
}

// Len lets retryablehttp set Content-Length
func (b *streamBody) Len() int {
	return int(b.total)
}

// Close releases the file handle
func (b *streamBody) Close() error {
	return b.file.Close()
}
