package model

import (
	"fmt"
	"strings"
)

// RequestKind discriminates the payload of a TransferRequest
type RequestKind string

const (
	RequestURL     RequestKind = "url"
	RequestFileSet RequestKind = "file_set"
)

// FileDescriptor describes one locally selected file
type FileDescriptor struct {
	Name string // base name, also the progress key within a batch
	Size int64  // size in bytes
	Path string // local path used to open the file for streaming
}

// TransferRequest is one logical submission made by the user
type TransferRequest struct {
	Kind      RequestKind
	Media     MediaKind
	Direction Direction
	URL       string
	Files     []FileDescriptor
}

// NewURLRequest builds a URL submission
func NewURLRequest(media MediaKind, dir Direction, url string) TransferRequest {
	return TransferRequest{
		Kind:      RequestURL,
		Media:     media,
		Direction: dir,
		URL:       url,
	}
}

// NewFileSetRequest builds a file-set submission. The descriptors are copied
// so the caller's selection cannot change the request afterwards.
func NewFileSetRequest(files []FileDescriptor) TransferRequest {
	cp := make([]FileDescriptor, len(files))
	copy(cp, files)
	return TransferRequest{
		Kind:      RequestFileSet,
		Media:     MediaAudio,
		Direction: DirectionUpload,
		Files:     cp,
	}
}

// TotalSize returns the sum of all file sizes in the request
func (r TransferRequest) TotalSize() int64 {
	var total int64
	for _, f := range r.Files {
		total += f.Size
	}
	return total
}

// GetDisplaySize returns size formatted for humans, e.g. "1.5 MiB"
func (f FileDescriptor) GetDisplaySize() string {
	const unit = 1024
	if f.Size < unit {
		return fmt.Sprintf("%d B", f.Size)
	}

	div, exp := int64(unit), 0
	for n := f.Size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(f.Size)/float64(div), "KMGTPE"[exp])
}

// GetDisplayName returns the file name without extension, or the path base
// when no name was recorded
func (f FileDescriptor) GetDisplayName() string {
	name := f.Name
	if name == "" {
		// support both / and \ separators
		parts := strings.FieldsFunc(f.Path, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) == 0 {
			return ""
		}
		name = parts[len(parts)-1]
	}

	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name
}
