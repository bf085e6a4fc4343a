package model

import "fmt"

// MediaKind identifies what a URL submission points at
type MediaKind string

const (
	MediaAudio    MediaKind = "audio"
	MediaPlaylist MediaKind = "playlist"
)

// Direction tells the backend whether to ingest a URL or hand back its artifact
type Direction string

const (
	DirectionUpload   Direction = "upload"
	DirectionDownload Direction = "download"
)

// API paths on the backend
const (
	APIPrefix               = "/api/global/"
	PathUploadAudio         = APIPrefix + "uploadAudio"
	PathUploadPlaylist      = APIPrefix + "uploadPlaylist"
	PathDownloadAudio       = APIPrefix + "downloadAudio"
	PathDownloadPlaylist    = APIPrefix + "downloadPlaylist"
	PathUploadReceivedAudio = APIPrefix + "uploadReceivedAudio"
	MultipartFileField      = "file"
	urlFieldSuffix          = "_url"
)

// String returns the string representation of MediaKind
func (k MediaKind) String() string {
	return string(k)
}

// IsValid reports whether k is one of the supported kinds
func (k MediaKind) IsValid() bool {
	return k == MediaAudio || k == MediaPlaylist
}

// URLField returns the JSON field name carrying the URL, e.g. "audio_url"
func (k MediaKind) URLField() string {
	return string(k) + urlFieldSuffix
}

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// IsValid reports whether d is one of the supported directions
func (d Direction) IsValid() bool {
	return d == DirectionUpload || d == DirectionDownload
}

// Endpoint returns the backend path for a kind/direction pair
func Endpoint(kind MediaKind, dir Direction) (string, error) {
	switch {
	case kind == MediaAudio && dir == DirectionUpload:
		return PathUploadAudio, nil
	case kind == MediaPlaylist && dir == DirectionUpload:
		return PathUploadPlaylist, nil
	case kind == MediaAudio && dir == DirectionDownload:
		return PathDownloadAudio, nil
	case kind == MediaPlaylist && dir == DirectionDownload:
		return PathDownloadPlaylist, nil
	default:
		return "", fmt.Errorf("unsupported submission %q/%q", kind, dir)
	}
}

// ParseMediaKind converts a flag or config value into a MediaKind
func ParseMediaKind(s string) (MediaKind, error) {
	k := MediaKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("unknown media kind: %s", s)
	}
	return k, nil
}

// ParseDirection converts a flag or config value into a Direction
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.IsValid() {
		return "", fmt.Errorf("unknown direction: %s", s)
	}
	return d, nil
}
