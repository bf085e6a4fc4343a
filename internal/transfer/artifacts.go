package transfer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ytget/ytm-offline/internal/platform"
)

// AssetsURLPrefix is where the local assets server exposes uploaded artifacts
const AssetsURLPrefix = "/assets/uploads/"

// DirStore saves artifacts as files named by a random UUID
type DirStore struct {
	dir     string
	baseURL string
}

// NewDirStore creates a store writing into dir and serving under baseURL,
// e.g. "http://127.0.0.1:5010"
func NewDirStore(dir, baseURL string) *DirStore {
	return &DirStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Save writes body to a new file and returns its id and public URL
func (s *DirStore) Save(body []byte) (string, string, error) {
	id := uuid.NewString()
	if _, err := platform.WriteFile(s.dir, id, body); err != nil {
		return "", "", err
	}
	return id, s.PublicURL(id), nil
}

// PublicURL returns the URL artifact id is served at
func (s *DirStore) PublicURL(id string) string {
	return s.baseURL + AssetsURLPrefix + id
}

// Dir returns the directory artifacts are written to
func (s *DirStore) Dir() string {
	return s.dir
}
