package transport

import (
	"net/url"
	"strconv"
	"time"

	"github.com/ytget/ytm-offline/internal/model"
)

// Query parameters on an upload destination
const (
	QueryName    = "name"
	QueryExpires = "expires"
)

// BackendDestinations hands out time-bounded upload URLs on the backend's
// received-audio endpoint
type BackendDestinations struct {
	client *Client
	now    func() time.Time
}

// NewBackendDestinations creates a destination provider for client
func NewBackendDestinations(client *Client) *BackendDestinations {
	return &BackendDestinations{client: client, now: time.Now}
}

// UploadDestination returns the URL a file named fileName may be streamed
// to until ttl elapses
func (d *BackendDestinations) UploadDestination(fileName string, ttl time.Duration) (string, error) {
	u, err := url.Parse(d.client.URL(model.PathUploadReceivedAudio))
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set(QueryName, fileName)
	q.Set(QueryExpires, strconv.FormatInt(d.now().Add(ttl).Unix(), 10))
	u.RawQuery = q.Encode()

	return u.String(), nil
}
