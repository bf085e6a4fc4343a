package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/ytget/ytm-offline/internal/logging"
)

// Header values
const (
	ContentTypeHeader = "Content-Type"
	ContentTypeJSON   = "application/json"
	UserAgentHeader   = "User-Agent"
	UserAgent         = "ytm-offline"
)

// Response is a fully read backend response. Non-2xx statuses are
// responses, not errors.
type Response struct {
	StatusCode int
	Header     nethttp.Header
	Body       []byte
}

// ProgressFunc receives the number of body bytes handed to the network so
// far and the total body length
type ProgressFunc func(sent, total int64)

// Poster is the subset of Client the orchestrator depends on
type Poster interface {
	PostJSON(ctx context.Context, path string, payload interface{}) (*Response, error)
	PostFile(ctx context.Context, target, field, localPath string, progress ProgressFunc) (*Response, error)
	URL(path string) string
}

// Client issues requests against one backend
type Client struct {
	httpClient *retryablehttp.Client
	baseURL    string
	logger     *logging.Logger
}

// NewClient creates a backend client for baseURL, e.g. "http://127.0.0.1:5000".
// A nil httpClient selects the default pooled client.
func NewClient(baseURL string, httpClient *nethttp.Client, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Nop()
	}

	retryClient := retryablehttp.NewClient()
	if httpClient != nil {
		retryClient.HTTPClient = httpClient
	}
	// Failed transfers require an explicit resubmission by the user
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.Logger = &retryLogger{log: logger}

	return &Client{
		httpClient: retryClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		logger:     logger,
	}
}

// neverRetry stops after the first attempt and hands the response back
// untouched, whatever its status
func neverRetry(ctx context.Context, _ *nethttp.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return false, nil
}

// URL resolves an API path against the backend base URL
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// PostJSON marshals payload and POSTs it to path
func (c *Client) PostJSON(ctx context.Context, path string, payload interface{}) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, nethttp.MethodPost, c.URL(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(ContentTypeHeader, ContentTypeJSON)

	return c.do(req)
}

// PostFile streams localPath as a multipart form field to target, which may
// be an API path or an absolute upload destination URL
func (c *Client) PostFile(ctx context.Context, target, field, localPath string, progress ProgressFunc) (*Response, error) {
	env, err := newEnvelope(field, localPath)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, nethttp.MethodPost, c.URL(target), env.readerFunc(progress))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set(ContentTypeHeader, env.contentType)

	return c.do(req)
}

func (c *Client) do(req *retryablehttp.Request) (*Response, error) {
	req.Header.Set(UserAgentHeader, UserAgent)

	c.logger.Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, req.Method, req.URL.Redacted(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", ErrTransport, err)
	}

	c.logger.Debug().
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("received response")

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
