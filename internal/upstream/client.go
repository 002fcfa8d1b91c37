package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cms-admin/internal/model"
)

// NetworkErrorMessage is the only error surfaced with status 0, which
// signals a client-side transport failure rather than an upstream one.
const NetworkErrorMessage = "Network error. Please check your connection and try again."

// TokenFunc yields the bearer token for a request, or empty when the
// caller has no session. It is consulted fresh on every call.
type TokenFunc func(ctx context.Context) string

// Client forwards logical requests to the upstream CMS API and folds every
// outcome into a model.Envelope. It never mutates session state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenFunc
}

func NewClient(baseURL string, timeout time.Duration, token TokenFunc) *Client {
	if token == nil {
		token = func(context.Context) string { return "" }
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		token:      token,
	}
}

// Do executes one request. Failures never surface as errors: an upstream
// failure becomes {ok:false, status, error} via the normalizer and a
// transport failure becomes {ok:false, status:0}.
func (c *Client) Do(ctx context.Context, req model.Request) model.Envelope {
	target := c.baseURL + req.URL
	if query := encodeParams(req.Params); query != "" {
		separator := "?"
		if strings.Contains(target, "?") {
			separator = "&"
		}
		target += separator + query
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			slog.Error("request body marshal failed", "url", req.URL, "error", err)
			return transportFailure()
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return transportFailure()
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if token := c.token(ctx); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		slog.Error("upstream request failed", "method", req.Method, "url", req.URL, "error", err)
		return transportFailure()
	}
	defer resp.Body.Close()

	return c.envelope(resp, req.Method, req.URL)
}

// Upload forwards a single file to the upstream files endpoint as
// multipart form data under the field name "file".
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) model.Envelope {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return transportFailure()
	}
	if _, err := io.Copy(part, content); err != nil {
		return transportFailure()
	}
	if err := writer.Close(); err != nil {
		return transportFailure()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files/", buf)
	if err != nil {
		return transportFailure()
	}

	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	if token := c.token(ctx); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		slog.Error("upload request failed", "filename", filename, "error", err)
		return transportFailure()
	}
	defer resp.Body.Close()

	return c.envelope(resp, http.MethodPost, "/files/")
}

func (c *Client) envelope(resp *http.Response, method string, logicalURL string) model.Envelope {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := NormalizeError(resp.StatusCode, raw)
		slog.Warn("upstream error", "method", method, "url", logicalURL, "status", resp.StatusCode, "error", message)
		return model.Envelope{OK: false, Status: resp.StatusCode, Error: message}
	}

	return model.Envelope{
		OK:     true,
		Status: resp.StatusCode,
		Data:   successBody(resp.Header.Get("Content-Type"), raw),
	}
}

// successBody passes JSON bodies through untouched and wraps anything
// else as {"message": text}.
func successBody(contentType string, raw []byte) json.RawMessage {
	if strings.Contains(contentType, "application/json") && json.Valid(raw) {
		return json.RawMessage(raw)
	}

	wrapped, err := json.Marshal(map[string]string{"message": string(raw)})
	if err != nil {
		return json.RawMessage(`{"message":""}`)
	}

	return wrapped
}

// encodeParams builds the query string, omitting nil values and
// stringifying everything else.
func encodeParams(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}

	values := url.Values{}
	for key, value := range params {
		if value == nil {
			continue
		}
		values.Set(key, fmt.Sprintf("%v", value))
	}

	return values.Encode()
}

func transportFailure() model.Envelope {
	return model.Envelope{OK: false, Status: 0, Error: NetworkErrorMessage}
}
