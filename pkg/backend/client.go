// Package backend talks to the GROBID superconductors service: it submits documents for
// processing and fetches stored documents and their annotations by hash.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/supercuration/supercon/config"
	"github.com/supercuration/supercon/internal"
	"github.com/supercuration/supercon/pkg/models"
)

var log = internal.GetLogger()

var (
	// ErrBusy is returned when the backend kept answering 503 after all retries.
	ErrBusy = errors.New("the backend is busy")
	// ErrUnreachable wraps transport failures.
	ErrUnreachable = errors.New("the backend cannot be reached")
)

const hashPlaceholder = "{hash}"

// StatusError is returned for any backend answer other than 200.
type StatusError struct {
	Action     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend %s returned %d", e.Action, e.StatusCode)
	}
	return fmt.Sprintf("backend %s returned %d: %s", e.Action, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusServiceUnavailable {
		return ErrBusy
	}
	return nil
}

// Client calls the actions listed in the backend url mapping.
type Client struct {
	cfg        config.BackendConfig
	httpClient *http.Client
}

// NewClient creates a client for cfg. A nil httpClient selects the retrying client.
func NewClient(cfg config.BackendConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = NewRetryableHTTPClient(cfg.RetryMax, time.Duration(cfg.TimeoutSeconds)*time.Second)
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// Endpoint resolves the URL of action: server, prefix and mapped path, with the document
// hash substituted. A query string in the mapping is returned apart, since submissions
// send it as form fields.
func (c *Client) Endpoint(action, hash string) (string, url.Values, error) {
	path, ok := c.cfg.Path(action)
	if !ok {
		return "", nil, fmt.Errorf("no url mapping for backend action %q", action)
	}
	path = strings.ReplaceAll(path, hashPlaceholder, url.PathEscape(hash))

	endpoint := strings.TrimSuffix(c.cfg.Server, "/") + c.cfg.Prefix + path
	base, rawQuery, found := strings.Cut(endpoint, "?")
	if !found {
		return endpoint, nil, nil
	}
	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", nil, fmt.Errorf("parsing query of backend action %q: %w", action, err)
	}
	return base, params, nil
}

func (c *Client) getURL(action, hash string) (string, error) {
	base, params, err := c.Endpoint(action, hash)
	if err != nil {
		return "", err
	}
	if len(params) > 0 {
		return base + "?" + params.Encode(), nil
	}
	return base, nil
}

// ProcessPDF submits a PDF and returns the annotations of the processed document.
func (c *Client) ProcessPDF(ctx context.Context, filename string, pdf []byte) (*models.Document, error) {
	endpoint, params, err := c.Endpoint(config.ActionProcessPDF, "")
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, config.ActionProcessPDF, func() (*http.Request, error) {
		payload, contentType, err := multipartBody(filename, pdf, params)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, payload)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	return decodeDocument(body)
}

// FetchAnnotations returns the annotations stored for a processed document.
func (c *Client) FetchAnnotations(ctx context.Context, hash string) (*models.Document, error) {
	body, err := c.get(ctx, config.ActionAnnotations, hash, "application/json")
	if err != nil {
		return nil, err
	}
	return decodeDocument(body)
}

// FetchPDF returns the bytes of a processed document.
func (c *Client) FetchPDF(ctx context.Context, hash string) ([]byte, error) {
	return c.get(ctx, config.ActionDocument, hash, "application/pdf")
}

// Ping checks that the backend is up.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, config.ActionPing, "", "")
	if errors.Is(err, models.ErrEmptyResponse) {
		return nil
	}
	return err
}

func (c *Client) get(ctx context.Context, action, hash, accept string) ([]byte, error) {
	u, err := c.getURL(action, hash)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, action, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		return req, nil
	})
}

// do sends the request built by newRequest. A 503 answer means the backend is busy: the
// request is sent again after the configured sleep time, a bounded number of times.
func (c *Client) do(ctx context.Context, action string, newRequest func() (*http.Request, error)) ([]byte, error) {
	busyRetryPolicy := retrypolicy.Builder[any]().
		HandleErrors(ErrBusy).
		WithDelay(time.Duration(c.cfg.SleepTime) * time.Second).
		WithMaxRetries(c.cfg.BusyRetries).
		ReturnLastFailure().
		Build()

	result, err := failsafe.Get(func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		req, err := newRequest()
		if err != nil {
			return nil, fmt.Errorf("building %s request: %w", action, err)
		}
		body, err := c.send(action, req)
		if errors.Is(err, ErrBusy) {
			log.Warnf("backend %s is busy, waiting %ds before resubmitting", action, c.cfg.SleepTime)
		}
		return body, err
	}, busyRetryPolicy)
	if err != nil {
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("backend %s: %w", action, models.ErrEmptyResponse)
	}
	return body, nil
}

func (c *Client) send(action string, req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend %s request failed: %w: %w", action, ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading backend %s response: %w", action, err)
	}

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil, fmt.Errorf("backend %s: %w", action, models.ErrEmptyResponse)
	case resp.StatusCode != http.StatusOK:
		return nil, &StatusError{Action: action, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	case len(body) == 0:
		return nil, fmt.Errorf("backend %s: %w", action, models.ErrEmptyResponse)
	}

	log.Debugf("backend %s answered with %s", action, humanize.Bytes(uint64(len(body))))
	return body, nil
}

func multipartBody(filename string, pdf []byte, params url.Values) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, values := range params {
		for _, v := range values {
			if err := w.WriteField(name, v); err != nil {
				return nil, "", err
			}
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="input"; filename=%q`, filename))
	header.Set("Content-Type", "application/pdf")
	header.Set("Expires", "0")
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(pdf); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// decodeDocument rejects a null payload as empty.
func decodeDocument(body []byte) (*models.Document, error) {
	var doc *models.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decoding annotation response: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("decoding annotation response: %w", models.ErrEmptyResponse)
	}
	return doc, nil
}
