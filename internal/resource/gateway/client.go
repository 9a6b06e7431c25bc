package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
	"github.com/ridloal/hidayah-backoffice/internal/resource/domain"
)

const (
	RequestIDHeader = "X-Request-ID"
	maxBodyBytes    = 8 << 20
)

// Envelope adalah bentuk response API: {"data": ..., "message": ...}.
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Client is the shared HTTP transport for every gateway. Calls are single-shot: no retries.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.BaseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Do sends one request and decodes a 2xx body into out (when out is non-nil).
// Transport failures become *domain.NetworkError, non-2xx statuses *domain.ServerError.
func (c *Client) Do(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			logger.Error(fmt.Sprintf("Gateway %s: marshal failed", op), err)
			return fmt.Errorf("%s: failed to marshal request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		logger.Error(fmt.Sprintf("Gateway %s: NewRequest failed", op), err)
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Error(fmt.Sprintf("Gateway %s: HTTPClient.Do failed (request %s)", op, requestID), err)
		return &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		logger.Error(fmt.Sprintf("Gateway %s: reading body failed (request %s)", op, requestID), err)
		return &domain.NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		// Body error boleh gagal di-decode, status tetap yang utama
		_ = json.Unmarshal(raw, &eb)
		msg := eb.Error
		if msg == "" {
			msg = eb.Message
		}
		logger.Error(fmt.Sprintf("Gateway %s: server returned status %d (request %s) %s", op, resp.StatusCode, requestID, msg), nil)
		return &domain.ServerError{Op: op, Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		logger.Error(fmt.Sprintf("Gateway %s: empty response body (request %s)", op, requestID), nil)
		return fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Error(fmt.Sprintf("Gateway %s: JSON decode failed (request %s)", op, requestID), err)
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}

var (
	ErrEmptyResponse = errors.New("empty response body")
	ErrMissingID     = errors.New("server returned a record without an id")
)
