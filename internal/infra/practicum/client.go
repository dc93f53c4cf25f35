// internal/infra/practicum/client.go
package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// DefaultEndpoint is the homework status API of Yandex Practicum.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

const maxResponseBodySize = 1 << 20 // 1MB

// Custom errors for the API client
var ErrTransport = fmt.Errorf("homework API is unreachable")
var ErrHTTPStatus = fmt.Errorf("homework API returned non-OK status")

// StatusError carries the HTTP status of a non-OK answer. It matches ErrHTTPStatus with errors.Is.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: endpoint %s responded with %d %s", ErrHTTPStatus, e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *StatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// Client queries the homework status endpoint on behalf of a single user.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	timeout    time.Duration
	logger     logrus.FieldLogger
}

func NewClient(endpoint, token string, timeout time.Duration, logger logrus.FieldLogger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: &http.Client{}, // timeouts are applied per request via context
		endpoint:   endpoint,
		token:      token,
		timeout:    timeout,
		logger:     logger,
	}
}

// GetStatuses requests homework updates newer than fromDate (Unix seconds)
// and returns the validated response.
func (c *Client) GetStatuses(ctx context.Context, fromDate int64) (*homework.Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	q := req.URL.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	c.logger.WithFields(logrus.Fields{"endpoint": c.endpoint, "from_date": fromDate}).Debug("Requesting homework statuses")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Homework API responded")

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Endpoint: c.endpoint, StatusCode: resp.StatusCode}
	}

	body, err := readBody(resp.Body)
	if err != nil {
		return nil, err
	}
	payload, err := decodeBody(body)
	if err != nil {
		return nil, err
	}
	return homework.ValidateResponse(payload)
}

// readBody reads the whole answer. A connection that drops mid-body is a
// transport failure, not a malformed answer.
func readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxResponseBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrTransport, err)
	}
	if len(body) > maxResponseBodySize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", homework.ErrShape, maxResponseBodySize)
	}
	return body, nil
}

// decodeBody expects exactly one JSON value, optionally surrounded by whitespace.
func decodeBody(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: body is not valid JSON: %v", homework.ErrShape, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: body has trailing data after the JSON value", homework.ErrShape)
	}
	return payload, nil
}
