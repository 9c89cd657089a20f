package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	requestTimeout = 10 * time.Second
	maxRetries     = 3
	retryBase      = time.Second
)

var (
	ErrNotFound    = errors.New("resource not found")
	ErrUnavailable = errors.New("downstream service unavailable")
)

// StatusError carries a downstream 4xx/5xx with its decoded error body.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("downstream returned %d: %s", e.Status, e.Message)
}

// httpClient is the shared doer for all inter-service calls. Transport
// errors get bounded retries with exponential backoff; HTTP status errors
// are returned to the caller untouched.
type httpClient struct {
	baseURL string
	client  *http.Client
}

func newHTTPClient(baseURL string) httpClient {
	return httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (c httpClient) doJSON(ctx context.Context, method, path, bearer string, reqBody, out interface{}) error {
	var payload []byte
	if reqBody != nil {
		var err error
		payload, err = json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := retryBase << (attempt - 1)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}

		res, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		return decode(res, out)
	}

	return fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func decode(res *http.Response, out interface{}) error {
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var envelope struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &envelope)

		msg := envelope.Error
		if msg == "" {
			msg = envelope.Message
		}

		return &StatusError{Status: res.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	return nil
}
