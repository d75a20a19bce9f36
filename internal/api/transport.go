package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// TransportError wraps a network-level failure (connection refused,
// DNS, TLS) so callers can tell it apart from an HTTP error status.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError represents a non-2xx reply with its decoded message
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// postJSON performs the single POST carrying payload to url and returns
// the status code and raw body. There is no retry; a failed request is
// reported once and the user re-issues the command.
func postJSON(ctx context.Context, httpClient *http.Client, url, apiKey string, payload []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Err: err}
	}

	return resp.StatusCode, body, nil
}
