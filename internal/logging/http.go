package logging

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxTracedBody caps how many bytes of a request or response body are
// copied into a trace entry.
const maxTracedBody = 10000

// TraceTransport is an http.RoundTripper that writes one debug entry
// per request and one per response before delegating to the wrapped
// transport. Credential-bearing headers are redacted and bodies are
// truncated. devq issues a single POST per user request, so tracing is
// cheap enough to leave on for a whole verbose session.
type TraceTransport struct {
	next   http.RoundTripper
	logger *Logger
}

var _ http.RoundTripper = (*TraceTransport)(nil)

// NewTraceTransport wraps next with request/response tracing. A nil
// next falls back to http.DefaultTransport.
func NewTraceTransport(next http.RoundTripper, logger *Logger) *TraceTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &TraceTransport{next: next, logger: logger}
}

// RoundTrip implements http.RoundTripper.
func (t *TraceTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqBody := drainRequestBody(req)
	t.logger.Debug("http request", Fields{
		"method":  req.Method,
		"url":     req.URL.String(),
		"headers": redactHeaders(req.Header),
		"body":    truncateBody(reqBody, maxTracedBody),
	})

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.logger.Error("http request failed", err, Fields{
			"method": req.Method,
			"url":    req.URL.String(),
		})
		return nil, err
	}

	respBody := drainResponseBody(resp)
	t.logger.Debug("http response", Fields{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
		"body":        truncateBody(respBody, maxTracedBody),
	})
	return resp, nil
}

// drainRequestBody reads req.Body and puts an equivalent reader back so
// the request goes out unchanged.
func drainRequestBody(req *http.Request) []byte {
	if req.Body == nil {
		return nil
	}
	b, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		req.Body = io.NopCloser(bytes.NewReader(nil))
		return nil
	}
	req.Body = io.NopCloser(bytes.NewReader(b))
	return b
}

// drainResponseBody reads resp.Body and puts an equivalent reader back
// so the caller still sees the full body.
func drainResponseBody(resp *http.Response) []byte {
	if resp.Body == nil {
		return nil
	}
	b, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		resp.Body = io.NopCloser(bytes.NewReader(nil))
		return nil
	}
	resp.Body = io.NopCloser(bytes.NewReader(b))
	return b
}

// redactHeaders copies headers into a loggable map with credential
// values masked.
func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) == 0 {
			continue
		}
		if sensitiveHeader(name) {
			out[name] = "[REDACTED]"
		} else {
			out[name] = values[0]
		}
	}
	return out
}

// sensitiveHeader reports whether a header value must never reach the
// diagnostic stream.
func sensitiveHeader(name string) bool {
	switch strings.ToLower(name) {
	case "authorization", "api-key", "x-api-key", "x-auth-token", "cookie", "set-cookie":
		return true
	}
	return false
}

// truncateBody renders at most max bytes of a body.
func truncateBody(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "...[truncated]"
}
