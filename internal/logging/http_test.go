package logging

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSensitiveHeader(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"Authorization", true},
		{"authorization", true},
		{"Api-Key", true},
		{"X-API-KEY", true},
		{"Cookie", true},
		{"Content-Type", false},
		{"Accept", false},
		{"User-Agent", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := sensitiveHeader(tt.header); got != tt.want {
				t.Errorf("sensitiveHeader(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestTruncateBody(t *testing.T) {
	tests := []struct {
		name    string
		body    []byte
		max     int
		wantEnd string
	}{
		{
			name:    "small body untouched",
			body:    []byte("hello"),
			max:     100,
			wantEnd: "hello",
		},
		{
			name:    "large body marked",
			body:    []byte(strings.Repeat("a", 200)),
			max:     50,
			wantEnd: "...[truncated]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateBody(tt.body, tt.max)
			if !strings.HasSuffix(got, tt.wantEnd) {
				t.Errorf("truncateBody() = %q, should end with %q", got, tt.wantEnd)
			}
		})
	}
}

func TestRedactHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer top-secret")
	h.Set("Content-Type", "application/json")

	got := redactHeaders(h)

	if got["Authorization"] != "[REDACTED]" {
		t.Errorf("Authorization = %q, want redacted", got["Authorization"])
	}
	if got["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %q, want preserved", got["Content-Type"])
	}
}

func TestTraceTransport_RedactsCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":"ok"}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatText, Output: &buf})
	client := &http.Client{Transport: NewTraceTransport(nil, logger)}

	req, err := http.NewRequest(http.MethodPost, server.URL, strings.NewReader(`{"q":1}`))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Authorization", "Bearer top-secret")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()

	trace := buf.String()
	if strings.Contains(trace, "top-secret") {
		t.Error("trace output leaked the credential")
	}
	if !strings.Contains(trace, "[REDACTED]") {
		t.Error("trace output should carry the redaction marker")
	}
	if !strings.Contains(trace, "http request") || !strings.Contains(trace, "http response") {
		t.Errorf("expected request and response entries, got %q", trace)
	}
}

func TestTraceTransport_PreservesBodies(t *testing.T) {
	const reqBody = `{"messages":[{"role":"user","content":"hi"}]}`
	const respBody = `{"content":"hello there"}`

	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		received = string(b)
		w.Write([]byte(respBody))
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatText, Output: &buf})
	client := &http.Client{Transport: NewTraceTransport(nil, logger)}

	resp, err := client.Post(server.URL, "application/json", strings.NewReader(reqBody))
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	defer resp.Body.Close()

	if received != reqBody {
		t.Errorf("server received %q, want %q", received, reqBody)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(b) != respBody {
		t.Errorf("caller read %q, want %q", string(b), respBody)
	}
}

func TestTraceTransport_ErrorLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatText, Output: &buf})
	client := &http.Client{Transport: NewTraceTransport(nil, logger)}

	// A closed server guarantees a connection error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := client.Post(url, "application/json", strings.NewReader("{}"))
	if err == nil {
		t.Fatal("expected a transport error")
	}
	if !strings.Contains(buf.String(), "http request failed") {
		t.Errorf("expected failure entry in trace, got %q", buf.String())
	}
}
