package api

import (
	"context"
	"net/http"

	"github.com/vqtran/devq/internal/config"
	"github.com/vqtran/devq/internal/constants"
	"github.com/vqtran/devq/internal/logging"
)

// Result is one decoded reply.
type Result struct {
	// Text is the reply content, or a sentinel when NoContent is set
	Text string
	// NoContent reports that the body carried no recognizable content
	// field; RawBody then holds the undecoded reply for diagnostics
	NoContent bool
	RawBody   string
}

// Client sends one completion request and decodes the reply.
// ChatClient and AssistantClient implement it, one per wire shape,
// allowing transparent switching between backends.
type Client interface {
	// Complete sends a single prompt pair (non-streaming, no retry)
	Complete(ctx context.Context, systemText, userText string) (*Result, error)

	// URL returns the resolved completion endpoint for this client
	URL() string
}

// Ensure both clients implement the Client interface
var _ Client = (*ChatClient)(nil)
var _ Client = (*AssistantClient)(nil)

// NewClient creates a client for the configured wire shape. With no
// explicit selection, a configured assistant id picks the assistant
// shape and everything else falls back to chat.
func NewClient(cfg *config.Config) (Client, error) {
	switch cfg.Variant() {
	case config.APIAssistant:
		if cfg.AssistantID == "" {
			return nil, config.ErrAssistantIDNotSet
		}
		return NewAssistantClient(cfg), nil
	case config.APIChat:
		return NewChatClient(cfg), nil
	default:
		return nil, config.ErrInvalidAPI
	}
}

// newHTTPClient builds the HTTP client shared by both wire shapes,
// wiring request/response tracing when verbose mode is on. The default
// logger is already at debug level by the time this runs.
func newHTTPClient(cfg *config.Config) *http.Client {
	var transport http.RoundTripper = http.DefaultTransport

	if cfg.Verbose {
		transport = logging.NewTraceTransport(transport, logging.DefaultLogger)
	}

	return &http.Client{
		Timeout:   constants.DefaultAPITimeout,
		Transport: transport,
	}
}
