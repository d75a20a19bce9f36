package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vqtran/devq/internal/config"
)

// AssistantClient sends requests in the assistant-completions shape:
// a messages array plus conversation and trace ids, posted to
// <endpoint>/assistants/<assistant-id>/completions. Requires an
// assistant id.
type AssistantClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewAssistantClient creates an assistant-completions client
func NewAssistantClient(cfg *config.Config) *AssistantClient {
	return &AssistantClient{
		httpClient: newHTTPClient(cfg),
		config:     cfg,
	}
}

// URL returns the assistant completions endpoint
func (c *AssistantClient) URL() string {
	return c.config.AssistantURL()
}

// Complete sends one prompt pair and decodes the reply
func (c *AssistantClient) Complete(ctx context.Context, systemText, userText string) (*Result, error) {
	payload, err := newAssistantPayload(systemText, userText)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	status, body, err := postJSON(ctx, c.httpClient, c.URL(), c.config.APIKey, payload)
	if err != nil {
		return nil, err
	}

	return decodeResult(status, body)
}
