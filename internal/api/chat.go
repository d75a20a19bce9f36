package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vqtran/devq/internal/config"
)

// ChatClient sends requests in the generic chat-completions shape:
// a messages array plus temperature and max_tokens, posted to
// <endpoint>/chat/completions.
type ChatClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewChatClient creates a chat-completions client
func NewChatClient(cfg *config.Config) *ChatClient {
	return &ChatClient{
		httpClient: newHTTPClient(cfg),
		config:     cfg,
	}
}

// URL returns the chat completions endpoint
func (c *ChatClient) URL() string {
	return c.config.ChatURL()
}

// Complete sends one prompt pair and decodes the reply
func (c *ChatClient) Complete(ctx context.Context, systemText, userText string) (*Result, error) {
	payload, err := newChatPayload(c.config, systemText, userText)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	status, body, err := postJSON(ctx, c.httpClient, c.URL(), c.config.APIKey, payload)
	if err != nil {
		return nil, err
	}

	return decodeResult(status, body)
}
