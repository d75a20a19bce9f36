package api

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/vqtran/devq/internal/config"
)

// chatMessage is one entry of the chat-completions messages array
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	ID      string `json:"id"`
}

// chatPayload is the chat-completions request body
type chatPayload struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// assistantMessage is one entry of the assistant-completions messages
// array
type assistantMessage struct {
	Role    string `json:"role"`
	ID      string `json:"id"`
	Content string `json:"content"`
}

// assistantPayload is the assistant-completions request body. Streaming
// is pinned off; replies always arrive as one document.
type assistantPayload struct {
	Messages       []assistantMessage `json:"messages"`
	ConversationID string             `json:"conversationId"`
	TraceID        string             `json:"traceId"`
	Stream         bool               `json:"stream"`
}

// combinePrompt joins the system persona and the user request into one
// user-role body. Neither wire shape supports a distinct system role,
// and escaping must cover the combined string, so the join happens
// before marshalling.
func combinePrompt(systemText, userText string) string {
	if systemText == "" {
		return userText
	}
	return systemText + "\n\n" + userText
}

// newChatPayload marshals one chat-completions request. The message id
// must be unique per call; the backend rejects duplicates.
func newChatPayload(cfg *config.Config, systemText, userText string) ([]byte, error) {
	p := chatPayload{
		Messages: []chatMessage{{
			Role:    "user",
			Content: combinePrompt(systemText, userText),
			ID:      uuid.NewString(),
		}},
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}
	return json.Marshal(p)
}

// newAssistantPayload marshals one assistant-completions request. All
// three ids (message, conversation, trace) must be unique per call.
func newAssistantPayload(systemText, userText string) ([]byte, error) {
	p := assistantPayload{
		Messages: []assistantMessage{{
			Role:    "user",
			ID:      uuid.NewString(),
			Content: combinePrompt(systemText, userText),
		}},
		ConversationID: uuid.NewString(),
		TraceID:        uuid.NewString(),
		Stream:         false,
	}
	return json.Marshal(p)
}
