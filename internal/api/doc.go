// Package api implements the request/response pipeline against remote
// completion endpoints.
//
// # Architecture
//
// The package is organized around one request flow:
//
//   - client.go: Client interface, factory (NewClient), shared HTTP client
//   - payload.go: wire payload construction for both supported shapes,
//     including per-call unique ids
//   - transport.go: the single POST, TransportError and APIError types
//   - decode.go: reply decoding with the content/response field ladder
//     and the error-message ladder
//   - chat.go: client for the chat-completions shape
//   - assistant.go: client for the assistant-completions shape
//
// # Wire shapes
//
// Two request shapes are supported, selected by configuration:
//
//	chat       {"messages":[{"role","content","id"}],"temperature","max_tokens"}
//	assistant  {"messages":[{"role","id","content"}],"conversationId","traceId","stream":false}
//
// Both carry exactly one user-role message holding the combined system
// and user text. Requests are sent once: there is no retry, streaming,
// or redirect handling beyond http.Client defaults.
//
// # Error model
//
// Network failures surface as *TransportError, HTTP error statuses as
// *APIError with a best-effort decoded message. A successful reply with
// no recognizable content field is not an error; the Result carries a
// sentinel text plus the raw body.
//
// # Usage
//
//	client, err := api.NewClient(cfg)
//	if err != nil {
//	    // handle error
//	}
//	result, err := client.Complete(ctx, systemText, userText)
package api
