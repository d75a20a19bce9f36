package api

import (
	"github.com/tidwall/gjson"
)

// NoContentSentinel is the reply text used when a successful response
// carries no recognizable content field.
const NoContentSentinel = "(no response found in API reply)"

// decodeResult turns a status code and raw body into a Result or error.
// A 2xx body with no recognizable field is not a failure; the sentinel
// text and raw body are returned so the caller can surface both.
func decodeResult(statusCode int, body []byte) (*Result, error) {
	if statusCode < 200 || statusCode > 299 {
		return nil, &APIError{
			StatusCode: statusCode,
			Message:    extractError(body),
		}
	}

	if text, ok := extractContent(body); ok {
		return &Result{Text: text}, nil
	}

	return &Result{
		Text:      NoContentSentinel,
		NoContent: true,
		RawBody:   string(body),
	}, nil
}

// extractContent searches the body, depth first in document order, for
// the first string field named "content", then falls back to the first
// named "response". The two-step ladder tolerates the range of shapes
// compatible backends return; values come back unescaped.
func extractContent(body []byte) (string, bool) {
	root := gjson.ParseBytes(body)
	for _, key := range []string{"content", "response"} {
		if v, ok := findString(root, key); ok {
			return v, true
		}
	}
	return "", false
}

// findString walks res depth first in document order and returns the
// first string value held by an object field named key.
func findString(res gjson.Result, key string) (string, bool) {
	var out string
	var found bool

	var walk func(r gjson.Result)
	walk = func(r gjson.Result) {
		if found {
			return
		}
		isObject := r.IsObject()
		r.ForEach(func(k, v gjson.Result) bool {
			if isObject && k.String() == key && v.Type == gjson.String {
				out = v.String()
				found = true
				return false
			}
			if v.IsObject() || v.IsArray() {
				walk(v)
			}
			return !found
		})
	}
	walk(res)

	return out, found
}

// extractError decodes the best-effort error message from a non-2xx
// body: "error.message", then a top-level "error" string, then a
// top-level "message". Empty, unknown, and non-JSON shapes fall through
// to a generic message. The ladder exists because error shapes differ
// across otherwise compatible backends.
func extractError(body []byte) string {
	for _, path := range []string{"error.message", "error", "message"} {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return "unknown API error"
}
