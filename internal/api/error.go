package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ServiceUnavailableMessage replaces whatever body a 5xx response carried,
// since such bodies are unreliable or absent.
const ServiceUnavailableMessage = "Service temporarily unavailable. Please try again shortly."

// Error is a rejected API call. Message holds the server's structured
// message when one was found ("error", "detail" or "message" keys, in that
// order); Fields holds DRF-style per-field validation errors.
type Error struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// ServerFault reports whether the failure was a server-side fault rather
// than a business-rule rejection.
func (e *Error) ServerFault() bool {
	return e.Status >= 500
}

func decodeError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	// structured message keys take priority over field errors
	for _, key := range []string{"error", "detail", "message"} {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		var msg string
		if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
			apiErr.Message = msg
			break
		}
	}
	if apiErr.Message != "" {
		return apiErr
	}

	// everything else is treated as field -> messages, accepting both
	// "field": ["msg"] and "field": "msg"
	for key, raw := range payload {
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			if len(list) > 0 {
				ensureFields(apiErr)[key] = list
			}
			continue
		}
		var single string
		if err := json.Unmarshal(raw, &single); err == nil && single != "" {
			ensureFields(apiErr)[key] = []string{single}
		}
	}
	return apiErr
}

func ensureFields(e *Error) map[string][]string {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	return e.Fields
}

// Message derives the user-facing text for a failed call:
// server fault advisory > structured message > first field error > fallback.
// Transport failures (err is not an *Error) always get the fallback.
func Message(err error, fallback string) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return fallback
	}
	if apiErr.ServerFault() {
		return ServiceUnavailableMessage
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	if first := firstFieldError(apiErr); first != "" {
		return first
	}
	return fallback
}

// JoinedMessage is like Message but keeps every field error: each field's
// messages are joined with spaces, then fields are joined with "; ". The
// submission endpoint validates server-side fields the client never checks
// (uniqueness and the like), so all of them need to surface at once.
func JoinedMessage(err error, fallback string) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return fallback
	}
	if apiErr.ServerFault() {
		return ServiceUnavailableMessage
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	if len(apiErr.Fields) > 0 {
		parts := make([]string, 0, len(apiErr.Fields))
		for _, field := range sortedFields(apiErr.Fields) {
			parts = append(parts, strings.Join(apiErr.Fields[field], " "))
		}
		return strings.Join(parts, "; ")
	}
	return fallback
}

func firstFieldError(e *Error) string {
	for _, field := range sortedFields(e.Fields) {
		if len(e.Fields[field]) > 0 {
			return e.Fields[field][0]
		}
	}
	return ""
}

// sortedFields keeps the derived message deterministic across runs.
func sortedFields(fields map[string][]string) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
