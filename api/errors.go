package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ErrorKind distinguishes the handled failure modes of an API call.
type ErrorKind int

const (
	// KindAPI is a non-2xx response with a message derived from the body.
	KindAPI ErrorKind = iota
	// KindTransport is a host-level network failure (no response at all).
	KindTransport
	// KindEmpty is a 2xx response with no usable payload.
	KindEmpty
	// KindUnknown is a response that is neither data nor a recognized error.
	KindUnknown
)

// CallError is the failure arm of an API call outcome. A nil *CallError
// means the call succeeded; otherwise Kind says which taxonomy bucket the
// failure belongs to and Message is ready to show the user.
type CallError struct {
	Kind    ErrorKind
	Message string
}

func (e *CallError) Error() string { return e.Message }

func apiError(msg string) *CallError       { return &CallError{Kind: KindAPI, Message: msg} }
func transportError(msg string) *CallError { return &CallError{Kind: KindTransport, Message: msg} }
func emptyError(msg string) *CallError     { return &CallError{Kind: KindEmpty, Message: msg} }
func unknownError() *CallError {
	return &CallError{Kind: KindUnknown, Message: "an unknown error occurred"}
}

// messageExtractor probes an error body for one known shape, returning the
// embedded message if the shape matches.
type messageExtractor func(body []byte) (string, bool)

// messageExtractors are tried in order; the first match wins. The shapes
// cover the API's observed error formats: {"detail": "..."},
// [{"text": ["..."]}], and {"<field>": ["..."]}.
var messageExtractors = []messageExtractor{
	extractDetail,
	extractNestedTextArray,
	extractFirstKeyArray,
}

// deriveErrorMessage extracts a human-readable message from an error
// response body, falling back to a generic message when no known shape
// matches.
func deriveErrorMessage(body []byte) string {
	for _, extract := range messageExtractors {
		if msg, ok := extract(body); ok {
			return msg
		}
	}
	return "the request failed with no error message"
}

func extractDetail(body []byte) (string, bool) {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Detail == "" {
		return "", false
	}
	return payload.Detail, true
}

func extractNestedTextArray(body []byte) (string, bool) {
	var payload []struct {
		Text []string `json:"text"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}
	if len(payload) == 0 || len(payload[0].Text) == 0 || payload[0].Text[0] == "" {
		return "", false
	}
	return payload[0].Text[0], true
}

// extractFirstKeyArray handles validation errors keyed by field name. The
// first key in document order is probed for an array whose first element is
// the message.
func extractFirstKeyArray(body []byte) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return "", false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", false
	}

	tok, err = dec.Token()
	if err != nil {
		return "", false
	}
	if _, ok := tok.(string); !ok {
		return "", false
	}

	var values []any
	if err := dec.Decode(&values); err != nil || len(values) == 0 {
		return "", false
	}
	switch v := values[0].(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	default:
		return fmt.Sprintf("%v", v), true
	}
}
