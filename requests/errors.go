// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// Sentinel kinds for the failure classes a request can produce.
//
// Concrete *PixivError values carry the human-readable message and the
// underlying cause; callers classify with errors.Is against these.
var (
	// ErrNetwork covers connectivity failures and error statuses without a
	// more specific kind.
	ErrNetwork = errors.New("network error")

	// ErrBadRequest classifies HTTP 400 responses. A bad request is also a
	// network error, so errors.Is(err, ErrNetwork) holds for it.
	ErrBadRequest = fmt.Errorf("bad request: %w", ErrNetwork)

	// ErrForbidden classifies HTTP 403 responses.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound classifies HTTP 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrInvalidResponse reports a response body that could not be parsed
	// as JSON.
	ErrInvalidResponse = errors.New("invalid server response")

	// ErrNotAuthenticated reports an authenticated operation attempted
	// without credentials.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAuthentication reports a failed token refresh or code exchange.
	ErrAuthentication = errors.New("authentication failed")

	// ErrUnsupportedInput reports a value the file loader cannot handle.
	ErrUnsupportedInput = errors.New("unsupported file input type")
)

// PixivError pairs a human-readable message with the sentinel kind it
// belongs to and an optional underlying cause.
type PixivError struct {
	Message string
	Kind    error
	Err     error
}

func (e *PixivError) Error() string {
	return e.Message
}

// Unwrap exposes both the classification sentinel and the cause, so that
// errors.Is matches the kind and errors.As still reaches the cause.
func (e *PixivError) Unwrap() []error {
	unwrapped := make([]error, 0, 2)

	if e.Kind != nil {
		unwrapped = append(unwrapped, e.Kind)
	}

	if e.Err != nil {
		unwrapped = append(unwrapped, e.Err)
	}

	return unwrapped
}

// NotAuthenticated builds the standard error for operations that require
// credentials before any network traffic happens.
func NotAuthenticated() *PixivError {
	return &PixivError{
		Message: "You need to be authenticated for this request",
		Kind:    ErrNotAuthenticated,
	}
}

// APIErrorDetail is the detailed error payload most app-API endpoints
// return under the top-level "error" member.
type APIErrorDetail struct {
	UserMessage        string         `json:"user_message"`
	Message            string         `json:"message"`
	Reason             string         `json:"reason"`
	UserMessageDetails map[string]any `json:"user_message_details"`
}

func (e *APIErrorDetail) Error() string {
	return e.Message
}

// APIError is the boolean-flag error payload some endpoints return
// instead of the detailed shape.
type APIError struct {
	Failed  bool   `json:"error"`
	Message string `json:"message"`
	Body    []any  `json:"body"`
}

func (e *APIError) Error() string {
	return e.Message
}

// parseError builds the error for a response with a non-2xx status,
// combining the status-derived kind with the decoded error payload when
// the body carries a recognizable one.
func parseError(statusCode int, body []byte) *PixivError {
	envelope := gjson.GetBytes(body, "error")

	message := ""

	if envelope.IsObject() {
		// A present-but-empty message stays empty; the fallback text only
		// covers envelopes that lack the member entirely.
		if member := envelope.Get("message"); member.Exists() {
			message = member.String()
		} else {
			message = "Unknown HTTPError"
		}
	}

	statusErr := statusError(statusCode, message)
	if apiErr := decodeErrorEnvelope(envelope); apiErr != nil {
		statusErr.Err = apiErr
	}

	return statusErr
}

// statusError maps an HTTP status code to its error kind.
func statusError(statusCode int, message string) *PixivError {
	switch statusCode {
	case http.StatusForbidden:
		return &PixivError{Message: message, Kind: ErrForbidden}
	case http.StatusNotFound:
		return &PixivError{Message: message, Kind: ErrNotFound}
	case http.StatusBadRequest:
		return &PixivError{Message: message, Kind: ErrBadRequest}
	case http.StatusBadGateway:
		return &PixivError{
			Message: "Bad Gateway - Invalid response from server",
			Kind:    ErrNetwork,
		}
	default:
		if message == "" {
			message = "NetworkError"
		}

		return &PixivError{
			Message: fmt.Sprintf("%s (%d)", message, statusCode),
			Kind:    ErrNetwork,
		}
	}
}

// decodeErrorEnvelope decodes the "error" member into one of the two
// known payload shapes. The member's key set must match a shape exactly;
// anything else yields nil and only the status-derived error surfaces.
func decodeErrorEnvelope(envelope gjson.Result) error {
	if !envelope.IsObject() {
		return nil
	}

	keys := make(map[string]bool, 4)

	envelope.ForEach(func(key, _ gjson.Result) bool {
		keys[key.String()] = true

		return true
	})

	switch {
	case len(keys) == 4 && keys["user_message"] && keys["message"] &&
		keys["reason"] && keys["user_message_details"]:
		detail := &APIErrorDetail{}
		if err := json.Unmarshal([]byte(envelope.Raw), detail); err != nil {
			return nil
		}

		return detail

	case len(keys) == 3 && keys["error"] && keys["message"] && keys["body"]:
		apiErr := &APIError{}
		if err := json.Unmarshal([]byte(envelope.Raw), apiErr); err != nil {
			return nil
		}

		return apiErr

	default:
		return nil
	}
}
