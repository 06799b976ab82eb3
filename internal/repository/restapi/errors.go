package restapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// GenericMessage is shown when the backend gives no usable message.
const GenericMessage = "Something went wrong. Please try again."

// APIError is a failed backend call. Message is what the user sees,
// verbatim from the backend when it sent one. StatusCode is 0 when no
// response arrived.
type APIError struct {
	StatusCode int
	Message    string
	cause      error
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes the domain sentinel attached by a repository, or the
// transport or decode error.
func (e *APIError) Unwrap() error {
	return e.cause
}

// IsAPIError reports whether err carries an *APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// withSentinel attaches sentinel to err when it is an *APIError with the
// given status, so errors.Is matches while the message stays verbatim.
func withSentinel(err error, status int, sentinel error) error {
	if apiErr, ok := IsAPIError(err); ok && apiErr.StatusCode == status && apiErr.cause == nil {
		apiErr.cause = sentinel
	}
	return err
}

func transportError(err error) *APIError {
	return &APIError{StatusCode: 0, Message: GenericMessage, cause: err}
}

// errorPayload covers the shapes the backend uses: {"detail": "..."},
// FastAPI's {"detail": [{"msg": "..."}]} and {"message": "..."}.
type errorPayload struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: GenericMessage}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	if msg := extractMessage(raw); msg != "" {
		apiErr.Message = msg
	}
	return apiErr
}

func extractMessage(raw []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}

	if len(payload.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil && detail != "" {
			return detail
		}

		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil && len(items) > 0 && items[0].Msg != "" {
			return items[0].Msg
		}
	}

	return payload.Message
}
