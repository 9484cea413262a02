package mojang

import (
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
)

// Error kinds for Mojang API operations. Every error returned by Client
// methods wraps exactly one of these, so callers can match with errors.Is.
var (
	ErrBadRequest        = fmt.Errorf("bad request")
	ErrUnauthorized      = fmt.Errorf("unauthorized")
	ErrForbidden         = fmt.Errorf("forbidden")
	ErrNotFound          = fmt.Errorf("not found")
	ErrTooManyRequests   = fmt.Errorf("rate limited")
	ErrServerError       = fmt.Errorf("server error")
	ErrMalformedResponse = fmt.Errorf("malformed response payload")
	ErrGeneric           = fmt.Errorf("mojang API error")

	// Reserved for authentication flows built on top of this client.
	ErrLoginFailure            = fmt.Errorf("login failure")
	ErrMissingMinecraftLicense = fmt.Errorf("missing Minecraft license")
	ErrMissingMinecraftProfile = fmt.Errorf("missing Minecraft profile")

	// ErrInvalidUsername is returned for usernames that fail local
	// validation, before any request is made.
	ErrInvalidUsername = fmt.Errorf("invalid username")

	// ErrAPIUnavailable wraps transport-level failures.
	ErrAPIUnavailable = fmt.Errorf("mojang API unavailable")
)

// statusKinds maps exact status codes to their error kind. Statuses not
// listed fall back to ErrServerError (>= 500) or ErrGeneric.
var statusKinds = map[int]error{
	http.StatusBadRequest:      ErrBadRequest,
	http.StatusUnauthorized:    ErrUnauthorized,
	http.StatusForbidden:       ErrForbidden,
	http.StatusNotFound:        ErrNotFound,
	http.StatusTooManyRequests: ErrTooManyRequests,
}

// APIError is a classified Mojang API failure.
type APIError struct {
	// Status is the HTTP status code, or 0 for a malformed response
	// payload.
	Status int

	// Detail is a human-readable description of the failure.
	Detail string

	kind error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Detail
	}
	return fmt.Sprintf("[HTTP %d] %s", e.Status, e.Detail)
}

// Unwrap returns the error kind this failure was classified as.
func (e *APIError) Unwrap() error {
	return e.kind
}

// classify maps a non-success response to an APIError. path is the
// request path, used in the detail string when the body is not JSON.
func classify(status int, body []byte, path string) *APIError {
	return &APIError{
		Status: status,
		Detail: errorDetail(status, body, path),
		kind:   kindForStatus(status),
	}
}

// kindForStatus resolves an HTTP status code to its error kind.
func kindForStatus(status int) error {
	if kind, ok := statusKinds[status]; ok {
		return kind
	}
	if status >= 500 {
		return ErrServerError
	}
	return ErrGeneric
}

// errorDetail derives a human-readable detail from an error response
// body. JSON objects are searched for an errorMessage field, then an
// error field; other JSON bodies fall back to "HTTP <status>". Bodies
// that are not JSON at all yield "HTTP <status> <reason> for <path>".
func errorDetail(status int, body []byte, path string) string {
	var payload struct {
		ErrorMessage string `json:"errorMessage"`
		Error        string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		if json.Valid(body) {
			return fmt.Sprintf("HTTP %d", status)
		}
		reason := http.StatusText(status)
		if reason == "" {
			reason = "error"
		}
		return fmt.Sprintf("HTTP %d %s for %s", status, reason, path)
	}

	if payload.ErrorMessage != "" {
		return payload.ErrorMessage
	}
	if payload.Error != "" {
		return payload.Error
	}
	return fmt.Sprintf("HTTP %d", status)
}

// malformedf builds a malformed-response error from a format string.
func malformedf(format string, args ...any) *APIError {
	return &APIError{
		Detail: fmt.Sprintf(format, args...),
		kind:   ErrMalformedResponse,
	}
}
