package response

import "net/http"

// HTTPError represents a structured error response that implements the error interface.
type HTTPError struct {
	Status  int            `json:"-"`                 // HTTP status code (not in JSON)
	Code    string         `json:"code"`              // Machine-readable error code
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Optional context
}

// NewHTTPError creates a new Error with a custom message and default internal server error status.
func NewHTTPError(message string) HTTPError {
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_server_error",
		Message: message,
	}
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of the error with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithError returns a copy of the error with an error cause.
func (e HTTPError) WithError(err error) HTTPError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

// Predefined HTTP errors using http.StatusText for default messages.
var (
	ErrBadRequest       = newHTTPError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized     = newHTTPError(http.StatusUnauthorized, "unauthorized")
	ErrForbidden        = newHTTPError(http.StatusForbidden, "forbidden")
	ErrNotFound         = newHTTPError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed = newHTTPError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrRequestTimeout   = newHTTPError(http.StatusRequestTimeout, "request_timeout")

	ErrInternalServerError = newHTTPError(http.StatusInternalServerError, "internal_server_error")
	ErrServiceUnavailable  = newHTTPError(http.StatusServiceUnavailable, "service_unavailable")
)

// httpErrorsByStatus maps HTTP status codes to their corresponding HTTPError values
var httpErrorsByStatus = map[int]HTTPError{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusMethodNotAllowed:    ErrMethodNotAllowed,
	http.StatusRequestTimeout:      ErrRequestTimeout,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusServiceUnavailable:  ErrServiceUnavailable,
}

func newHTTPError(status int, code string) HTTPError {
	return HTTPError{
		Status:  status,
		Code:    code,
		Message: http.StatusText(status),
	}
}
