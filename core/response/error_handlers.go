package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/webdemo/core/handler"
)

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// ToHTTPError converts any error to an HTTPError.
// It checks for HTTPError first, then the StatusCode() interface, and defaults to 500.
func ToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	baseErr, ok := httpErrorsByStatus[status]
	if !ok {
		baseErr = HTTPError{Status: status, Code: "error", Message: http.StatusText(status)}
		if baseErr.Message == "" {
			baseErr = ErrInternalServerError
		}
	}

	return baseErr.WithError(err)
}

// ErrorHandler is the default error handler that returns plain text errors.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := ToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}
