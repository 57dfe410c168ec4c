package response

import (
	"net/http"

	"github.com/dmitrymomot/webdemo/core/handler"
)

// Error returns a handler response that propagates the given error.
// The error travels back up the pipeline where the exception stage
// or the pipeline's error handler deals with it.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}
