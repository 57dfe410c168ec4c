package pipeline

import (
	"bufio"
	"net"
	"net/http"
)

// responseWriter tracks whether the response has been started so the pipeline
// knows if it can still render an error.
type responseWriter struct {
	http.ResponseWriter
	written bool
	status  int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *responseWriter) WriteHeader(code int) {
	if w.written {
		return
	}
	w.written = true
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Written reports whether the status line has been sent.
func (w *responseWriter) Written() bool { return w.written }

// Status returns the status code sent, or 200 if nothing was written yet.
func (w *responseWriter) Status() int { return w.status }

func (w *responseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		if !w.written {
			w.WriteHeader(http.StatusOK)
		}
		f.Flush()
	}
}

func (w *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	w.written = true
	return h.Hijack()
}
