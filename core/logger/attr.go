package logger

import (
	"log/slog"
	"time"
)

// Attribute helpers return an empty Attr for empty input, so calls like
// log.Info("msg", logger.Error(err)) need no nil checks. slog drops empty
// attributes.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// RequestID creates an attribute for HTTP request IDs.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// SessionID creates an attribute for session identifiers.
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}

// Method creates an attribute for HTTP methods.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Path creates an attribute for URL paths.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// Query creates an attribute for raw query strings.
func Query(query string) slog.Attr {
	if query == "" {
		return slog.Attr{}
	}
	return slog.String("query", query)
}

// RemoteAddr creates an attribute for the peer address.
func RemoteAddr(addr string) slog.Attr {
	return slog.String("remote_addr", addr)
}

// StatusCode creates an attribute for HTTP status codes.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// BytesOut creates an attribute for outgoing bytes.
func BytesOut(n int64) slog.Attr {
	return slog.Int64("bytes_out", n)
}

// Route creates an attribute for the matched route.
func Route(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("route", name)
}

// Culture creates an attribute for the request culture.
func Culture(tag string) slog.Attr {
	if tag == "" {
		return slog.Attr{}
	}
	return slog.String("culture", tag)
}

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event creates an attribute for event names.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Category creates an attribute naming the log category, the logical
// source of a message independent of the package that emits it.
func Category(name string) slog.Attr {
	return slog.String("category", name)
}

// Stack creates an attribute for a captured stack trace.
func Stack(stack []byte) slog.Attr {
	if len(stack) == 0 {
		return slog.Attr{}
	}
	return slog.String("stack", string(stack))
}
