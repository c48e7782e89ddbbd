// Package sl holds the slog attributes shared by every component's logger.
package sl

import (
	"fmt"
	"log/slog"
)

// Err records err under "error"; handlers and stores attach it to failure lines.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Secret keeps only the first 3 characters of value, so codes and
// passwords can be correlated in logs without being readable.
func Secret(key, value string) slog.Attr {
	r := "***"
	if len(value) > 3 {
		r = fmt.Sprintf("%s***", value[0:3])
	}
	if value == "" {
		r = "?"
	}
	return slog.Attr{
		Key:   key,
		Value: slog.StringValue(r),
	}
}

// Module tags a component logger, e.g. "app.invites" or "http.ws", so lines
// can be filtered by the layer that wrote them.
func Module(mod string) slog.Attr {
	return slog.Attr{
		Key:   "mod",
		Value: slog.StringValue(mod),
	}
}
