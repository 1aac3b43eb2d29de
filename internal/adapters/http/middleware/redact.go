package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/go-business-objects/internal/platform/logging"
)

const redacted = "[REDACTED]"

// RedactHeaders returns the headers as log attributes sorted by name.
// Credentials, see logging.SensitiveHeaders, are replaced with [REDACTED];
// repeated values are joined with commas.
func RedactHeaders(headers http.Header) []slog.Attr {
	names := slices.Sorted(func(yield func(string) bool) {
		for name := range headers {
			if !yield(name) {
				return
			}
		}
	})

	attrs := make([]slog.Attr, 0, len(names))
	for _, name := range names {
		value := redacted
		if !logging.IsSensitiveHeader(name) {
			value = strings.Join(headers[name], ",")
		}
		attrs = append(attrs, slog.String(name, value))
	}
	return attrs
}
