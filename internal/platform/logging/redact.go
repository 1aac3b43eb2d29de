package logging

import (
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders lists the lowercase HTTP header names whose values are
// never logged. The HTTP middleware redacts them before logging headers;
// New redacts attributes with these keys as a second line.
var SensitiveHeaders = []string{"authorization", "cookie", "set-cookie", "x-api-key"}

// SensitiveKeys lists attribute keys New always redacts, besides
// SensitiveHeaders.
var SensitiveKeys = []string{"password", "secret", "token"}

// IsSensitiveHeader reports whether the header name carries credentials.
func IsSensitiveHeader(name string) bool {
	return slices.Contains(SensitiveHeaders, strings.ToLower(name))
}

var (
	// "Bearer <token>" in free text.
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

	// header.payload.signature, at least 10 characters a segment so version
	// strings do not match.
	jwtPattern = regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`)

	// Inline api_key=... or apikey: ...
	apiKeyPattern = regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`)

	// sqlite DSN credentials such as _auth_pass=... in persistence.dsn.
	dsnSecretPattern = regexp.MustCompile(`(?i)_auth_(pass|user)=[^&\s]+`)
)

func redactor() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, len(SensitiveHeaders)+len(SensitiveKeys)+6)
	for _, name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, name := range SensitiveKeys {
		opts = append(opts, masq.WithFieldName(name))
	}
	opts = append(opts,
		masq.WithFieldPrefix("secret_"),
		masq.WithFieldPrefix("api_key"),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(apiKeyPattern),
		masq.WithRegex(dsnSecretPattern),
	)
	return masq.New(opts...)
}
