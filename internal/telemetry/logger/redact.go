package logger

import (
	"log/slog"
	"strings"
)

// Value prefixes that mark plaintext secrets.
var sensitiveValuePrefixes = []string{
	"lnk_", // link token
}

// Key fragments whose values are always fully redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"key",
	"credential",
	"authorization",
	"bearer",
}

const redactedValue = "***REDACTED***"

// tokenQueryParam is how link tokens appear inside URLs.
const tokenQueryParam = "token="

func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		// Prefixed link tokens stay partially visible even under a secret key.
		if s != "" && IsSensitiveKey(a.Key) && !IsSensitiveValue(s) {
			return slog.String(a.Key, redactedValue)
		}
		if masked := RedactString(s); masked != s {
			return slog.String(a.Key, masked)
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

func maskPrefixed(s string) (string, bool) {
	for _, prefix := range sensitiveValuePrefixes {
		if strings.HasPrefix(s, prefix) {
			return maskValue(s, prefix), true
		}
	}
	return "", false
}

// maskValue keeps the prefix and three characters at each end of the body.
func maskValue(value, prefix string) string {
	body := value[len(prefix):]
	if len(body) <= 6 {
		return prefix + "***"
	}
	return prefix + body[:3] + "..." + body[len(body)-3:]
}

// maskTokenQuery masks every token=<value> occurrence in s.
func maskTokenQuery(s string) string {
	var b strings.Builder
	for {
		i := strings.Index(s, tokenQueryParam)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		i += len(tokenQueryParam)
		b.WriteString(s[:i])
		s = s[i:]

		end := strings.IndexAny(s, "&# \"'")
		if end < 0 {
			end = len(s)
		}
		val := s[:end]
		if masked, ok := maskPrefixed(val); ok {
			b.WriteString(masked)
		} else if val != "" {
			b.WriteString(redactedValue)
		}
		s = s[end:]
	}
}

// RedactString masks link tokens in value, whether bare or inside a URL.
func RedactString(value string) string {
	if masked, ok := maskPrefixed(value); ok {
		return masked
	}
	if strings.Contains(value, tokenQueryParam) {
		return maskTokenQuery(value)
	}
	return value
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(k, pattern) {
			return true
		}
	}
	return false
}

// IsSensitiveValue checks if a value carries a known secret prefix.
func IsSensitiveValue(value string) bool {
	_, ok := maskPrefixed(value)
	return ok
}
