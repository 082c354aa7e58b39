package httpaudit

import (
	"net/http"
	"slices"
	"strings"
)

// Redacted replaces the value of credential headers in audit records.
const Redacted = "***"

var sensitiveHeaders = map[string]bool{
	"Api-Key":       true,
	"Authorization": true,
}

// FormatHeaders serializes h as [Name:"v"; Other:"a", "b"] with names in
// sorted order. Credential headers keep their name but lose their value.
func FormatHeaders(h http.Header) string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteByte('[')
	for i, name := range names {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(name)
		b.WriteByte(':')
		values := h[name]
		if sensitiveHeaders[http.CanonicalHeaderKey(name)] {
			values = []string{Redacted}
		}
		for j, v := range values {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('"')
			b.WriteString(v)
			b.WriteByte('"')
		}
	}
	b.WriteByte(']')
	return b.String()
}
