// Package url normalizes user-typed addresses before they reach an engine.
package url

import (
	"net/url"
	"strings"
)

var schemes = []string{"http://", "https://", "file://", "about:", "data:"}

// HasScheme reports whether input starts with a scheme engines load as-is.
func HasScheme(input string) bool {
	lower := strings.ToLower(input)
	for _, s := range schemes {
		if strings.HasPrefix(lower, s) {
			return true
		}
	}
	return false
}

// Normalize adds an https:// prefix to host-like inputs ("example.com/a").
// Inputs with a scheme, or that do not look like a host, are returned trimmed
// but otherwise unchanged.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" || HasScheme(input) {
		return input
	}
	if strings.Contains(input, ".") && !strings.ContainsAny(input, " \t") {
		return "https://" + input
	}
	return input
}

// Host returns the host of rawURL without a leading "www.", or "" when it
// has none.
func Host(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}
