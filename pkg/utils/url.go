package utils

import (
	"net/url"
	"strings"
)

// ResolveEndpoint joins a configured base URL and an endpoint path.
func ResolveEndpoint(base, path string) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/") + "/")
	if err != nil {
		return "", err
	}
	rel, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return "", err
	}
	return u.ResolveReference(rel).String(), nil
}

// Excerpt trims s to at most n bytes, marking truncation.
func Excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
