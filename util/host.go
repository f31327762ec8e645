package util

import (
	"net/url"
	"strings"
)

// GetHost extracts the host part of a dapp origin for display. It never
// fails: input that does not parse as a URL is returned trimmed.
func GetHost(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return ""
	}
	candidate := origin
	if !strings.Contains(candidate, "://") {
		// bare hosts like "app.uniswap.org/swap" have no scheme
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return origin
	}
	return u.Hostname()
}
