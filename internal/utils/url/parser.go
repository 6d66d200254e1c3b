package urlutil

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

const wwwPrefix = "www."

// ValidateURL performs comprehensive URL validation
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: must be http or https, got %s", parsed.Scheme)
	}

	if parsed.Host == "" || parsed.Hostname() == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	return nil
}

// ToggleWWW returns urlStr with the "www." host prefix removed if present or
// added if absent. ok is false when the host cannot carry a www. variant
// (IP literals, localhost, unparsable URLs).
func ToggleWWW(urlStr string) (toggled string, ok bool) {
	u, err := url.Parse(urlStr)
	if err != nil || u.Hostname() == "" {
		return "", false
	}

	host := u.Hostname()
	if net.ParseIP(host) != nil || strings.EqualFold(host, "localhost") {
		return "", false
	}

	if strings.HasPrefix(strings.ToLower(host), wwwPrefix) {
		host = host[len(wwwPrefix):]
	} else {
		host = wwwPrefix + host
	}
	if port := u.Port(); port != "" {
		host = net.JoinHostPort(host, port)
	}
	u.Host = host
	return u.String(), true
}

// Candidates returns the ordered targets for one submission: the configured
// URL first, then its www.-toggled twin when one exists.
func Candidates(urlStr string) []string {
	out := []string{urlStr}
	if alt, ok := ToggleWWW(urlStr); ok {
		out = append(out, alt)
	}
	return out
}

// HostKey returns the host of urlStr lower-cased and without a www. prefix,
// so a URL and its toggled twin share the same key.
func HostKey(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, wwwPrefix)
}
