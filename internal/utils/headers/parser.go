// Package headers parses -H "Key: Value" flags into extra submission headers.
package headers

import (
	"fmt"
	"net/textproto"
	"strings"
)

// reserved headers are set by the form submission itself and cannot be overridden
var reserved = map[string]bool{
	"Content-Type":   true,
	"Content-Length": true,
	"Host":           true,
}

// Parse converts "Key: Value" strings into a map with canonical keys. A
// later entry for the same key wins. Malformed and reserved entries fail.
func Parse(h []string) (map[string]string, error) {
	m := make(map[string]string, len(h))
	for _, hdr := range h {
		key, value, ok := split(hdr)
		if !ok {
			return nil, fmt.Errorf("invalid header %q: want \"Key: Value\"", hdr)
		}
		if reserved[key] {
			return nil, fmt.Errorf("header %s is set by the form submission and cannot be overridden", key)
		}
		m[key] = value
	}
	return m, nil
}

func split(hdr string) (string, string, bool) {
	key, value, found := strings.Cut(hdr, ":")
	key = strings.TrimSpace(key)
	if !found || key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}
	return textproto.CanonicalMIMEHeaderKey(key), strings.TrimSpace(value), true
}
