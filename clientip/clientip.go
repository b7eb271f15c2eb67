package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Resolve picks the visitor address from X-Forwarded-For (first
// entry), then X-Real-IP, then the peer address with its port stripped.
// Proxy headers are trusted as sent, so clients can spoof them.
func Resolve(header http.Header, remoteAddr string) string {
	if forwarded := header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
