package xhttp

import (
	"net"
	"net/http"
	"strings"
)

// GetRequestIP returns the originating client: the first X-Forwarded-For
// hop when the header is set, else the peer address. Ports are dropped.
func GetRequestIP(r *http.Request) string {
	if xff := r.Header.Get(XForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return hostOnly(strings.TrimSpace(first))
	}
	return hostOnly(r.RemoteAddr)
}

func hostOnly(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
