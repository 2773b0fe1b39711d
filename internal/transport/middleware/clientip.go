package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/conceptdost/conceptdost-backend/pkg/ctxutil"
)

// ClientIP resolves the caller's network origin and stores it in the request
// context. For anonymous callers this value is the quota identity, so the
// resolution order matters: the leftmost X-Forwarded-For hop when running
// behind a trusted proxy, then X-Real-IP, then the socket address.
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := resolveClientIP(r)
		ctx := ctxutil.WithClientIP(r.Context(), ip)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func resolveClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First hop is the original client.
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
		return real
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
