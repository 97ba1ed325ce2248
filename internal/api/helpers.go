package api

import (
	"encoding/json/v2"
	"net"
	"net/http"
)

// throttledPath reports whether the path is a credential endpoint
// subject to per-client throttling.
func throttledPath(path string) bool {
	return path == "/register" || path == "/login"
}

// throttleAuth rate-limits the credential endpoints per client IP. It
// runs after middleware.RealIP, which has already folded X-Forwarded-For
// and X-Real-IP into RemoteAddr, so direct connections and proxied
// requests both key on the real client address.
func (s *Server) throttleAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.authRateLimiter == nil || !throttledPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r.RemoteAddr)
		if !s.authRateLimiter.Allow(ip) {
			s.logger.Warn("Rate limit exceeded", "ip", ip, "path", r.URL.Path)
			writeThrottled(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from a remote address. Addresses that do not
// parse are used verbatim so distinct clients never share a bucket.
func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil || host == "" {
		if remoteAddr == "" {
			return "unknown"
		}
		return remoteAddr
	}
	return host
}

// writeThrottled emits a 429 in the standard response envelope. The
// middleware answers before huma sees the request, so the envelope is
// written directly rather than through the transformer.
func writeThrottled(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.MarshalWrite(w, APIErrorEnvelope{
		Version: EnvelopeVersion,
		Success: false,
		Error: ErrorBody{
			Code:    statusToCode(http.StatusTooManyRequests),
			Message: "Too many requests. Please try again later.",
		},
	})
}
