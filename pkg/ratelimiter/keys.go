package ratelimiter

import (
	"hash/fnv"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
)

// maxKeyLength caps composite keys; longer ones are hashed.
const maxKeyLength = 64

// KeyFunc extracts a rate limit key from the request.
type KeyFunc func(r *http.Request) string

// Composite joins the non-empty keys of keyFuncs with ":".
// Keys longer than 64 characters are replaced with their FNV-1a hash.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}
		if len(parts) == 0 {
			return ""
		}

		combined := strings.Join(parts, ":")
		if len(combined) <= maxKeyLength {
			return combined
		}
		h := fnv.New64a()
		h.Write([]byte(combined))
		return strconv.FormatUint(h.Sum64(), 36)
	}
}

// Static always returns key. Useful as a namespace inside Composite.
func Static(key string) KeyFunc {
	return func(*http.Request) string { return key }
}

// ClientIP keys requests by client address. trustedHeaders are checked in
// order; RemoteAddr is the fallback. List-valued headers such as
// X-Forwarded-For are read right to left, so the entry appended by the
// nearest proxy wins and client-supplied entries further left are ignored.
// Only list headers set by a proxy you control.
func ClientIP(trustedHeaders ...string) KeyFunc {
	return func(r *http.Request) string {
		for _, h := range trustedHeaders {
			if ip := lastIP(r.Header.Values(h)); ip != "" {
				return ip
			}
		}
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		return parseIP(host)
	}
}

// lastIP returns the right-most valid address across repeated header lines.
func lastIP(values []string) string {
	for i := len(values) - 1; i >= 0; i-- {
		parts := strings.Split(values[i], ",")
		for j := len(parts) - 1; j >= 0; j-- {
			if ip := parseIP(parts[j]); ip != "" {
				return ip
			}
		}
	}
	return ""
}

func parseIP(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().String()
}
