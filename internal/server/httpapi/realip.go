package httpapi

import (
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// proxyMatcher holds the peers allowed to report the client address.
type proxyMatcher struct {
	ips  map[string]struct{}
	nets []*net.IPNet
}

// newProxyMatcher accepts IPs and CIDRs; anything else is skipped (config
// validation rejects it before we get here).
func newProxyMatcher(entries []string) *proxyMatcher {
	m := &proxyMatcher{ips: make(map[string]struct{})}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if _, network, err := net.ParseCIDR(entry); err == nil {
			m.nets = append(m.nets, network)
			continue
		}
		if ip := net.ParseIP(entry); ip != nil {
			m.ips[ip.String()] = struct{}{}
		}
	}
	return m
}

func (m *proxyMatcher) IsTrusted(ip net.IP) bool {
	if m == nil || ip == nil {
		return false
	}
	if _, ok := m.ips[ip.String()]; ok {
		return true
	}
	for _, network := range m.nets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func (m *proxyMatcher) empty() bool {
	return m == nil || (len(m.ips) == 0 && len(m.nets) == 0)
}

// trustedRealIP applies chi's RealIP only to requests arriving from a trusted
// proxy. Other peers keep their socket address, whatever headers they send.
func trustedRealIP(proxies *proxyMatcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if proxies.empty() {
			return next
		}
		withRealIP := middleware.RealIP(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if proxies.IsTrusted(remoteIP(r)) {
				withRealIP.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func remoteIP(r *http.Request) net.IP {
	host := strings.TrimSpace(r.RemoteAddr)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	if zone := strings.IndexByte(host, '%'); zone != -1 {
		host = host[:zone]
	}
	return net.ParseIP(host)
}
