package utils

import (
	"net"
	"net/url"
	"strings"
)

var privateRanges = []*net.IPNet{
	mustParseCIDR("10.0.0.0/8"),
	mustParseCIDR("172.16.0.0/12"),
	mustParseCIDR("192.168.0.0/16"),
	mustParseCIDR("127.0.0.0/8"),
	mustParseCIDR("169.254.0.0/16"), // link-local IPv4
	mustParseCIDR("::1/128"),
	mustParseCIDR("fe80::/10"), // link-local IPv6
	mustParseCIDR("fc00::/7"),
}

// OriginPolicy decides which browser origins may call the API. LAN origins
// are always trusted; Extra lists public origins such as a hosted frontend.
type OriginPolicy struct {
	Extra []string
}

// Allows reports whether origin may receive CORS headers.
func (p OriginPolicy) Allows(origin string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range p.Extra {
		if allowed == "*" || strings.EqualFold(strings.TrimRight(allowed, "/"), origin) {
			return true
		}
	}
	return IsAllowedOrigin(origin)
}

// IsAllowedOrigin accepts localhost, private and link-local IPs, .local
// hostnames and single-label hostnames. Public origins are rejected.
func IsAllowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}

	hostname := parsed.Hostname()
	switch {
	case hostname == "localhost":
		return true
	case strings.HasSuffix(hostname, ".local"):
		return true
	case !strings.Contains(hostname, ".") && !strings.Contains(hostname, ":"):
		return true
	}

	if ip := net.ParseIP(hostname); ip != nil {
		return isPrivateIP(ip)
	}
	return false
}

func isPrivateIP(ip net.IP) bool {
	for _, network := range privateRanges {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func mustParseCIDR(s string) *net.IPNet {
	_, network, err := net.ParseCIDR(s)
	if err != nil {
		panic(err)
	}
	return network
}
