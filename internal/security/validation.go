// Package security provides validation for user-supplied locations.
package security

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ValidateRemoteURL validates the URL of a palette document.
// HTTPS is required unless the host is local or private, where plain HTTP is
// allowed for development servers.
func ValidateRemoteURL(urlStr string) error {
	if urlStr == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a hostname")
	}
	if parsed.User != nil {
		return fmt.Errorf("URL must not embed credentials")
	}

	switch strings.ToLower(parsed.Scheme) {
	case "https":
		return nil
	case "http":
		host := strings.ToLower(parsed.Hostname())
		if IsLocalOrPrivateHost(host) {
			return nil
		}
		return fmt.Errorf("plain HTTP is only allowed for local or private hosts (got %s)", host)
	default:
		return fmt.Errorf("only HTTP(S) URLs are allowed (got %q)", parsed.Scheme)
	}
}

// IsLocalOrPrivateHost reports whether host is localhost or a loopback,
// private or link-local address.
func IsLocalOrPrivateHost(host string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}

	ip := net.ParseIP(strings.Trim(host, "[]"))
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}
