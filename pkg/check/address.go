package check

import (
	"net"
	"net/netip"
	"strconv"
	"strings"

	"astron-hq/astroncheck/pkg/document"
)

// NetworkAddress accepts "host:port" strings. The host may be an IPv4
// address, a bracketed IPv6 address or an RFC 1123 hostname; the port must be
// numeric and within 1-65535.
func NetworkAddress() Checker {
	return func(n *document.Node) *Problem {
		if !n.IsScalar() {
			return kindProblem("must be a network address of the form host:port, got %s", n.Describe())
		}
		if reason := addressError(n.Value); reason != "" {
			return kindProblem("invalid network address %q: %s", n.Value, reason)
		}
		return nil
	}
}

// ValidAddress reports whether hostspec is an acceptable "host:port" string.
func ValidAddress(hostspec string) bool {
	return addressError(hostspec) == ""
}

func addressError(hostspec string) string {
	if hostspec == "" {
		return "address is empty"
	}

	host, port, err := net.SplitHostPort(hostspec)
	if err != nil {
		if strings.Count(hostspec, ":") > 1 && !strings.HasPrefix(hostspec, "[") {
			return "IPv6 addresses must be bracketed, e.g. [::1]:7199"
		}
		return "expected host:port"
	}

	if reason := portError(port); reason != "" {
		return reason
	}

	if host == "" {
		return "host is empty"
	}
	if _, err := netip.ParseAddr(host); err == nil {
		return ""
	}
	if strings.Contains(host, ":") {
		return "host is not a valid IPv6 address"
	}
	if !validHostname(host) {
		return "host is not a valid IP address or hostname"
	}
	return ""
}

func portError(port string) string {
	if port == "" {
		return "port is missing"
	}
	p, err := strconv.ParseUint(port, 10, 32)
	if err != nil {
		return "port must be numeric"
	}
	if p < 1 || p > 65535 {
		return "port must be between 1 and 65535"
	}
	return ""
}

// validHostname applies the RFC 1123 rules: only letters, digits, '.' and
// '-', no empty labels, and no label starting or ending with '-'.
func validHostname(host string) bool {
	if len(host) > 253 {
		return false
	}
	for _, label := range strings.Split(strings.TrimSuffix(host, "."), ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
			if !isAlnum && r != '-' {
				return false
			}
		}
	}
	return true
}
