package utils

import (
	"net/netip"
	"regexp"
)

// longest textual form of an IPv6 address, including a mapped IPv4 tail
const maxAddressLength = 45

var (
	ipv4Pattern = regexp.MustCompile(`^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)
	ipv6Pattern = regexp.MustCompile(`^(?:[0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}$|^::1$|^::$`)
)

// IsValidPublicIP reports whether ip is a strictly formatted IPv4 or IPv6
// address outside the loopback, private, link-local and unique-local
// ranges. The unspecified IPv6 address :: is accepted.
func IsValidPublicIP(ip string) bool {
	if ip == "" || len(ip) > maxAddressLength {
		return false
	}

	if ip == "localhost" || ip == "0.0.0.0" {
		return false
	}

	if !ipv4Pattern.MatchString(ip) && !ipv6Pattern.MatchString(ip) {
		return false
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		// the v4 pattern tolerates leading zeros which netip refuses
		return false
	}

	switch {
	case addr.IsLoopback(),
		addr.IsPrivate(),
		addr.IsLinkLocalUnicast():
		return false
	}

	return true
}
