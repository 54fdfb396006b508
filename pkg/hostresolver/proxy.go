package hostresolver

import (
	"fmt"
	"net"
	"net/netip"
	"strings"
)

// proxySet is an immutable set of trusted proxy prefixes.
type proxySet []netip.Prefix

// parseProxies accepts single addresses and CIDRs.
// An unparsable entry fails construction.
func parseProxies(entries []string) (proxySet, error) {
	set := make(proxySet, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			pfx, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidProxy, entry, err)
			}
			if pfx.Addr().Is4In6() {
				pfx = netip.PrefixFrom(pfx.Addr().Unmap(), max(pfx.Bits()-96, 0))
			}
			set = append(set, pfx.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidProxy, entry, err)
		}
		addr = addr.Unmap()
		set = append(set, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return set, nil
}

// contains reports whether peer ("ip" or "ip:port") is a trusted proxy.
func (s proxySet) contains(peer string) bool {
	if len(s) == 0 {
		return false
	}
	addr, ok := peerAddr(peer)
	if !ok {
		return false
	}
	for _, pfx := range s {
		if pfx.Contains(addr) {
			return true
		}
	}
	return false
}

func peerAddr(peer string) (netip.Addr, bool) {
	peer = strings.TrimSpace(peer)
	if peer == "" {
		return netip.Addr{}, false
	}
	host, _, err := net.SplitHostPort(peer)
	if err != nil {
		host = strings.Trim(peer, "[]")
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.WithZone("").Unmap(), true
}
