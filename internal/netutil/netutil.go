// Package netutil resolves listen hosts and classifies addresses.
package netutil

import (
	"context"
	"net"
	"net/netip"
)

// ResolveHost resolves a named or numeric host to its IP addresses, both
// IPv4 and IPv6 as applicable.
func ResolveHost(ctx context.Context, host string) ([]netip.Addr, error) {
	return net.DefaultResolver.LookupNetIP(ctx, "ip", host)
}

// IsLoopback reports whether host resolves to only loopback addresses.
// A resolution failure (e.g. a DNS error) is returned as an error with the
// answer unusable.
func IsLoopback(ctx context.Context, host string) (bool, error) {
	addrs, err := ResolveHost(ctx, host)
	if err != nil {
		return false, err
	}
	for _, addr := range addrs {
		if !addr.Unmap().IsLoopback() {
			return false, nil
		}
	}
	return true, nil
}

// Resolve resolves host to a single address for display and listening,
// preferring IPv4 over IPv6. If resolution fails, host is returned as given;
// it may still work as a listen address.
func Resolve(ctx context.Context, host string) string {
	addrs, err := ResolveHost(ctx, host)
	if err != nil || len(addrs) == 0 {
		return host
	}

	for _, addr := range addrs {
		if addr.Unmap().Is4() {
			return addr.Unmap().String()
		}
	}
	return addrs[0].Unmap().String()
}
