// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package netutil answers the two questions the tool asks about the host's
// network: which interfaces exist, and whether an address is bound to one.
package netutil

import (
	"fmt"
	"net"
	"sort"
)

// Host queries the running kernel. The zero value is ready to use.
type Host struct{}

// Interfaces returns the names of all links, sorted.
func (Host) Interfaces() ([]string, error) {
	names, err := linkNames()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// HasAddress reports whether addr is currently assigned to iface.
func (Host) HasAddress(iface, addr string) (bool, error) {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false, fmt.Errorf("invalid IP address %q", addr)
	}
	return hasIPAddress(iface, ip)
}
