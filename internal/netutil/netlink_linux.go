// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux
// +build linux

package netutil

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
)

func linkNames() ([]string, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	names := make([]string, 0, len(links))
	for _, link := range links {
		names = append(names, link.Attrs().Name)
	}
	return names, nil
}

// hasIPAddress checks if an interface has a specific IP address.
func hasIPAddress(ifaceName string, targetIP net.IP) (bool, error) {
	link, err := netlink.LinkByName(ifaceName)
	if err != nil {
		return false, fmt.Errorf("interface %s not found: %w", ifaceName, err)
	}

	addrs, err := netlink.AddrList(link, netlink.FAMILY_V4)
	if err != nil {
		return false, fmt.Errorf("failed to list addresses on %s: %w", ifaceName, err)
	}

	for _, addr := range addrs {
		if addr.IP.Equal(targetIP) {
			return true, nil
		}
	}
	return false, nil
}
