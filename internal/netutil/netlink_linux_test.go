// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux
// +build linux

package netutil

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"

	"grimm.is/vrrpsetup/internal/testutil"
)

// inScratchNetns runs fn on a locked thread inside a fresh network
// namespace, so links created by the test never touch the host.
func inScratchNetns(t *testing.T, fn func()) {
	t.Helper()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	orig, err := netns.Get()
	require.NoError(t, err)
	defer orig.Close()

	scratch, err := netns.New()
	require.NoError(t, err)
	defer scratch.Close()
	defer netns.Set(orig)

	fn()
}

func TestHasAddress_DummyLink(t *testing.T) {
	testutil.RequireNetAdmin(t)

	inScratchNetns(t, func() {
		const name = "vrrptest0"
		link := &netlink.Dummy{LinkAttrs: netlink.LinkAttrs{Name: name}}
		require.NoError(t, netlink.LinkAdd(link))

		names, err := Host{}.Interfaces()
		require.NoError(t, err)
		assert.Equal(t, []string{"lo", name}, names)

		bound, err := Host{}.HasAddress(name, "192.0.2.10")
		require.NoError(t, err)
		assert.False(t, bound)

		addr, err := netlink.ParseAddr("192.0.2.10/24")
		require.NoError(t, err)
		require.NoError(t, netlink.AddrAdd(link, addr))

		bound, err = Host{}.HasAddress(name, "192.0.2.10")
		require.NoError(t, err)
		assert.True(t, bound)
	})
}
