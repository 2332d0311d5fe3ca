// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package testutil

import (
	"os"
	"runtime"
	"testing"
)

// NetAdminEnv enables tests that need CAP_NET_ADMIN.
const NetAdminEnv = "VRRP_SETUP_NETADMIN_TEST"

// RequireNetAdmin skips the test unless NetAdminEnv is set on a Linux host.
// Such tests create and delete links, so they need CAP_NET_ADMIN and
// should run in a throwaway network namespace or VM.
func RequireNetAdmin(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("Skipping test: requires Linux")
	}
	if os.Getenv(NetAdminEnv) == "" {
		t.Skip("Skipping test: requires " + NetAdminEnv + " environment")
	}
}
