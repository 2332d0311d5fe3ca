// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package healthcheck

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/vrrpsetup/internal/cluster"
)

func TestSynthesize_TimeSyncToggle(t *testing.T) {
	off := Synthesize(cluster.HealthCheckPolicy{})
	on := Synthesize(cluster.HealthCheckPolicy{TimeSyncMonitoring: true})

	assert.NotContains(t, off, "chronyc")
	assert.Contains(t, on, "chronyc tracking")
	assert.Contains(t, on, "command -v chronyc")

	for _, script := range []string{off, on} {
		assert.True(t, strings.HasPrefix(script, "#!/bin/sh\n"))
		assert.Contains(t, script, "systemctl is-active --quiet unbound || exit 1")
		assert.True(t, strings.HasSuffix(script, "\nexit 0\n"))
	}
}

func TestSynthesize_ResolverCheckComesFirst(t *testing.T) {
	script := Synthesize(cluster.HealthCheckPolicy{TimeSyncMonitoring: true})

	resolver := strings.Index(script, "systemctl is-active")
	chrony := strings.Index(script, "command -v chronyc")
	require.NotEqual(t, -1, resolver)
	require.NotEqual(t, -1, chrony)
	assert.Less(t, resolver, chrony)
}

func TestSynthesize_Deterministic(t *testing.T) {
	policy := cluster.HealthCheckPolicy{ResolverUnit: "pihole-FTL.service", TimeSyncMonitoring: true}
	assert.Equal(t, Synthesize(policy), Synthesize(policy))
	assert.Contains(t, Synthesize(policy), "--quiet pihole-FTL.service ||")
}

func TestPackages(t *testing.T) {
	assert.Empty(t, Packages(cluster.HealthCheckPolicy{}))
	assert.Equal(t, []string{"chrony"}, Packages(cluster.HealthCheckPolicy{TimeSyncMonitoring: true}))
}

// fakeTool writes an executable shell script named name into dir.
func fakeTool(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
}

// runScript executes script with dir prepended to PATH and returns the exit code.
func runScript(t *testing.T, dir, script string) int {
	t.Helper()
	path := filepath.Join(t.TempDir(), "check.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))

	cmd := exec.Command("sh", path)
	cmd.Env = append(os.Environ(), "PATH="+dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	err := cmd.Run()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "unexpected error: %v", err)
	return exitErr.ExitCode()
}

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("probe scripts are POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestScript_ResolverDownShortCircuits(t *testing.T) {
	requireShell(t)

	bin := t.TempDir()
	marker := filepath.Join(t.TempDir(), "chronyc-ran")
	fakeTool(t, bin, "systemctl", "exit 3")
	fakeTool(t, bin, "chronyc", "touch "+marker+"\necho 'Leap status     : Normal'")

	code := runScript(t, bin, Synthesize(cluster.HealthCheckPolicy{TimeSyncMonitoring: true}))

	assert.Equal(t, 1, code)
	assert.NoFileExists(t, marker, "time sync must not be queried once the resolver check failed")
}

func TestScript_Outcomes(t *testing.T) {
	requireShell(t)

	tests := []struct {
		name     string
		active   bool
		timeSync bool
		leap     string
		want     int
	}{
		{"resolver up, no time sync", true, false, "", 0},
		{"resolver down, no time sync", false, false, "", 1},
		{"resolver up, clock normal", true, true, "Normal", 0},
		{"resolver up, clock unsynchronised", true, true, "Not synchronised", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bin := t.TempDir()
			if tt.active {
				fakeTool(t, bin, "systemctl", "exit 0")
			} else {
				fakeTool(t, bin, "systemctl", "exit 3")
			}
			fakeTool(t, bin, "chronyc", "echo 'Reference ID    : C0A80001'\necho 'Leap status     : "+tt.leap+"'")

			policy := cluster.HealthCheckPolicy{TimeSyncMonitoring: tt.timeSync}
			assert.Equal(t, tt.want, runScript(t, bin, Synthesize(policy)))
		})
	}
}
