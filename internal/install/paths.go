// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package install

import (
	"os"
	"path/filepath"

	"grimm.is/vrrpsetup/internal/brand"
)

// Canonical locations of the generated artifacts.
const (
	KeepalivedConfigPath  = "/etc/keepalived/keepalived.conf"
	HealthCheckScriptPath = "/usr/local/bin/check_resolver.sh"
	SharedExportName      = "shared.hcl"
)

var (
	DefaultConfigDir string

	// Build-time path override (set via -ldflags)
	BuildDefaultConfigDir = ""
)

func init() {
	if BuildDefaultConfigDir != "" {
		DefaultConfigDir = BuildDefaultConfigDir
	} else {
		DefaultConfigDir = brand.Get().DefaultConfigDir
	}
}

func env(suffix string) string {
	return os.Getenv(brand.ConfigEnvPrefix + "_" + suffix)
}

// GetConfigDir returns the tool's own config directory.
// Priority: VRRP_SETUP_CONFIG_DIR > VRRP_SETUP_PREFIX/config > DefaultConfigDir
func GetConfigDir() string {
	if dir := env("CONFIG_DIR"); dir != "" {
		return dir
	}
	if prefix := env("PREFIX"); prefix != "" {
		return filepath.Join(prefix, "config")
	}
	return DefaultConfigDir
}

// GetKeepalivedConfigPath returns where the daemon configuration is written.
// Priority: VRRP_SETUP_KEEPALIVED_CONF > VRRP_SETUP_PREFIX/<canonical> > canonical path
func GetKeepalivedConfigPath() string {
	if path := env("KEEPALIVED_CONF"); path != "" {
		return path
	}
	if prefix := env("PREFIX"); prefix != "" {
		return filepath.Join(prefix, KeepalivedConfigPath)
	}
	return KeepalivedConfigPath
}

// GetHealthCheckScriptPath returns where the probe script is written. The
// same value is embedded in the daemon configuration.
// Priority: VRRP_SETUP_CHECK_SCRIPT > VRRP_SETUP_PREFIX/<canonical> > canonical path
func GetHealthCheckScriptPath() string {
	if path := env("CHECK_SCRIPT"); path != "" {
		return path
	}
	if prefix := env("PREFIX"); prefix != "" {
		return filepath.Join(prefix, HealthCheckScriptPath)
	}
	return HealthCheckScriptPath
}

// GetAnswersFile returns the optional answers file, or "" when unset.
func GetAnswersFile() string {
	return env("ANSWERS")
}

// GetSharedExportPath returns where the cluster-wide settings are exported
// for the peer node.
func GetSharedExportPath() string {
	return filepath.Join(GetConfigDir(), SharedExportName)
}
