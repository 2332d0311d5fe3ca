// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package brand provides centralized naming constants for the tool and the
// daemon it configures. Values are loaded from brand.json at compile time.
package brand

import (
	_ "embed"
	"encoding/json"
)

//go:embed brand.json
var brandJSON []byte

// Brand holds all branding information
type Brand struct {
	Name             string `json:"name"`
	LowerName        string `json:"lowerName"`
	Vendor           string `json:"vendor"`
	Repository       string `json:"repository"`
	Description      string `json:"description"`
	ConfigEnvPrefix  string `json:"configEnvPrefix"`
	DefaultConfigDir string `json:"defaultConfigDir"`
	BinaryName       string `json:"binaryName"`
	DaemonName       string `json:"daemonName"`
	DaemonUnit       string `json:"daemonUnit"`
	ScriptUser       string `json:"scriptUser"`
	Copyright        string `json:"copyright"`
	License          string `json:"license"`
}

var b Brand

func init() {
	if err := json.Unmarshal(brandJSON, &b); err != nil {
		panic("failed to parse brand.json: " + err.Error())
	}

	Name = b.Name
	LowerName = b.LowerName
	Description = b.Description
	ConfigEnvPrefix = b.ConfigEnvPrefix
	BinaryName = b.BinaryName
	DaemonName = b.DaemonName
	DaemonUnit = b.DaemonUnit
	ScriptUser = b.ScriptUser
}

// Exported variables for convenience
var (
	Name            string
	LowerName       string
	Description     string
	ConfigEnvPrefix string
	BinaryName      string
	// DaemonName is the package that provides the failover daemon.
	DaemonName string
	// DaemonUnit is the systemd unit of the failover daemon.
	DaemonUnit string
	// ScriptUser is the unprivileged account the daemon runs probes as.
	ScriptUser string

	// Version is set at build time via -ldflags
	Version   = "dev"
	GitCommit = "unknown"
)

// Get returns the full Brand struct
func Get() Brand {
	return b
}

// Generator returns the "<name> <version>" string stamped into generated files.
func Generator() string {
	return Name + " " + Version
}
