// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package cluster

import (
	"fmt"
	"strings"
)

// Role is the configured role of this node.
type Role string

const (
	RolePrimary   Role = "primary"
	RoleSecondary Role = "secondary"
)

// Value bounds enforced by the validators.
const (
	MinPriority     = 1
	MaxPriority     = 255
	MinGroupID      = 0
	MaxGroupID      = 255
	MinPrefixLength = 1
	MaxPrefixLength = 32
)

// DefaultResolverUnit is the systemd unit whose state gates node health.
const DefaultResolverUnit = "unbound"

// KeepalivedState returns the initial state keyword for the daemon.
func (r Role) KeepalivedState() string {
	if r == RolePrimary {
		return "MASTER"
	}
	return "BACKUP"
}

// DefaultPriority returns the conventional priority for the role.
func (r Role) DefaultPriority() int {
	if r == RolePrimary {
		return 101
	}
	return 100
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RolePrimary || r == RoleSecondary
}

// SecureString is a string that hides its value when printed or logged.
type SecureString string

func (s SecureString) String() string {
	if s == "" {
		return ""
	}
	return "(hidden)"
}

func (s SecureString) GoString() string {
	return "(hidden)"
}

// MarshalJSON masks the value.
func (s SecureString) MarshalJSON() ([]byte, error) {
	if s == "" {
		return []byte(`""`), nil
	}
	return []byte(`"(hidden)"`), nil
}

// Reveal returns the clear-text value. Only renderers should call it.
func (s SecureString) Reveal() string {
	return string(s)
}

// NodeConfig holds the settings that differ between the two nodes.
type NodeConfig struct {
	Role      Role
	Interface string
	Priority  int
	// NoPreempt keeps the floating address on this node after the primary
	// recovers. Only honoured for RoleSecondary.
	NoPreempt bool
}

// SharedConfig holds the settings that must be identical on both nodes.
type SharedConfig struct {
	GroupID         int
	AuthSecret      SecureString
	FloatingAddress string
	PrefixLength    int
}

// CIDR returns the floating address in address/prefix form.
func (s SharedConfig) CIDR() string {
	return fmt.Sprintf("%s/%d", s.FloatingAddress, s.PrefixLength)
}

// HealthCheckPolicy selects the conditions the probe script checks.
// All enabled conditions must pass.
type HealthCheckPolicy struct {
	ResolverUnit       string
	TimeSyncMonitoring bool
}

// Unit returns the resolver unit, falling back to DefaultResolverUnit.
func (p HealthCheckPolicy) Unit() string {
	if strings.TrimSpace(p.ResolverUnit) == "" {
		return DefaultResolverUnit
	}
	return p.ResolverUnit
}

// Model is everything needed to render one node's artifacts.
type Model struct {
	Node   NodeConfig
	Shared SharedConfig
	Health HealthCheckPolicy
}

// Normalize clears settings that do not apply to the node's role.
func (m *Model) Normalize() {
	if m.Node.Role != RoleSecondary {
		m.Node.NoPreempt = false
	}
	if strings.TrimSpace(m.Health.ResolverUnit) == "" {
		m.Health.ResolverUnit = DefaultResolverUnit
	}
}

// EmitNoPreempt reports whether the rendered config carries nopreempt.
func (m Model) EmitNoPreempt() bool {
	return m.Node.Role == RoleSecondary && m.Node.NoPreempt
}

// Warnings returns non-fatal observations the operator should see before
// confirming.
func (m Model) Warnings() []string {
	var warnings []string

	switch {
	case m.Node.Role == RolePrimary && m.Node.Priority <= RoleSecondary.DefaultPriority():
		warnings = append(warnings, fmt.Sprintf(
			"primary priority %d is not above the usual secondary priority %d; make sure the peer is configured lower",
			m.Node.Priority, RoleSecondary.DefaultPriority()))
	case m.Node.Role == RoleSecondary && m.Node.Priority >= RolePrimary.DefaultPriority():
		warnings = append(warnings, fmt.Sprintf(
			"secondary priority %d is not below the usual primary priority %d; make sure the peer is configured higher",
			m.Node.Priority, RolePrimary.DefaultPriority()))
	}

	if len(m.Shared.AuthSecret) > 8 {
		warnings = append(warnings, "keepalived only uses the first 8 characters of a PASS secret")
	}

	warnings = append(warnings, fmt.Sprintf(
		"group id %d, secret and floating address %s must be entered identically on the peer node",
		m.Shared.GroupID, m.Shared.CIDR()))

	return warnings
}

// Artifacts are the rendered files for one node.
type Artifacts struct {
	ScriptPath string
	ScriptText string
	ConfigPath string
	ConfigText string
}

// File modes of the generated artifacts. The config holds the secret in
// clear text.
const (
	ScriptMode = 0o755
	ConfigMode = 0o600
)
