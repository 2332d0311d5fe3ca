// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package keepalived renders the VRRP daemon configuration for one node.
//
// The output is a single vrrp_instance tracking a single vrrp_script. Both
// nodes render the same instance apart from state, priority, interface and
// the optional nopreempt keyword.
package keepalived

import (
	"fmt"

	"grimm.is/vrrpsetup/internal/brand"
	"grimm.is/vrrpsetup/internal/cluster"
)

// Tracking parameters of the health probe.
const (
	ScriptName     = "chk_resolver"
	ScriptInterval = 2
	ScriptFall     = 2
	ScriptRise     = 2
	// ScriptWeight is subtracted from the priority while the probe fails.
	// It must exceed the priority gap between the nodes.
	ScriptWeight = -20
	AdvertInt    = 1
)

// InstanceName returns the vrrp_instance name for a group id.
func InstanceName(groupID int) string {
	return fmt.Sprintf("VI_%d", groupID)
}

// Render returns the daemon configuration for node in the cluster described
// by shared, tracking the probe script at scriptPath. Inputs are expected
// to have passed validation; Render itself cannot fail.
func Render(node cluster.NodeConfig, shared cluster.SharedConfig, scriptPath string) string {
	b := NewBuilder()

	b.Comment(fmt.Sprintf("%s configuration for the %s node on %s.", brand.DaemonName, node.Role, node.Interface)).
		Comment(fmt.Sprintf("Generated by %s. Re-running it overwrites this file.", brand.Name)).
		Blank()

	b.Block("global_defs",
		"enable_script_security",
		"script_user "+brand.ScriptUser,
	).Blank()

	b.Open("vrrp_script "+ScriptName).
		Line("script %q", scriptPath).
		Line("interval %d", ScriptInterval).
		Line("fall %d", ScriptFall).
		Line("rise %d", ScriptRise).
		Line("weight %d", ScriptWeight).
		Close().
		Blank()

	b.Open("vrrp_instance "+InstanceName(shared.GroupID)).
		Line("state %s", node.Role.KeepalivedState()).
		Line("interface %s", node.Interface).
		Line("virtual_router_id %d", shared.GroupID).
		Line("priority %d", node.Priority).
		Line("advert_int %d", AdvertInt)

	if node.Role == cluster.RoleSecondary && node.NoPreempt {
		b.Line("nopreempt")
	}

	b.Block("authentication",
		"auth_type PASS",
		"auth_pass "+shared.AuthSecret.Reveal(),
	)
	b.Block("virtual_ipaddress",
		fmt.Sprintf("%s dev %s", shared.CIDR(), node.Interface),
	)
	b.Block("track_script", ScriptName)
	b.Close()

	return b.Build()
}

// RenderModel renders m with the probe script at scriptPath.
func RenderModel(m cluster.Model, scriptPath string) string {
	return Render(m.Node, m.Shared, scriptPath)
}
