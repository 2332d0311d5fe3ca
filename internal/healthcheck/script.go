// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package healthcheck synthesizes the probe script keepalived runs to decide
// whether this node is fit to hold the floating address.
//
// The script exits 0 when every enabled condition holds and 1 otherwise. The
// resolver check always runs first and exits on failure, so later
// conditions are never evaluated for an unhealthy resolver.
package healthcheck

import (
	"bytes"
	"text/template"

	"grimm.is/vrrpsetup/internal/brand"
	"grimm.is/vrrpsetup/internal/cluster"
)

// TimeSyncTool is the command queried for the leap status.
const TimeSyncTool = "chronyc"

// TimeSyncPackage provides TimeSyncTool.
const TimeSyncPackage = "chrony"

const scriptTemplate = `#!/bin/sh
# Health probe for {{.Daemon}}, generated by {{.Generator}}.
# Exit 0 when every condition holds, 1 otherwise. Do not edit: re-running
# {{.Generator}} overwrites this file.

# Resolver must be active.
systemctl is-active --quiet {{.Unit}} || exit 1
{{- if .TimeSync}}

# Clock must be synchronized.
command -v {{.Tool}} >/dev/null 2>&1 || exit 1
{{.Tool}} tracking 2>/dev/null | grep -Eq '^Leap status[[:space:]]*:[[:space:]]*Normal' || exit 1
{{- end}}

exit 0
`

var tmpl = template.Must(template.New("healthcheck").Parse(scriptTemplate))

type scriptData struct {
	Daemon    string
	Generator string
	Unit      string
	TimeSync  bool
	Tool      string
}

// Synthesize returns the probe script for policy. It has no side effects
// and returns byte-identical output for equal policies.
func Synthesize(policy cluster.HealthCheckPolicy) string {
	data := scriptData{
		Daemon:    brand.DaemonName,
		Generator: brand.Name,
		Unit:      policy.Unit(),
		TimeSync:  policy.TimeSyncMonitoring,
		Tool:      TimeSyncTool,
	}

	var buf bytes.Buffer
	// The template is fixed and the data holds only strings and a bool, so
	// Execute cannot fail.
	if err := tmpl.Execute(&buf, data); err != nil {
		panic("healthcheck: " + err.Error())
	}
	return buf.String()
}

// Packages returns the extra packages the policy needs on the host.
func Packages(policy cluster.HealthCheckPolicy) []string {
	if policy.TimeSyncMonitoring {
		return []string{TimeSyncPackage}
	}
	return nil
}
