// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"grimm.is/vrrpsetup/internal/apply"
	"grimm.is/vrrpsetup/internal/cluster"
	"grimm.is/vrrpsetup/internal/probe"
)

// RenderSummary describes the model in a few lines. The secret is never
// shown.
func RenderSummary(m *cluster.Model) string {
	lines := []string{
		StyleTitle.Render("Summary"),
		fmt.Sprintf("Role:             %s (%s)", m.Node.Role, m.Node.Role.KeepalivedState()),
		fmt.Sprintf("Interface:        %s", m.Node.Interface),
		fmt.Sprintf("Priority:         %d", m.Node.Priority),
	}
	if m.Node.Role == cluster.RoleSecondary {
		lines = append(lines, fmt.Sprintf("Keep on recovery: %v", m.Node.NoPreempt))
	}
	lines = append(lines,
		fmt.Sprintf("Group id:         %d", m.Shared.GroupID),
		fmt.Sprintf("Floating address: %s", m.Shared.CIDR()),
		fmt.Sprintf("Health probe:     %s active", m.Health.Unit()),
	)
	if m.Health.TimeSyncMonitoring {
		lines = append(lines, "                  clock synchronized (chrony)")
	}
	return StyleCard.Render(strings.Join(lines, "\n"))
}

// RenderDiff colours a unified diff line by line.
func RenderDiff(diff string) string {
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			lines[i] = StyleComment.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = StyleDiffAdd.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = StyleDiffDel.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func renderChange(c apply.FileChange) string {
	switch {
	case !c.Exists:
		return StyleOK.Render("create ") + c.Path
	case !c.Changed():
		return StyleSubtitle.Render("keep   ") + c.Path + StyleSubtitle.Render(" (unchanged)")
	default:
		return StyleWarn.Render("update ") + c.Path + "\n" + RenderDiff(c.Diff)
	}
}

// RenderPreview shows what an apply would change, followed by the
// warnings the operator should read before confirming.
func RenderPreview(p *apply.Preview) string {
	parts := []string{
		StyleTitle.Render("Changes"),
		renderChange(p.Script),
		renderChange(p.Config),
	}
	if len(p.Warnings) > 0 {
		parts = append(parts, "", StyleTitle.Render("Notes"))
		for _, w := range p.Warnings {
			parts = append(parts, StyleWarn.Render("⚠ ")+w)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// RenderReport lists the phases of an apply with their outcome.
func RenderReport(r *apply.Report) string {
	var lines []string
	for _, p := range r.Phases {
		var mark string
		switch p.Status {
		case apply.StatusOK:
			mark = StyleOK.Render("✓")
		case apply.StatusWarning:
			mark = StyleWarn.Render("!")
		default:
			mark = StyleFail.Render("✗")
		}
		lines = append(lines, fmt.Sprintf("%s %-8s %s %s", mark, p.Phase, p.Detail,
			StyleSubtitle.Render("("+p.Duration.Round(time.Millisecond).String()+")")))
	}
	if r.Probe != nil {
		lines = append(lines, "", RenderProbe(*r.Probe))
	}
	return strings.Join(lines, "\n")
}

// RenderProbe states the observed role of this node.
func RenderProbe(s probe.Status) string {
	switch s.State {
	case probe.Primary:
		return StyleOK.Render("● primary: ") + s.Message
	case probe.Secondary:
		return StyleOK.Render("○ secondary: ") + s.Message
	default:
		return StyleWarn.Render("? inconclusive: ") + s.Message
	}
}
