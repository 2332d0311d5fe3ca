// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	StyleTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	StyleSubtitle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	StyleOK       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	StyleWarn     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	StyleFail     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	StyleDiffAdd  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	StyleDiffDel  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	StyleComment  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true)
	StyleCard     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)
