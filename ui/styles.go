// Package ui renders reader items and help text as interactive panels.
package ui

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors used throughout the panels
var (
	colorAccent     = lipgloss.Color("141")
	colorText       = lipgloss.Color("252")
	colorTextMuted  = lipgloss.Color("245")
	colorTextBright = lipgloss.Color("15")
	colorBadge      = lipgloss.Color("214")
	colorLabel      = lipgloss.Color("42")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	textStyle = lipgloss.NewStyle().
			Foreground(colorText)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Italic(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorTextBright).
			Background(colorAccent).
			Bold(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorBadge)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorLabel)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorTextBright).
			Background(lipgloss.Color("62"))
)
