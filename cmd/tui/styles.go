package main

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent  = lipgloss.Color("#FF00FF")
	colorInfo    = lipgloss.Color("#00FFFF")
	colorGood    = lipgloss.Color("#00FF00")
	colorBad     = lipgloss.Color("#FF0000")
	colorGraph   = lipgloss.Color("#FFFF00")
	colorMuted   = lipgloss.Color("#666666")
	colorHelp    = lipgloss.Color("#888888")
	colorOnBrand = lipgloss.Color("#FFFFFF")
)

var (
	bold = lipgloss.NewStyle().Bold(true)

	titleStyle  = bold.Foreground(colorAccent).Margin(1, 0, 0, 2)
	headerStyle = bold.Foreground(colorInfo).
			Border(lipgloss.RoundedBorder()).BorderForeground(colorInfo).
			Padding(0, 1)

	activeTabStyle   = bold.Foreground(colorOnBrand).Background(colorAccent).Padding(0, 2)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 2)

	contentStyle  = lipgloss.NewStyle().Margin(1, 0, 0, 2)
	statsBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).BorderForeground(colorGood).
			Padding(1, 2).MarginRight(2)
	graphBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).BorderForeground(colorGraph).
			Padding(1, 2)

	errorStyle   = bold.Foreground(colorBad)
	successStyle = bold.Foreground(colorGood)
	helpStyle    = lipgloss.NewStyle().Foreground(colorHelp).Margin(1, 0, 0, 2)
)
