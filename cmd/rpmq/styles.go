package main

import "github.com/charmbracelet/lipgloss"

// Color palette for table output, tuned for dark terminal backgrounds.
const (
	colorHeader = lipgloss.Color("#7C3AED")
	colorName   = lipgloss.Color("#06B6D4")
	colorSize   = lipgloss.Color("#10B981")
	colorMuted  = lipgloss.Color("#6B7280")
)

var (
	// headerStyle is for table column headers.
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHeader).
			Padding(0, 1)

	// nameStyle is for the package name column.
	nameStyle = lipgloss.NewStyle().
			Foreground(colorName).
			Padding(0, 1)

	// sizeStyle is for the size column, right-aligned.
	sizeStyle = lipgloss.NewStyle().
			Foreground(colorSize).
			Align(lipgloss.Right).
			Padding(0, 1)

	// footerStyle is for the total-count footer under the table.
	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
