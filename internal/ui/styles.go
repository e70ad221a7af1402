// Package ui holds the terminal styles shared by the text report and the CLI.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	PrimaryColor   = lipgloss.Color("205") // Pink
	SecondaryColor = lipgloss.Color("241") // Gray
	SuccessColor   = lipgloss.Color("82")  // Green
	ErrorColor     = lipgloss.Color("196") // Red
	WarningColor   = lipgloss.Color("214") // Orange
	MutedColor     = lipgloss.Color("245") // Dimmed text
)

// Text styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SecondaryColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)

// CountBadge is the style for the value count after a section heading.
var CountBadge = lipgloss.NewStyle().
	Foreground(lipgloss.Color("0")).
	Background(SuccessColor).
	Padding(0, 1)

// EmptyBadge is used instead of CountBadge for sections without values.
var EmptyBadge = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(SecondaryColor).
	Padding(0, 1)

// SectionHeading renders a section title followed by its count badge.
func SectionHeading(title string, count int) string {
	badge := CountBadge
	if count == 0 {
		badge = EmptyBadge
	}
	return SectionStyle.Render(title) + " " + badge.Render(fmt.Sprint(count))
}
