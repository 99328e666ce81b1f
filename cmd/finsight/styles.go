package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/marketdata"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	// WarningStyle for non-fatal notices.
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	// UpStyle and DownStyle color the session change.
	UpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	DownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// FormatChange renders the session change with a direction marker.
func FormatChange(change, changePercent float64) string {
	if !types.HasField(change) {
		return "-"
	}

	text := marketdata.FormatPrice(change)
	if types.HasField(changePercent) {
		text += " (" + marketdata.FormatRatio(changePercent) + "%)"
	}

	switch {
	case change > 0:
		return UpStyle.Render("▲ " + text)
	case change < 0:
		return DownStyle.Render("▼ " + text)
	default:
		return text
	}
}
