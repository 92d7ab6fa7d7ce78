package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/charlie0129/breathe/pkg/technique"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#AAAAAA"})

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#888888"})

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})

	farewellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	phaseStyles = map[technique.Kind]lipgloss.Style{
		technique.KindInhale: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3FB950")),
		technique.KindHold:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#58A6FF")),
		technique.KindExhale: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F85149")),
	}
)
