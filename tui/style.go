package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleLocation = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	styleQuest = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleYouSee = lipgloss.NewStyle().
			Bold(true)

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	styleSuccess = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindLocation
	kindQuest
	kindYouSee
	kindExits
	kindCombat
	kindSuccess
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Location:"):
		return kindLocation
	case strings.HasPrefix(line, "Quest complete:"),
		strings.HasPrefix(line, "You defeated"):
		return kindSuccess
	case strings.HasPrefix(line, "Quest:"):
		return kindQuest
	case strings.HasPrefix(line, "You see:"):
		return kindYouSee
	case strings.HasPrefix(line, "Exits:"):
		return kindExits
	case strings.HasPrefix(line, "You encounter"),
		strings.HasPrefix(line, "Enemy health:"),
		strings.HasPrefix(line, "Player health:"),
		strings.HasPrefix(line, "Do you want to attack"),
		strings.HasSuffix(line, "attacks you!"):
		return kindCombat
	case strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "I don't understand"),
		strings.HasPrefix(line, "There is no"),
		strings.HasPrefix(line, "Failed to"):
		return kindError
	default:
		return kindNarrative
	}
}

// styledYouSee renders "You see: item1, item2" with item names bold.
func styledYouSee(line string) string {
	const prefix = "You see: "
	if !strings.HasPrefix(line, prefix) {
		return styleNarrative.Render(line)
	}
	return styleNarrative.Render(prefix) + styleYouSee.Render(line[len(prefix):])
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
