package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/trailhead/engine"
	"github.com/nathoo/trailhead/engine/state"
)

var titleCase = cases.Title(language.English)

// locationDisplayName returns the location's name, or one derived from
// its ID when the location has no name or is not on the map.
// "dark_forest" -> "Dark Forest".
func locationDisplayName(w *state.World, id string) string {
	if loc, ok := w.Location(id); ok && loc.Name != "" {
		return loc.Name
	}
	return titleCase.String(strings.ReplaceAll(id, "_", " "))
}

// questTotals counts the player's completed quests against every quest
// on the map.
func questTotals(m Model) (done, total int) {
	for _, loc := range m.engine.World.Locations {
		for _, q := range loc.Quests {
			total++
			if state.QuestCompleted(m.engine.Player, q.ID) {
				done++
			}
		}
	}
	return done, total
}

// renderStatusBar produces a full-width inverted status line showing the
// current location, exits, inventory and quest progress.
func (m Model) renderStatusBar() string {
	p := m.engine.Player

	name := locationDisplayName(m.engine.World, p.Location)
	exitStr := strings.Join(engine.ExitDirections(m.engine.World, p.Location), ",")
	if m.engine.InEncounter() {
		exitStr = "-"
	}

	done, total := questTotals(m)
	left := fmt.Sprintf(" %s | Exits: %s", name, exitStr)
	right := fmt.Sprintf("Q:%d/%d ", done, total)

	// Show inventory items if they fit, otherwise just count.
	if invCount := len(p.Inventory); invCount > 0 {
		candidate := fmt.Sprintf("Inv: %s | Q:%d/%d ", strings.Join(p.Inventory, ", "), done, total)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | Q:%d/%d ", invCount, done, total)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
