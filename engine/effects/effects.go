// Package effects implements centralized player state mutation via Apply.
// Every effect type is one atomic operation. No logic in effects.
package effects

import (
	"fmt"
	"strings"

	"github.com/nathoo/trailhead/engine/state"
	"github.com/nathoo/trailhead/types"
)

// Effect type names.
const (
	Say           = "say"
	MovePlayer    = "move_player"
	GiveItem      = "give_item"
	CompleteQuest = "complete_quest"
)

// Apply applies a list of effects to the player, mutating it.
// Returns output text collected. Unknown effect types are ignored.
func Apply(w *state.World, p *types.Player, effects []types.Effect) []string {
	var output []string

	for _, eff := range effects {
		switch eff.Type {
		case Say:
			text, _ := eff.Params["text"].(string)
			output = append(output, interpolate(text, p))

		case MovePlayer:
			loc, _ := eff.Params["location"].(string)
			p.Location = loc

		case GiveItem:
			item, _ := eff.Params["item"].(string)
			if item != "" && !state.HasItem(p, item) {
				p.Inventory = append(p.Inventory, item)
			}

		case CompleteQuest:
			id, _ := eff.Params["quest"].(string)
			if id == "" || !state.CompleteQuest(p, id) {
				continue
			}
			if q, ok := state.Quest(w, id); ok {
				output = append(output, fmt.Sprintf("Quest complete: %s", q.Description))
			}
		}
	}

	return output
}

// interpolate replaces {player} with the player's name.
func interpolate(text string, p *types.Player) string {
	return strings.ReplaceAll(text, "{player}", p.Name)
}
