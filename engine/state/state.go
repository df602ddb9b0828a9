// Package state holds the immutable world map and the helpers that read and
// mutate player state. Every lookup reports whether it found something;
// nothing here assumes a player's location exists on the map.
package state

import "github.com/nathoo/trailhead/types"

// DefaultPlayerName is used when the game definition does not name the player.
const DefaultPlayerName = "Adventurer"

// World holds the immutable game definitions loaded from Lua.
type World struct {
	Game      types.GameDef
	Locations map[string]types.Location
	Enemies   map[string]types.Enemy
}

// Location returns the location with the given ID.
func (w *World) Location(id string) (types.Location, bool) {
	if w == nil {
		return types.Location{}, false
	}
	loc, ok := w.Locations[id]
	return loc, ok
}

// Enemy returns the enemy with the given ID.
func (w *World) Enemy(id string) (types.Enemy, bool) {
	if w == nil {
		return types.Enemy{}, false
	}
	e, ok := w.Enemies[id]
	return e, ok
}

// NewPlayer creates a fresh player standing at the world's start location.
func NewPlayer(w *World) *types.Player {
	name := w.Game.PlayerName
	if name == "" {
		name = DefaultPlayerName
	}
	return &types.Player{
		Name:            name,
		Location:        w.Game.Start,
		Inventory:       []string{},
		CompletedQuests: []string{},
	}
}

// Exits returns a copy of the exits of a location, or nil if the location
// is not on the map.
func Exits(w *World, locationID string) map[string]string {
	loc, ok := w.Location(locationID)
	if !ok {
		return nil
	}
	exits := make(map[string]string, len(loc.Exits))
	for dir, target := range loc.Exits {
		exits[dir] = target
	}
	return exits
}

// Destination resolves a direction from a location.
func Destination(w *World, locationID, direction string) (string, bool) {
	loc, ok := w.Location(locationID)
	if !ok || direction == "" {
		return "", false
	}
	target, ok := loc.Exits[direction]
	return target, ok
}

// HasItem returns true if the player has the given item in inventory.
func HasItem(p *types.Player, item string) bool {
	for _, id := range p.Inventory {
		if id == item {
			return true
		}
	}
	return false
}

// ItemAt returns true if the item is listed at the location.
func ItemAt(w *World, locationID, item string) bool {
	loc, ok := w.Location(locationID)
	if !ok {
		return false
	}
	for _, id := range loc.Items {
		if id == item {
			return true
		}
	}
	return false
}

// QuestCompleted returns true if the quest ID is in the completed set.
func QuestCompleted(p *types.Player, questID string) bool {
	for _, id := range p.CompletedQuests {
		if id == questID {
			return true
		}
	}
	return false
}

// CompleteQuest adds a quest ID to the completed set. Returns false if it
// was already there.
func CompleteQuest(p *types.Player, questID string) bool {
	if QuestCompleted(p, questID) {
		return false
	}
	p.CompletedQuests = append(p.CompletedQuests, questID)
	return true
}

// PendingQuests returns the quests at a location the player has not
// completed, in definition order.
func PendingQuests(w *World, p *types.Player, locationID string) []types.Quest {
	loc, ok := w.Location(locationID)
	if !ok {
		return nil
	}
	var pending []types.Quest
	for _, q := range loc.Quests {
		if !QuestCompleted(p, q.ID) {
			pending = append(pending, q)
		}
	}
	return pending
}

// Quest finds a quest anywhere in the world by ID.
func Quest(w *World, questID string) (types.Quest, bool) {
	if w == nil {
		return types.Quest{}, false
	}
	for _, loc := range w.Locations {
		for _, q := range loc.Quests {
			if q.ID == questID {
				return q, true
			}
		}
	}
	return types.Quest{}, false
}
