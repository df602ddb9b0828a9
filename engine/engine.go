// Package engine provides the Step() orchestrator that wires together
// parsing, the scripted encounter and effects into a single turn.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/trailhead/engine/effects"
	"github.com/nathoo/trailhead/engine/parser"
	"github.com/nathoo/trailhead/engine/save"
	"github.com/nathoo/trailhead/engine/state"
	"github.com/nathoo/trailhead/types"
)

// Engine holds the world map, the player and the pending encounter.
type Engine struct {
	World     *state.World
	Player    *types.Player
	Encounter *Encounter // nil once there is nothing to fight
}

// New creates a new engine from a world. If the game names an encounter
// enemy that exists, the encounter runs before exploration.
func New(w *state.World) *Engine {
	e := &Engine{
		World:  w,
		Player: state.NewPlayer(w),
	}
	if id := w.Game.Encounter; id != "" {
		if enemy, ok := w.Enemy(id); ok {
			e.Encounter = NewEncounter(enemy)
		}
	}
	return e
}

// Start returns the opening text: the game intro and, if there is one,
// the encounter announcement.
func (e *Engine) Start() []string {
	var out []string
	if e.World.Game.Intro != "" {
		out = append(out, e.World.Game.Intro, "")
	}
	if e.InEncounter() {
		out = append(out, e.Encounter.Intro()...)
	}
	return out
}

// InEncounter returns true while the scripted fight is unresolved.
func (e *Engine) InEncounter() bool {
	return e.Encounter != nil && !e.Encounter.Done()
}

// ReplacePlayer installs a player wholesale, as after a load. It does not
// validate the player; it reports whether the location is on the map.
func (e *Engine) ReplacePlayer(p *types.Player) bool {
	e.Player = p
	_, ok := e.World.Location(p.Location)
	return ok
}

// SaveTo writes the player to path.
func (e *Engine) SaveTo(path string) error {
	return save.WriteFile(path, e.Player)
}

// LoadFrom replaces the player with the one saved at path. On error the
// current player is kept. The returned bool is false when the loaded
// location is not on the map.
func (e *Engine) LoadFrom(path string) (bool, error) {
	p, err := save.ReadFile(path)
	if err != nil {
		return false, err
	}
	return e.ReplacePlayer(p), nil
}

// Step processes one player command and returns the result.
func (e *Engine) Step(input string) types.Result {
	if e.InEncounter() {
		return e.Encounter.Step(input)
	}

	var result types.Result
	intent := parser.Parse(input)

	var effs []types.Effect
	var out []string
	switch intent.Verb {
	case "go":
		effs, out = e.builtinGo(intent.Object)
	case "inventory":
		out = e.builtinInventory()
	case "take":
		effs, out = e.builtinTake(intent.Object)
	case "look":
		// The location is rendered after every command anyway.
	case "help":
		out = helpLines()
	default:
		out = []string{"I don't understand that command."}
	}

	result.Output = append(result.Output, out...)
	result.Effects = append(result.Effects, effs...)
	result.Output = append(result.Output, effects.Apply(e.World, e.Player, effs)...)
	return result
}

func (e *Engine) builtinGo(direction string) ([]types.Effect, []string) {
	target, ok := state.Destination(e.World, e.Player.Location, direction)
	if !ok {
		return nil, []string{"You can't go that way!"}
	}
	return []types.Effect{
		{Type: effects.MovePlayer, Params: map[string]any{"location": target}},
	}, nil
}

func (e *Engine) builtinInventory() []string {
	inv := e.Player.Inventory
	if len(inv) == 0 {
		return []string{"Your inventory is empty."}
	}
	return []string{"Inventory: " + strings.Join(inv, ", ")}
}

func (e *Engine) builtinTake(item string) ([]types.Effect, []string) {
	if item == "" {
		return nil, []string{"Take what?"}
	}
	if state.HasItem(e.Player, item) {
		return nil, []string{"You already have that."}
	}
	if !state.ItemAt(e.World, e.Player.Location, item) {
		return nil, []string{fmt.Sprintf("There is no %s here.", item)}
	}

	effs := []types.Effect{
		{Type: effects.GiveItem, Params: map[string]any{"item": item}},
	}
	for _, q := range state.PendingQuests(e.World, e.Player, e.Player.Location) {
		if q.Item == item {
			effs = append(effs, types.Effect{
				Type:   effects.CompleteQuest,
				Params: map[string]any{"quest": q.ID},
			})
		}
	}
	return effs, []string{fmt.Sprintf("You take the %s.", item)}
}

// Describe renders the player's current location: name, description,
// pending quests and exits.
func (e *Engine) Describe() []string {
	loc, ok := e.World.Location(e.Player.Location)
	if !ok {
		return []string{"You are somewhere unknown."}
	}

	output := []string{
		"Location: " + loc.Name,
		loc.Description,
	}

	for _, q := range state.PendingQuests(e.World, e.Player, loc.ID) {
		output = append(output, "Quest: "+q.Description)
	}

	if len(loc.Items) > 0 {
		var seen []string
		for _, item := range loc.Items {
			if !state.HasItem(e.Player, item) {
				seen = append(seen, item)
			}
		}
		if len(seen) > 0 {
			output = append(output, "You see: "+strings.Join(seen, ", "))
		}
	}

	if dirs := ExitDirections(e.World, loc.ID); len(dirs) > 0 {
		output = append(output, "Exits: "+strings.Join(dirs, ", "))
	}

	return output
}

// ExitDirections returns the sorted exit directions of a location.
func ExitDirections(w *state.World, locationID string) []string {
	exits := state.Exits(w, locationID)
	dirs := make([]string, 0, len(exits))
	for dir := range exits {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

func helpLines() []string {
	return []string{
		"Commands:",
		"  go <direction>  Move (or just type n/s/e/w/u/d)",
		"  take <item>     Pick something up",
		"  inventory (i)   Check what you're carrying",
		"  look (l)        Describe the location",
		"  save / load     Save or restore your progress",
		"  quit            Leave the game",
	}
}
