// Package types defines the shared data structures for the Trailhead engine.
// This package contains only type definitions, no logic and no methods.
package types

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb   string
	Object string // optional
}

// Effect is a single atomic state mutation instruction.
type Effect struct {
	Type   string
	Params map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Effects []Effect
	Output  []string
}

// Quest is a textual objective attached to a location. Completion lives in
// Player.CompletedQuests, keyed by ID.
type Quest struct {
	ID          string
	Description string
	Concept     string // topic the quest teaches
	Item        string // item that completes the quest when taken, optional
}

// Location is a named place in the world graph.
type Location struct {
	ID          string
	Name        string
	Description string
	Quests      []Quest
	Items       []string
	Exits       map[string]string // direction → location ID
}

// Enemy is the opponent of a scripted encounter.
// Damage is carried from the world definition but nothing consumes it.
type Enemy struct {
	ID     string
	Name   string
	Health int
	Damage int
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title      string
	Start      string // starting location ID
	PlayerName string
	Intro      string
	Encounter  string // enemy ID fought before exploration, optional
}

// Player holds the player's runtime state.
type Player struct {
	Name            string   `json:"name"`
	Location        string   `json:"current_location"`
	Inventory       []string `json:"inventory"`
	CompletedQuests []string `json:"completed_quests"`
}

// GameState is the flat document shared by the state service.
type GameState struct {
	PlayerName      string `json:"player_name"`
	CurrentLocation string `json:"current_location"`
}
