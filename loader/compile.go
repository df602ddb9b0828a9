// Package loader loads Lua world content into Go structs at startup.
// The Lua VM is discarded after loading; nothing runs Lua during play.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/trailhead/engine/state"
	"github.com/nathoo/trailhead/types"
	lua "github.com/yuin/gopher-lua"
)

// rawLocation holds a location table before compilation.
type rawLocation struct {
	id    string
	table *lua.LTable
}

// rawEnemy holds an enemy table before compilation.
type rawEnemy struct {
	id    string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// tableToStringList converts the array part of a Lua table to a []string,
// skipping non-string values.
func tableToStringList(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts all collected Lua data into a World.
func compile(coll *collector) (*state.World, error) {
	w := &state.World{
		Locations: map[string]types.Location{},
		Enemies:   map[string]types.Enemy{},
	}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	w.Game = compileGame(coll.game)

	for _, raw := range coll.locations {
		if _, dup := w.Locations[raw.id]; dup {
			return nil, fmt.Errorf("location %q defined more than once", raw.id)
		}
		w.Locations[raw.id] = compileLocation(raw)
	}

	for _, raw := range coll.enemies {
		if _, dup := w.Enemies[raw.id]; dup {
			return nil, fmt.Errorf("enemy %q defined more than once", raw.id)
		}
		w.Enemies[raw.id] = types.Enemy{
			ID:     raw.id,
			Name:   getString(raw.table, "name"),
			Health: getInt(raw.table, "health"),
			Damage: getInt(raw.table, "damage"),
		}
	}

	return w, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:      getString(tbl, "title"),
		Start:      getString(tbl, "start"),
		PlayerName: getString(tbl, "player"),
		Intro:      getString(tbl, "intro"),
		Encounter:  getString(tbl, "encounter"),
	}
}

func compileLocation(raw rawLocation) types.Location {
	tbl := raw.table
	loc := types.Location{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Items:       tableToStringList(getTable(tbl, "items")),
		Exits:       tableToStringMap(getTable(tbl, "exits")),
	}

	// Quests keep their declaration order.
	if quests := getTable(tbl, "quests"); quests != nil {
		for i := 1; i <= quests.MaxN(); i++ {
			qt, ok := quests.RawGetInt(i).(*lua.LTable)
			if !ok {
				continue
			}
			loc.Quests = append(loc.Quests, types.Quest{
				ID:          getString(qt, "id"),
				Description: getString(qt, "description"),
				Concept:     getString(qt, "concept"),
				Item:        getString(qt, "item"),
			})
		}
	}

	return loc
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
