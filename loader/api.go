package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the world constructors as globals.
//
//	Game { title = "...", start = "...", player = "...", intro = "...", encounter = "..." }
//	Location "id" { name = "...", description = "...", exits = {...}, items = {...}, quests = {...} }
//	Quest "id" { description = "...", concept = "...", item = "..." }
//	Enemy "id" { name = "...", health = 30, damage = 10 }
func registerAPI(L *lua.LState, coll *collector) {
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Location "id" { ... }: curried, Location("id") returns a function that takes a table.
	L.SetGlobal("Location", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.locations = append(coll.locations, rawLocation{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Quest "id" { ... }: returns the table tagged with its ID so it can be
	// listed inside a location's quests.
	L.SetGlobal("Quest", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			tbl.RawSetString("id", lua.LString(id))
			L.Push(tbl)
			return 1
		}))
		return 1
	}))

	L.SetGlobal("Enemy", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.enemies = append(coll.enemies, rawEnemy{id: id, table: tbl})
			return 0
		}))
		return 1
	}))
}
