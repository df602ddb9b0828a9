package loader

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
)

// newTestVM creates a sandboxed Lua VM with the API registered and a fresh collector.
func newTestVM() (*lua.LState, *collector) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	coll := &collector{}
	registerAPI(L, coll)
	return L, coll
}

func TestCompileGame(t *testing.T) {
	L, _ := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		return {
			title = "Test Game",
			start = "hall",
			player = "Bob",
			intro = "Welcome!",
			encounter = "rat"
		}
	`); err != nil {
		t.Fatal(err)
	}

	game := compileGame(L.CheckTable(-1))

	if game.Title != "Test Game" {
		t.Errorf("Title = %q, want %q", game.Title, "Test Game")
	}
	if game.Start != "hall" {
		t.Errorf("Start = %q, want %q", game.Start, "hall")
	}
	if game.PlayerName != "Bob" {
		t.Errorf("PlayerName = %q, want %q", game.PlayerName, "Bob")
	}
	if game.Intro != "Welcome!" {
		t.Errorf("Intro = %q, want %q", game.Intro, "Welcome!")
	}
	if game.Encounter != "rat" {
		t.Errorf("Encounter = %q, want %q", game.Encounter, "rat")
	}
}

func TestCompileLocation_WithQuests(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Location "cellar" {
			name = "Cellar",
			description = "Damp and dark.",
			items = { "lamp", 42, "rope" },
			quests = {
				Quest "light" { description = "Find a light.", concept = "loops", item = "lamp" },
				Quest "climb" { description = "Find a rope.", item = "rope" },
			},
			exits = { up = "kitchen" },
		}
	`); err != nil {
		t.Fatal(err)
	}

	if len(coll.locations) != 1 {
		t.Fatalf("expected 1 location, got %d", len(coll.locations))
	}
	loc := compileLocation(coll.locations[0])

	if loc.ID != "cellar" || loc.Name != "Cellar" {
		t.Errorf("ID/Name = %q/%q", loc.ID, loc.Name)
	}
	if len(loc.Items) != 2 || loc.Items[0] != "lamp" || loc.Items[1] != "rope" {
		t.Errorf("Items = %v, want [lamp rope]", loc.Items)
	}
	if loc.Exits["up"] != "kitchen" {
		t.Errorf("Exits = %v", loc.Exits)
	}
	if len(loc.Quests) != 2 {
		t.Fatalf("expected 2 quests, got %d", len(loc.Quests))
	}
	if loc.Quests[0].ID != "light" || loc.Quests[1].ID != "climb" {
		t.Errorf("quest order = %q, %q", loc.Quests[0].ID, loc.Quests[1].ID)
	}
	if loc.Quests[0].Concept != "loops" || loc.Quests[0].Item != "lamp" {
		t.Errorf("quest = %+v", loc.Quests[0])
	}
}

func TestCompile_Enemy(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Game { title = "T", start = "a" }
		Enemy "rat" { name = "Rat", health = 5, damage = 1 }
	`); err != nil {
		t.Fatal(err)
	}

	w, err := compile(coll)
	if err != nil {
		t.Fatal(err)
	}
	rat, ok := w.Enemy("rat")
	if !ok {
		t.Fatal("enemy rat not found")
	}
	if rat.Name != "Rat" || rat.Health != 5 || rat.Damage != 1 {
		t.Errorf("rat = %+v", rat)
	}
}

func TestCompile_DuplicateLocation(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Game { title = "T", start = "a" }
		Location "a" { name = "A" }
		Location "a" { name = "Again" }
	`); err != nil {
		t.Fatal(err)
	}

	if _, err := compile(coll); err == nil {
		t.Fatal("expected error for duplicate location")
	}
}

func TestCompile_NoGame(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`Location "a" { name = "A" }`); err != nil {
		t.Fatal(err)
	}
	if _, err := compile(coll); err == nil {
		t.Fatal("expected error without Game{}")
	}
}

func TestTableToStringList_Nil(t *testing.T) {
	if got := tableToStringList(nil); got != nil {
		t.Errorf("tableToStringList(nil) = %v", got)
	}
}
