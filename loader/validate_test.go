package loader

import (
	"errors"
	"strings"
	"testing"

	"github.com/nathoo/trailhead/engine/state"
	"github.com/nathoo/trailhead/types"
)

// validWorld returns a minimal valid World for testing.
func validWorld() *state.World {
	return &state.World{
		Game: types.GameDef{
			Title: "Test",
			Start: "hall",
		},
		Locations: map[string]types.Location{
			"hall": {
				ID:          "hall",
				Name:        "Hall",
				Description: "A hall.",
			},
		},
		Enemies: map[string]types.Enemy{},
	}
}

func validationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	return ve
}

func TestValidate_ValidWorld(t *testing.T) {
	if err := validate(validWorld()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_MissingStartLocation(t *testing.T) {
	w := validWorld()
	w.Game.Start = "nowhere"

	ve := validationError(t, validate(w))
	assertContains(t, ve.Errors, "start location")
}

func TestValidate_EmptyTitleAndStart(t *testing.T) {
	w := validWorld()
	w.Game.Title = ""
	w.Game.Start = ""

	ve := validationError(t, validate(w))
	assertContains(t, ve.Errors, "Game.title is required")
	assertContains(t, ve.Errors, "Game.start is required")
}

func TestValidate_InvalidExitTarget(t *testing.T) {
	w := validWorld()
	hall := w.Locations["hall"]
	hall.Exits = map[string]string{"north": "void"}
	w.Locations["hall"] = hall

	ve := validationError(t, validate(w))
	assertContains(t, ve.Errors, "undefined location")
}

func TestValidate_DuplicateQuestID(t *testing.T) {
	w := validWorld()
	w.Locations["hall"] = types.Location{
		ID: "hall", Name: "Hall",
		Quests: []types.Quest{{ID: "q1", Description: "One"}},
	}
	w.Locations["yard"] = types.Location{
		ID: "yard", Name: "Yard",
		Quests: []types.Quest{{ID: "q1", Description: "Also one"}},
	}

	ve := validationError(t, validate(w))
	assertContains(t, ve.Errors, "duplicate quest ID")
}

func TestValidate_QuestWithoutID(t *testing.T) {
	w := validWorld()
	hall := w.Locations["hall"]
	hall.Quests = []types.Quest{{Description: "Anonymous"}}
	w.Locations["hall"] = hall

	ve := validationError(t, validate(w))
	assertContains(t, ve.Errors, "has no id")
}

func TestValidate_UndefinedEncounter(t *testing.T) {
	w := validWorld()
	w.Game.Encounter = "dragon"

	ve := validationError(t, validate(w))
	assertContains(t, ve.Errors, "encounter enemy")
}

func TestValidate_EnemyHealth(t *testing.T) {
	w := validWorld()
	w.Enemies["ghost"] = types.Enemy{ID: "ghost", Name: "Ghost", Health: 0}

	ve := validationError(t, validate(w))
	assertContains(t, ve.Errors, "positive health")
}

func TestCheck_Warnings(t *testing.T) {
	w := validWorld()
	w.Locations["yard"] = types.Location{
		ID:     "yard",
		Quests: []types.Quest{{ID: "find_key", Item: "key"}},
	}

	ve := check(w)
	if len(ve.Errors) != 0 {
		t.Fatalf("warnings alone must not fail validation: %v", ve.Errors)
	}
	assertContains(t, ve.Warnings, `location "yard" has no name`)
	assertContains(t, ve.Warnings, `item "key" is not placed`)
}

func TestCheck_StableOrder(t *testing.T) {
	w := validWorld()
	w.Locations["a"] = types.Location{ID: "a", Name: "A", Exits: map[string]string{"x": "nowhere"}}
	w.Locations["b"] = types.Location{ID: "b", Name: "B", Exits: map[string]string{"y": "nowhere"}}

	first := strings.Join(check(w).Errors, "|")
	for i := 0; i < 5; i++ {
		if got := strings.Join(check(w).Errors, "|"); got != first {
			t.Fatalf("error order changed: %q vs %q", got, first)
		}
	}
}

// assertContains checks that at least one string in the slice contains substr.
func assertContains(t *testing.T, strs []string, substr string) {
	t.Helper()
	for _, s := range strs {
		if strings.Contains(s, substr) {
			return
		}
	}
	t.Errorf("expected one of %v to contain %q", strs, substr)
}
