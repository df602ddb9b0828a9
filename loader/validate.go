package loader

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/nathoo/trailhead/engine/state"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled world for referential integrity.
func validate(w *state.World) error {
	ve := check(w)

	// Print warnings to stderr.
	for _, msg := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// check gathers every problem with the world in a stable order.
func check(w *state.World) *ValidationError {
	ve := &ValidationError{}

	if w.Game.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}

	if w.Game.Start == "" {
		ve.Errors = append(ve.Errors, "Game.start is required")
	} else if _, ok := w.Locations[w.Game.Start]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start location %q not found in defined locations", w.Game.Start))
	}

	if w.Game.Encounter != "" {
		if _, ok := w.Enemies[w.Game.Encounter]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"encounter enemy %q not found in defined enemies", w.Game.Encounter))
		}
	}

	questIDs := map[string]string{}
	for _, id := range sortedKeys(w.Locations) {
		loc := w.Locations[id]

		if loc.Name == "" {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("location %q has no name", id))
		}

		for _, dir := range sortedKeys(loc.Exits) {
			target := loc.Exits[dir]
			if _, ok := w.Locations[target]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"location %q exit %q points to undefined location %q", id, dir, target))
			}
		}

		for i, q := range loc.Quests {
			if q.ID == "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"location %q quest %d has no id", id, i+1))
				continue
			}
			if other, dup := questIDs[q.ID]; dup {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"duplicate quest ID %q in %q and %q", q.ID, other, id))
			}
			questIDs[q.ID] = id

			if q.Item != "" && !slices.Contains(loc.Items, q.Item) {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"quest %q item %q is not placed in location %q", q.ID, q.Item, id))
			}
		}
	}

	for _, id := range sortedKeys(w.Enemies) {
		if w.Enemies[id].Health <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"enemy %q must have positive health", id))
		}
	}

	return ve
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
