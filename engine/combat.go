package engine

import (
	"fmt"

	"github.com/nathoo/trailhead/engine/parser"
	"github.com/nathoo/trailhead/types"
)

// PlayerAttack is the fixed damage of one player attack.
const PlayerAttack = 10

// PlayerHealth is shown during an encounter. The player has no health
// model; enemy damage is never applied.
const PlayerHealth = 100

// Outcome is the state of an encounter.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeVictory
	OutcomeFled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeFled:
		return "fled"
	default:
		return "pending"
	}
}

// combatVerbs maps the commands understood during an encounter.
var combatVerbs = map[string]string{
	"attack": "attack",
	"hit":    "attack",
	"fight":  "attack",
	"run":    "run",
	"flee":   "run",
}

// Encounter is a turn-based fight against a single enemy. The enemy record
// is a copy owned by the encounter and discarded with it.
type Encounter struct {
	Enemy   types.Enemy
	Attacks int
	outcome Outcome
}

// NewEncounter starts an encounter against a copy of the given enemy.
func NewEncounter(enemy types.Enemy) *Encounter {
	return &Encounter{Enemy: enemy}
}

// Done returns true once the enemy is defeated or the player fled.
func (c *Encounter) Done() bool {
	return c.outcome != OutcomePending
}

// Outcome reports how the encounter ended, or OutcomePending.
func (c *Encounter) Outcome() Outcome {
	return c.outcome
}

// Intro announces the enemy and asks for the first move.
func (c *Encounter) Intro() []string {
	out := []string{fmt.Sprintf("You encounter a %s!", c.Enemy.Name)}
	return append(out, c.Prompt()...)
}

// Prompt shows both health lines and asks for a move.
func (c *Encounter) Prompt() []string {
	return []string{
		fmt.Sprintf("Enemy health: %d", c.Enemy.Health),
		fmt.Sprintf("Player health: %d", PlayerHealth),
		"Do you want to attack or run?",
	}
}

// Step resolves one turn. Unrecognised input repeats the turn without an
// enemy counter-attack. While the encounter is pending the output ends
// with the next prompt.
func (c *Encounter) Step(input string) types.Result {
	var result types.Result
	if c.Done() {
		return result
	}

	intent := parser.Parse(input)
	switch combatVerbs[intent.Verb] {
	case "attack":
		c.Attacks++
		c.Enemy.Health -= PlayerAttack
		result.Output = append(result.Output, fmt.Sprintf("You attack the %s!", c.Enemy.Name))
		if c.Enemy.Health <= 0 {
			c.outcome = OutcomeVictory
			result.Output = append(result.Output, fmt.Sprintf("You defeated the %s!", c.Enemy.Name))
			return result
		}
		result.Output = append(result.Output, fmt.Sprintf("The %s attacks you!", c.Enemy.Name))

	case "run":
		c.outcome = OutcomeFled
		result.Output = append(result.Output, fmt.Sprintf("You run away from the %s.", c.Enemy.Name))
		return result

	default:
		result.Output = append(result.Output, "I don't understand that command.")
	}

	result.Output = append(result.Output, c.Prompt()...)
	return result
}
