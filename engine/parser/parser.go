// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/trailhead/types"
)

var directionExpansions = map[string]string{
	"n": "north",
	"s": "south",
	"e": "east",
	"w": "west",
	"u": "up",
	"d": "down",
}

// Full direction names that are standalone shortcuts for "go <dir>".
var directionNames = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
	"up": true, "down": true,
}

var verbAliases = map[string]string{
	// Movement
	"walk": "go",
	"move": "go",

	// Take
	"get":  "take",
	"grab": "take",

	// Session
	"exit": "quit",
	"q":    "quit",

	// Miscellaneous
	"inv": "inventory",
	"i":   "inventory",
	"l":   "look",
	"h":   "help",
	"?":   "help",
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	words := strings.Fields(strings.ToLower(input))
	if len(words) == 0 {
		return types.Intent{}
	}

	// Direction shortcut: bare "n", "south", etc. → go <direction>
	if len(words) == 1 {
		if dir, ok := directionExpansions[words[0]]; ok {
			return types.Intent{Verb: "go", Object: dir}
		}
		if directionNames[words[0]] {
			return types.Intent{Verb: "go", Object: words[0]}
		}
	}

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripArticles(words[1:])

	// Only the first word after "go" names the direction.
	if verb == "go" {
		if len(rest) == 0 {
			return types.Intent{Verb: verb}
		}
		return types.Intent{Verb: verb, Object: rest[0]}
	}

	return types.Intent{
		Verb:   verb,
		Object: strings.Join(rest, " "),
	}
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}
