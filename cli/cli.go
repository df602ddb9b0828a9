// Package cli provides the plain terminal loop for Trailhead: the opening
// encounter, then render, prompt and dispatch until the player quits.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/trailhead/engine"
	"github.com/nathoo/trailhead/engine/parser"
	"github.com/nathoo/trailhead/engine/save"
	"github.com/nathoo/trailhead/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	SavePath  string
	Trace     bool
	EchoInput bool // echo each input line after the prompt (for script playback)
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine:   eng,
		In:       os.Stdin,
		Out:      os.Stdout,
		SavePath: save.DefaultPath,
	}
}

// Run plays one session. It shows the intro, resolves the encounter, then
// loops: describe → prompt → input → dispatch. End of input counts as quit.
func (c *CLI) Run() {
	for _, line := range c.Engine.Start() {
		c.printLine(line)
	}

	scanner := bufio.NewScanner(c.In)
	next := func() (string, bool) {
		for {
			c.print("> ")
			if !scanner.Scan() {
				return "", false
			}
			input := strings.TrimSpace(scanner.Text())
			// Skip comment lines (for script files).
			if strings.HasPrefix(input, "#") {
				continue
			}
			if c.EchoInput {
				c.printLine(input)
			}
			return input, true
		}
	}

	for c.Engine.InEncounter() {
		input, ok := next()
		if !ok {
			c.quit()
			return
		}
		c.printResult(c.Engine.Step(input))
	}
	if c.Engine.Encounter != nil {
		c.printLine("")
	}

	for {
		for _, line := range c.Engine.Describe() {
			c.printLine(line)
		}

		input, ok := next()
		if !ok {
			c.quit()
			return
		}

		switch parser.Parse(input).Verb {
		case "quit":
			c.quit()
			return
		case "save":
			c.cmdSave()
		case "load":
			c.cmdLoad()
		default:
			result := c.Engine.Step(input)
			c.printResult(result)
			if c.Trace {
				c.printTrace(result)
			}
		}
		c.printLine("")
	}
}

func (c *CLI) quit() {
	c.printLine("")
	c.printLine("Thank you for playing!")
}

func (c *CLI) cmdSave() {
	if err := c.Engine.SaveTo(c.SavePath); err != nil {
		c.printLine(fmt.Sprintf("Failed to save game: %v", err))
		return
	}
	c.printLine("Game saved.")
}

func (c *CLI) cmdLoad() {
	known, err := c.Engine.LoadFrom(c.SavePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.printLine("Failed to load game: no saved game found.")
			return
		}
		c.printLine(fmt.Sprintf("Failed to load game: %v", err))
		return
	}
	c.printLine("Game loaded.")
	if !known {
		c.printLine(fmt.Sprintf("(The saved location %q is not on this map.)", c.Engine.Player.Location))
	}
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Effects) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Effects: %d", len(result.Effects)))
		for _, e := range result.Effects {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Params))
		}
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
