// Trailhead is a small text adventure: fight the goblin, then explore.
// Usage: trailhead [--version] [--plain] [--script <file>] [--trace] [--save <path>] [world_directory]
package main

import (
	"fmt"
	"os"

	"github.com/nathoo/trailhead/cli"
	"github.com/nathoo/trailhead/engine"
	"github.com/nathoo/trailhead/engine/save"
	"github.com/nathoo/trailhead/engine/state"
	"github.com/nathoo/trailhead/loader"
	"github.com/nathoo/trailhead/tui"
	"github.com/nathoo/trailhead/world"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: trailhead [--version] [--plain] [--script <file>] [--trace] [--save <path>] [world_directory]\n"

func main() {
	plain := false
	trace := false
	savePath := save.DefaultPath
	var worldDir string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("trailhead %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script", "--save":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a file path\n", args[i])
				os.Exit(1)
			}
			if args[i] == "--script" {
				scriptFile = args[i+1]
			} else {
				savePath = args[i+1]
			}
			i++
		case "-h", "--help":
			fmt.Print(usage)
			return
		default:
			if worldDir == "" {
				worldDir = args[i]
			}
		}
	}

	// Load and compile the Lua world; the built-in one unless a directory is given.
	var w *state.World
	var err error
	if worldDir != "" {
		w, err = loader.Load(worldDir)
	} else {
		w, err = loader.LoadFS(world.FS)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading world: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(w)

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.SavePath = savePath
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(eng)
		c.Trace = trace
		c.SavePath = savePath
		c.Run()
		return
	}

	if err := tui.Run(eng, savePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
