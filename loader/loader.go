package loader

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/nathoo/trailhead/engine/state"
	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game      *lua.LTable
	locations []rawLocation
	enemies   []rawEnemy
}

// Load reads all .lua files from dir, compiles them into the world map,
// validates references, and returns the immutable World.
func Load(dir string) (*state.World, error) {
	w, err := LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dir, err)
	}
	return w, nil
}

// LoadFS is Load for any file system; the .lua files must sit at its root.
// The Lua VM is discarded after loading.
func LoadFS(fsys fs.FS) (*state.World, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading game directory: %w", err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found")
	}

	// Sort: game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		if err := runChunk(L, f, data); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	w, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling game data: %w", err)
	}

	if err := validate(w); err != nil {
		return nil, err
	}

	return w, nil
}

// runChunk compiles and runs one Lua source file.
func runChunk(L *lua.LState, name string, data []byte) error {
	fn, err := L.Load(bytes.NewReader(data), name)
	if err != nil {
		return err
	}
	L.Push(fn)
	return L.PCall(0, lua.MultRet, nil)
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the VM.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "require", "module",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
}
