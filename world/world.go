// Package world embeds the built-in Lua world definition.
package world

import "embed"

// FS holds the built-in .lua files at its root, ready for loader.LoadFS.
//
//go:embed *.lua
var FS embed.FS
