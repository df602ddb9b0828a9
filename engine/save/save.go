// Package save implements JSON serialization and deserialization of the
// player state.
package save

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/trailhead/types"
)

// DefaultPath is where the game saves when no other path is given.
const DefaultPath = "save_game.json"

// ErrFormat is wrapped by every error caused by a malformed save document.
var ErrFormat = errors.New("malformed save document")

// SaveData is the JSON-serializable save format: the four player fields
// verbatim, no version tag.
type SaveData struct {
	Name            string   `json:"name"`
	CurrentLocation string   `json:"current_location"`
	Inventory       []string `json:"inventory"`
	CompletedQuests []string `json:"completed_quests"`
}

// Save serializes the player to JSON bytes.
func Save(p *types.Player) ([]byte, error) {
	data := SaveData{
		Name:            p.Name,
		CurrentLocation: p.Location,
		Inventory:       p.Inventory,
		CompletedQuests: p.CompletedQuests,
	}
	if data.Inventory == nil {
		data.Inventory = []string{}
	}
	if data.CompletedQuests == nil {
		data.CompletedQuests = []string{}
	}
	return json.MarshalIndent(data, "", "  ")
}

// saveDocument mirrors SaveData with pointer fields so that a missing or
// null field can be told apart from an empty one.
type saveDocument struct {
	Name            *string   `json:"name"`
	CurrentLocation *string   `json:"current_location"`
	Inventory       *[]string `json:"inventory"`
	CompletedQuests *[]string `json:"completed_quests"`
}

// Load deserializes JSON bytes into a player. All four fields must be
// present. The result is not checked against any world map.
func Load(data []byte) (*types.Player, error) {
	var doc *saveDocument
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrFormat)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", ErrFormat)
	}

	var missing []string
	if doc.Name == nil {
		missing = append(missing, "name")
	}
	if doc.CurrentLocation == nil {
		missing = append(missing, "current_location")
	}
	if doc.Inventory == nil {
		missing = append(missing, "inventory")
	}
	if doc.CompletedQuests == nil {
		missing = append(missing, "completed_quests")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing field(s) %s", ErrFormat, strings.Join(missing, ", "))
	}

	return &types.Player{
		Name:            *doc.Name,
		Location:        *doc.CurrentLocation,
		Inventory:       *doc.Inventory,
		CompletedQuests: *doc.CompletedQuests,
	}, nil
}

// WriteFile saves the player to path.
func WriteFile(path string, p *types.Player) error {
	data, err := Save(p)
	if err != nil {
		return fmt.Errorf("encoding save: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadFile loads a player from path.
func ReadFile(path string) (*types.Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	p, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return p, nil
}
