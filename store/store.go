// Package store holds the single shared GameState behind an accessor
// interface. Every Replace is a whole-value swap: concurrent writers never
// interleave fields, the last one wins.
package store

import (
	"context"

	"github.com/nathoo/trailhead/types"
)

// Store is the shared GameState cell.
type Store interface {
	// Get returns the current state.
	Get(ctx context.Context) (types.GameState, error)
	// Replace swaps in s wholesale and returns the now-current state.
	Replace(ctx context.Context, s types.GameState) (types.GameState, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// DefaultState is the state a fresh service starts with.
func DefaultState() types.GameState {
	return types.GameState{
		PlayerName:      "Adventurer",
		CurrentLocation: "Home",
	}
}
