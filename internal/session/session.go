// Package session keeps track of which file the CLI is working on
// between invocations, so commands like get and set can omit the file
// argument after a load.
package session

import (
	"context"
	"time"
)

// State is the persisted session: the file currently loaded and when it
// changed. A zero State means nothing is loaded.
type State struct {
	CurrentFile string    `json:"current_file"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Store persists session state. Load returns a zero State, not an
// error, when no state has been saved yet.
type Store interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State) error
	Clear(ctx context.Context) error
}
