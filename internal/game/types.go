// internal/game/types.go
//
// Core type definitions for a letter grid session.
// Defines:
//   - Game: one active round (composed state + controller + tapped tiles).
//   - TapResult: what happened when a tile was tapped.
//   - View / TileView: read-only projection handed to clients.

package game

import (
	"sync"
	"time"

	"github.com/robalobadob/lettergrid/internal/round"
)

// Game holds the state of a single round session.
type Game struct {
	mu sync.Mutex

	ID         string      // Unique session identifier.
	Seed       int64       // Seed the round was composed from.
	Round      round.State // Immutable composed round.
	Controller *Controller // Outcome state machine.
	Tapped     []bool      // Tiles that already produced an event.
	Taps       int         // Number of recorded taps.
	StartedAt  time.Time
	FinishedAt time.Time // Zero until the round is over.
}

// TapResult describes a single tap.
type TapResult struct {
	Tile     int
	Item     string
	Correct  bool    // tile belongs to the correct set
	Recorded bool    // false for repeat taps and taps after the end
	Event    Outcome // controller verdict for this event; continue when not recorded
	Outcome  Outcome // round outcome after the tap
	Over     bool
}

// Summary is the persisted digest of a round.
type Summary struct {
	Outcome Outcome
	Found   int
	Total   int
	Taps    int
	Elapsed time.Duration // zero while the round is active
}

// TileView is one tile as shown to the player.
type TileView struct {
	Index   int    `json:"index"`
	Item    string `json:"item"`
	Name    string `json:"name"`
	Tapped  bool   `json:"tapped"`
	Correct *bool  `json:"correct,omitempty"` // revealed once tapped or the round is over
}

// View is a read-only snapshot of a session.
type View struct {
	ID               string     `json:"gameId"`
	Letter           string     `json:"letter"`
	Columns          int        `json:"columns,omitempty"` // grid layout hint, set by the host
	Tiles            []TileView `json:"tiles"`
	RemainingToFind  int        `json:"remainingToFind"`
	RemainingChances int        `json:"remainingChances"`
	Outcome          Outcome    `json:"outcome"`
	Over             bool       `json:"over"`
	Instruction      string     `json:"instruction"`
	Chances          string     `json:"chances"`
	Header           string     `json:"header,omitempty"`
	Subtitle         string     `json:"subtitle,omitempty"`
	Footer           string     `json:"footer,omitempty"`
	Seed             int64      `json:"seed"`
}
