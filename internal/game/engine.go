// internal/game/engine.go
//
// Session engine for a single letter grid round.
// Responsibilities:
//   - Create a session from a composed round.State.
//   - Apply taps: validate the tile index, forward the first tap on each
//     tile to the Controller, ignore repeats.
//   - Expose a View with the player-facing copy.
//
// Notes:
//   - The Controller never deduplicates taps; Tapped does it here.
//   - HTTP handlers may race on one session, so every method locks.

package game

import (
	"errors"
	"time"

	"github.com/robalobadob/lettergrid/internal/round"
)

// ErrInvalidTile is returned for a tile index outside the grid.
var ErrInvalidTile = errors.New("invalid tile")

// New constructs a session. extraChances is added to the correct-tile
// count to form the chance budget (the reference rule uses 1).
func New(id string, seed int64, st round.State, extraChances int) *Game {
	toFind := st.CorrectCount()
	return &Game{
		ID:         id,
		Seed:       seed,
		Round:      st,
		Controller: NewController(toFind, ChancesFor(toFind, extraChances)),
		Tapped:     make([]bool, len(st.Selected)),
		StartedAt:  time.Now().UTC(),
	}
}

// Tap applies a tap on tile. Only the first tap on a tile during an active
// round reaches the controller.
func (g *Game) Tap(tile int) (TapResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if tile < 0 || tile >= len(g.Round.Selected) {
		return TapResult{}, ErrInvalidTile
	}
	item := g.Round.Selected[tile]
	res := TapResult{
		Tile:    tile,
		Item:    item,
		Correct: g.Round.IsCorrect(item),
		Event:   OutcomeContinue,
	}

	if !g.Tapped[tile] && !g.Controller.Over {
		g.Tapped[tile] = true
		g.Taps++
		res.Recorded = true
		if res.Correct {
			res.Event = g.Controller.RecordCorrect()
		} else {
			res.Event = g.Controller.RecordIncorrect()
		}
		if g.Controller.Over {
			g.FinishedAt = time.Now().UTC()
		}
	}

	res.Outcome = g.Controller.Outcome()
	res.Over = g.Controller.Over
	return res, nil
}

// Status reports a coarse state string for persistence:
// "playing" while active, otherwise the terminal outcome.
func (g *Game) Status() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status()
}

func (g *Game) status() string {
	if !g.Controller.Over {
		return "playing"
	}
	return string(g.Controller.Outcome())
}

// View builds the client snapshot.
func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := g.Controller
	v := View{
		ID:               g.ID,
		Letter:           g.Round.Letter,
		Tiles:            make([]TileView, len(g.Round.Selected)),
		RemainingToFind:  c.RemainingToFind,
		RemainingChances: c.RemainingChances,
		Outcome:          c.Outcome(),
		Over:             c.Over,
		Instruction:      InstructionText(c.RemainingToFind, g.Round.Letter, c.TotalToFind),
		Chances:          ChancesText(c.RemainingChances, c.TotalChances),
		Seed:             g.Seed,
	}
	for i, item := range g.Round.Selected {
		t := TileView{Index: i, Item: item, Name: DisplayName(item), Tapped: g.Tapped[i]}
		if g.Tapped[i] || c.Over {
			ok := g.Round.IsCorrect(item)
			t.Correct = &ok
		}
		v.Tiles[i] = t
	}
	if c.Over {
		v.Header, v.Subtitle = EndText(v.Outcome, c)
		v.Footer = FooterTap
	}
	return v
}

// Summary returns the counters persisted for a finished round.
func (g *Game) Summary() Summary {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := Summary{
		Outcome: g.Controller.Outcome(),
		Found:   g.Controller.Found(),
		Total:   g.Controller.TotalToFind,
		Taps:    g.Taps,
	}
	if !g.FinishedAt.IsZero() {
		s.Elapsed = g.FinishedAt.Sub(g.StartedAt)
	}
	return s
}

// Found returns (found, total) counts for persistence and stats.
func (g *Game) Found() (found, total int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Controller.Found(), g.Controller.TotalToFind
}
