// internal/game/controller.go
//
// Round outcome controller.
// Tracks how many correct tiles remain to be found and how many chances
// remain, and turns each tap event into an Outcome.
//
// Evaluation order after every event (and for Outcome()):
//   1. nothing left to find      → win
//   2. no chances left           → lose
//   3. more to find than chances → impossible
//   4. otherwise                 → continue
// Win is checked first so the last find on the last chance is a win.

package game

// Outcome is the controller's verdict after an event.
type Outcome string

const (
	OutcomeContinue   Outcome = "continue"
	OutcomeWin        Outcome = "win"
	OutcomeLose       Outcome = "lose"
	OutcomeImpossible Outcome = "impossible"
)

// Terminal reports whether the outcome ends the round.
func (o Outcome) Terminal() bool { return o != OutcomeContinue }

// Controller holds the counters of one active round.
// It is not safe for concurrent use; Game serialises access.
type Controller struct {
	TotalToFind      int
	TotalChances     int
	RemainingToFind  int
	RemainingChances int
	Over             bool
}

// NewController starts a round. The chances policy belongs to the caller;
// the reference rule is ChancesFor(totalToFind, 1).
func NewController(totalToFind, totalChances int) *Controller {
	return &Controller{
		TotalToFind:      totalToFind,
		TotalChances:     totalChances,
		RemainingToFind:  totalToFind,
		RemainingChances: totalChances,
	}
}

// ChancesFor returns the chance budget for a round with toFind correct tiles.
func ChancesFor(toFind, extra int) int { return toFind + extra }

// RecordCorrect registers a tap on a matching tile.
// Once the round is over it does nothing and returns OutcomeContinue.
func (c *Controller) RecordCorrect() Outcome {
	if c.Over {
		return OutcomeContinue
	}
	c.RemainingToFind = max(0, c.RemainingToFind-1)
	return c.check()
}

// RecordIncorrect registers a tap on a non-matching tile.
// Once the round is over it does nothing and returns OutcomeContinue.
func (c *Controller) RecordIncorrect() Outcome {
	if c.Over {
		return OutcomeContinue
	}
	c.RemainingChances = max(0, c.RemainingChances-1)
	return c.check()
}

// Outcome evaluates the counters without changing any state.
func (c *Controller) Outcome() Outcome {
	switch {
	case c.RemainingToFind <= 0:
		return OutcomeWin
	case c.RemainingChances <= 0:
		return OutcomeLose
	case c.RemainingToFind > c.RemainingChances:
		return OutcomeImpossible
	}
	return OutcomeContinue
}

func (c *Controller) check() Outcome {
	o := c.Outcome()
	if o.Terminal() {
		c.Over = true
	}
	return o
}

// Found is the number of correct tiles tapped so far.
func (c *Controller) Found() int { return c.TotalToFind - c.RemainingToFind }

// Sync copies counters from an external source. A value is ignored,
// keeping the current one, when it is negative, above its total, or would
// increase the counter. A finished round is left untouched.
func (c *Controller) Sync(remainingToFind, remainingChances int) {
	if c.Over {
		return
	}
	if remainingToFind >= 0 && remainingToFind <= c.TotalToFind && remainingToFind <= c.RemainingToFind {
		c.RemainingToFind = remainingToFind
	}
	if remainingChances >= 0 && remainingChances <= c.TotalChances && remainingChances <= c.RemainingChances {
		c.RemainingChances = remainingChances
	}
}
