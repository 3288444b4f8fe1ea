package game

import (
	"reflect"
	"testing"
)

type event int

const (
	correct event = iota
	incorrect
)

func apply(c *Controller, events []event) []Outcome {
	out := make([]Outcome, 0, len(events))
	for _, e := range events {
		if e == correct {
			out = append(out, c.RecordCorrect())
		} else {
			out = append(out, c.RecordIncorrect())
		}
	}
	return out
}

func TestControllerScenarios(t *testing.T) {
	tests := []struct {
		name        string
		toFind      int
		events      []event
		want        []Outcome
		wantToFind  int
		wantChances int
		wantOver    bool
	}{
		{
			name:        "win after a miss",
			toFind:      3,
			events:      []event{correct, incorrect, correct, correct},
			want:        []Outcome{OutcomeContinue, OutcomeContinue, OutcomeContinue, OutcomeWin},
			wantToFind:  0,
			wantChances: 3,
			wantOver:    true,
		},
		{
			name:        "two misses leave too few chances",
			toFind:      2,
			events:      []event{incorrect, incorrect, incorrect},
			want:        []Outcome{OutcomeContinue, OutcomeImpossible, OutcomeContinue},
			wantToFind:  2,
			wantChances: 1,
			wantOver:    true,
		},
		{
			name:        "impossible before chances run out",
			toFind:      4,
			events:      []event{incorrect, incorrect},
			want:        []Outcome{OutcomeContinue, OutcomeImpossible},
			wantToFind:  4,
			wantChances: 3,
			wantOver:    true,
		},
		{
			name:        "all correct",
			toFind:      2,
			events:      []event{correct, correct},
			want:        []Outcome{OutcomeContinue, OutcomeWin},
			wantToFind:  0,
			wantChances: 3,
			wantOver:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(tt.toFind, ChancesFor(tt.toFind, 1))
			got := apply(c, tt.events)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("outcomes = %v, want %v", got, tt.want)
			}
			if c.RemainingToFind != tt.wantToFind || c.RemainingChances != tt.wantChances {
				t.Fatalf("counters = (%d,%d), want (%d,%d)",
					c.RemainingToFind, c.RemainingChances, tt.wantToFind, tt.wantChances)
			}
			if c.Over != tt.wantOver {
				t.Fatalf("over = %v, want %v", c.Over, tt.wantOver)
			}
		})
	}
}

func TestControllerLoseWhenChancesRunOut(t *testing.T) {
	// One to find with a single chance: the miss empties the budget.
	c := NewController(1, 1)
	if got := c.RecordIncorrect(); got != OutcomeLose {
		t.Fatalf("outcome = %s, want lose", got)
	}
	if !c.Over || c.RemainingChances != 0 || c.RemainingToFind != 1 {
		t.Fatalf("controller = %+v", *c)
	}
}

func TestControllerImpossibleBeforeChancesRunOut(t *testing.T) {
	// Total 4, chances 5: counters (4,5) → (4,4) → (4,3) impossible.
	c := NewController(4, 5)
	if o := c.RecordIncorrect(); o != OutcomeContinue {
		t.Fatalf("first miss = %s", o)
	}
	if o := c.RecordIncorrect(); o != OutcomeImpossible {
		t.Fatalf("second miss = %s, want impossible", o)
	}
	if c.RemainingChances == 0 {
		t.Fatal("impossible must be reported before chances hit zero")
	}
}

func TestControllerResyncThenMiss(t *testing.T) {
	c := NewController(3, 4)
	c.Sync(2, 3)
	if got := c.Outcome(); got != OutcomeContinue {
		t.Fatalf("outcome after sync = %s, want continue", got)
	}
	if got := c.RecordIncorrect(); got != OutcomeContinue {
		t.Fatalf("outcome = %s, want continue", got)
	}
	if got := c.RecordIncorrect(); got != OutcomeImpossible {
		t.Fatalf("outcome = %s, want impossible", got)
	}
	if c.RemainingToFind != 2 || c.RemainingChances != 1 {
		t.Fatalf("counters = (%d,%d), want (2,1)", c.RemainingToFind, c.RemainingChances)
	}
}

func TestControllerWinBeatsLose(t *testing.T) {
	c := NewController(3, 4)
	c.RemainingToFind, c.RemainingChances = 1, 1
	if got := c.RecordCorrect(); got != OutcomeWin {
		t.Fatalf("outcome = %s, want win", got)
	}
}

func TestControllerIdempotentAfterOver(t *testing.T) {
	c := NewController(1, 2)
	if got := c.RecordCorrect(); got != OutcomeWin {
		t.Fatalf("outcome = %s, want win", got)
	}
	before := *c
	for i := 0; i < 3; i++ {
		if got := c.RecordCorrect(); got != OutcomeContinue {
			t.Fatalf("RecordCorrect after over = %s, want continue", got)
		}
		if got := c.RecordIncorrect(); got != OutcomeContinue {
			t.Fatalf("RecordIncorrect after over = %s, want continue", got)
		}
		if got := c.Outcome(); got != OutcomeWin {
			t.Fatalf("Outcome after over = %s, want win", got)
		}
	}
	if *c != before {
		t.Fatalf("state changed after over: %+v, want %+v", *c, before)
	}
}

func TestControllerCountersNeverNegative(t *testing.T) {
	c := NewController(0, 0)
	c.RecordIncorrect()
	c.Over = false
	c.RecordCorrect()
	if c.RemainingToFind < 0 || c.RemainingChances < 0 {
		t.Fatalf("negative counters: %+v", *c)
	}
}

func TestControllerOutcomeIsPure(t *testing.T) {
	c := NewController(2, 3)
	c.RecordIncorrect()
	before := *c
	for i := 0; i < 5; i++ {
		c.Outcome()
	}
	if *c != before {
		t.Fatalf("Outcome mutated state: %+v", *c)
	}
}

func TestControllerSyncIgnoresInvalid(t *testing.T) {
	c := NewController(3, 4)
	c.Sync(-1, 9)
	if c.RemainingToFind != 3 || c.RemainingChances != 4 {
		t.Fatalf("invalid sync applied: %+v", *c)
	}
	c.Sync(2, 3)
	if c.RemainingToFind != 2 || c.RemainingChances != 3 {
		t.Fatalf("valid sync not applied: %+v", *c)
	}
	c.Sync(3, 4)
	if c.RemainingToFind != 2 || c.RemainingChances != 3 {
		t.Fatalf("sync increased counters: %+v", *c)
	}
}
