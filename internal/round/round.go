// internal/round/round.go
//
// Round composition for the letter grid.
// Responsibilities:
//   - Derive the candidate letter universe from a pool of item identifiers.
//   - Pick a letter and a correct-count, then fill a fixed-size selection
//     of matching items plus non-matching distractors.
//   - Retry (rejection sampling) until the constraints hold or the attempt
//     budget runs out.
//
// Notes:
//   - Items are opaque identifiers (filenames). Matching uses the stem, the
//     identifier with its extension removed, compared case-insensitively.
//   - No I/O happens here; the pool snapshot is supplied by the caller.

package round

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Errors returned by Compose. They are wrapped with context; match with errors.Is.
var (
	ErrInsufficientPool         = errors.New("insufficient pool")
	ErrUnsatisfiableConstraints = errors.New("unsatisfiable constraints")
	ErrInvalidConstraints       = errors.New("invalid constraints")
)

const (
	DefaultSize        = 9
	DefaultMinCorrect  = 2
	DefaultMaxCorrect  = 5
	DefaultMaxAttempts = 200
)

// Constraints bounds a composed round.
type Constraints struct {
	Size        int // number of tiles (k)
	MinCorrect  int
	MaxCorrect  int
	MaxAttempts int
}

// DefaultConstraints returns the reference 3x3 rules.
func DefaultConstraints() Constraints {
	return Constraints{
		Size:        DefaultSize,
		MinCorrect:  DefaultMinCorrect,
		MaxCorrect:  DefaultMaxCorrect,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Validate checks that the bounds describe a possible round.
func (c Constraints) Validate() error {
	switch {
	case c.Size <= 0:
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConstraints, c.Size)
	case c.MinCorrect < 0:
		return fmt.Errorf("%w: min correct must not be negative, got %d", ErrInvalidConstraints, c.MinCorrect)
	case c.MinCorrect > c.MaxCorrect:
		return fmt.Errorf("%w: min correct %d exceeds max correct %d", ErrInvalidConstraints, c.MinCorrect, c.MaxCorrect)
	case c.MaxCorrect > c.Size:
		return fmt.Errorf("%w: max correct %d exceeds size %d", ErrInvalidConstraints, c.MaxCorrect, c.Size)
	case c.MaxAttempts <= 0:
		return fmt.Errorf("%w: max attempts must be positive, got %d", ErrInvalidConstraints, c.MaxAttempts)
	}
	return nil
}

// State describes one composed round. It is never mutated after Compose returns.
type State struct {
	Letter   string              // single uppercase letter
	Selected []string            // tile layout order
	Correct  map[string]struct{} // subset of Selected matching Letter
}

// IsCorrect reports whether item is one of the round's matching tiles.
func (s State) IsCorrect(item string) bool {
	_, ok := s.Correct[item]
	return ok
}

// CorrectCount is the number of tiles the player has to find.
func (s State) CorrectCount() int { return len(s.Correct) }

// Stem strips the directory and the file-type suffix from an item identifier.
func Stem(item string) string {
	base := path.Base(strings.ReplaceAll(item, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// LetterOf returns the uppercased first letter of the item's stem, or ""
// when the stem is empty.
func LetterOf(item string) string {
	stem := Stem(item)
	if stem == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(stem)
	return string(unicode.ToUpper(r))
}

// Matches reports whether the item's stem starts with letter, ignoring case.
func Matches(item, letter string) bool {
	l := LetterOf(item)
	return l != "" && strings.EqualFold(l, letter)
}

// Letters returns the sorted, distinct letter universe of a pool.
// Items with an empty stem contribute nothing.
func Letters(pool []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, item := range pool {
		l := LetterOf(item)
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Compose builds a round of exactly c.Size items from pool.
//
// Algorithm:
//  1. Collect the letter universe.
//  2. Up to c.MaxAttempts times: draw a letter and a target correct-count,
//     split the pool into matches and non-matches, and retry when either
//     side is too small. Otherwise sample both sides, concatenate and
//     shuffle the tile order.
//
// Errors: ErrInvalidConstraints for impossible bounds, ErrInsufficientPool
// when the pool is smaller than c.Size or yields no letter, and
// ErrUnsatisfiableConstraints when every attempt is rejected.
func Compose(rng Rand, pool []string, c Constraints) (State, error) {
	if err := c.Validate(); err != nil {
		return State{}, err
	}
	if len(pool) < c.Size {
		return State{}, fmt.Errorf("%w: need at least %d items, found %d", ErrInsufficientPool, c.Size, len(pool))
	}
	letters := Letters(pool)
	if len(letters) == 0 {
		return State{}, fmt.Errorf("%w: no item name yields a letter", ErrInsufficientPool)
	}

	for attempt := 0; attempt < c.MaxAttempts; attempt++ {
		letter := Choose(rng, letters)
		target := IntRange(rng, c.MinCorrect, c.MaxCorrect)

		var matches, others []string
		for _, item := range pool {
			if Matches(item, letter) {
				matches = append(matches, item)
			} else {
				others = append(others, item)
			}
		}
		if len(matches) < target || len(others) < c.Size-target {
			continue
		}

		correct := Sample(rng, matches, target)
		distractors := Sample(rng, others, c.Size-target)

		selected := make([]string, 0, c.Size)
		selected = append(selected, correct...)
		selected = append(selected, distractors...)
		Shuffle(rng, selected)

		set := make(map[string]struct{}, len(correct))
		for _, item := range correct {
			set[item] = struct{}{}
		}
		return State{Letter: letter, Selected: selected, Correct: set}, nil
	}

	return State{}, fmt.Errorf("%w: no round found after %d attempts; add more images or adjust the rules",
		ErrUnsatisfiableConstraints, c.MaxAttempts)
}
