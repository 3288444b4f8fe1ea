// internal/game/text.go
//
// Player-facing copy for a round: instruction line, chances line and the
// end-of-round header/subtitle pairs. Kept next to the controller so the
// HTTP layer only forwards strings.

package game

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robalobadob/lettergrid/internal/round"
)

const (
	HeaderWin  = "Congratulations!"
	HeaderLose = "Commiserations! Game over"
	FooterTap  = "Click on any animal to see the name and a description"
)

func pluralize(n int, singular string) string {
	if n == 1 {
		return singular
	}
	return singular + "s"
}

// InstructionText renders "Find 3 animals beginning with B", adding "more"
// once at least one tile has been found.
func InstructionText(remaining int, letter string, initial int) string {
	more := ""
	if remaining < initial {
		more = " more"
	}
	return fmt.Sprintf("Find %d%s %s beginning with %s", remaining, more, pluralize(remaining, "animal"), letter)
}

// ChancesText renders "You have 4 chances", adding "more" once a chance was spent.
func ChancesText(remaining, initial int) string {
	more := ""
	if remaining < initial {
		more = " more"
	}
	return fmt.Sprintf("You have %d%s %s", remaining, more, pluralize(remaining, "chance"))
}

// EndText returns the header and subtitle shown for a terminal outcome.
// It returns empty strings for OutcomeContinue.
func EndText(o Outcome, c *Controller) (header, subtitle string) {
	switch o {
	case OutcomeWin:
		if c.TotalToFind > 0 {
			return HeaderWin, fmt.Sprintf("You found all %d animals!", c.TotalToFind)
		}
		return HeaderWin, "You found all animals!"
	case OutcomeImpossible:
		return HeaderLose, fmt.Sprintf("Too few chances to find the remaining %d animals", c.RemainingToFind)
	case OutcomeLose:
		return HeaderLose, fmt.Sprintf("You found %d out of %d animals", c.Found(), c.TotalToFind)
	}
	return "", ""
}

// DisplayName turns an item identifier into a label: "fur_seal.png" → "Fur seal".
func DisplayName(item string) string {
	stem := round.Stem(item)
	parts := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(stem))
	if len(parts) == 0 {
		return stem
	}
	// Casers carry state and must not be shared between goroutines.
	parts[0] = cases.Title(language.English).String(parts[0])
	lower := cases.Lower(language.English)
	for i := 1; i < len(parts); i++ {
		parts[i] = lower.String(parts[i])
	}
	return strings.Join(parts, " ")
}
