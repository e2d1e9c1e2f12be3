package game

import (
	"fmt"
	"strings"

	"github.com/domino14/klondike/card"
)

// ToDisplayText returns a console representation of the board.
func (s *State) ToDisplayText() string {
	var str strings.Builder

	wasteTop := "--"
	if len(s.waste) > 0 {
		wasteTop = s.waste[len(s.waste)-1].UserVisible()
	}
	fmt.Fprintf(&str, "Stock: %2d cards   Waste: %s (%d)   Recycles: %d/%d\n",
		len(s.stock), wasteTop, len(s.waste), s.cycles, s.recycleCap)

	str.WriteString("Foundations:")
	for suit := 0; suit < NumFoundations; suit++ {
		h := s.foundations[suit]
		if h == 0 {
			fmt.Fprintf(&str, "  %s --", card.Suit(suit).Symbol())
		} else {
			fmt.Fprintf(&str, "  %s", card.New(card.Rank(h), card.Suit(suit)).UserVisible())
		}
	}
	str.WriteString("\n")

	for i, t := range s.tableaus {
		fmt.Fprintf(&str, "T%d:", i+1)
		for j, c := range t.cards {
			if j < t.faceDown {
				str.WriteString(" ##")
			} else {
				str.WriteString(" " + c.UserVisible())
			}
		}
		str.WriteString("\n")
	}
	return str.String()
}
