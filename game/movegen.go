package game

import (
	"github.com/domino14/klondike/card"
	"github.com/domino14/klondike/move"
)

// canLand reports whether c may land on top of t. An empty tableau
// accepts any card or run; otherwise the top must be face-up, of the
// opposite color, and exactly one rank higher.
func canLand(c card.Card, t Tableau) bool {
	if t.Empty() {
		return true
	}
	top, ok := t.TopFaceUp()
	if !ok {
		return false
	}
	return c.Color() != top.Color() && c.Rank() == top.Rank()-1
}

// canFound reports whether c may be played to its suit's foundation.
func (s *State) canFound(c card.Card) bool {
	return int(c.Rank()) == s.FoundationHeight(c.Suit())+1
}

// LegalMoves enumerates every move applicable to the state, in a fixed
// deterministic order: foundation plays first, then tableau landings,
// then the draw and the rate-limited recycle. The order doubles as the
// FIFO tiebreak order inside the search frontier.
func (s *State) LegalMoves() []move.Move {
	moves := make([]move.Move, 0, 16)

	// Waste and tableau tops to foundations.
	if n := len(s.waste); n > 0 {
		if c := s.waste[n-1]; s.canFound(c) {
			moves = append(moves, move.NewWasteToFoundation(c.Suit()))
		}
	}
	for i := range s.tableaus {
		if c, ok := s.tableaus[i].TopFaceUp(); ok && s.canFound(c) {
			moves = append(moves, move.NewTableauToFoundation(i, c.Suit()))
		}
	}

	// Waste top to tableaus.
	if n := len(s.waste); n > 0 {
		c := s.waste[n-1]
		for i := range s.tableaus {
			if canLand(c, s.tableaus[i]) {
				moves = append(moves, move.NewWasteToTableau(i))
			}
		}
	}

	// Face-up runs between tableaus. Every suffix of the face-up run is a
	// candidate; legality depends only on the run's bottom card.
	for src := range s.tableaus {
		t := s.tableaus[src]
		for start := t.faceDown; start < len(t.cards); start++ {
			c := t.cards[start]
			count := len(t.cards) - start
			for dst := range s.tableaus {
				if dst == src {
					continue
				}
				if canLand(c, s.tableaus[dst]) {
					moves = append(moves, move.NewTableauToTableau(src, dst, count))
				}
			}
		}
	}

	// Foundation tops back to tableaus; rarely useful but needed for
	// completeness.
	for suit := 0; suit < NumFoundations; suit++ {
		h := s.foundations[suit]
		if h == 0 {
			continue
		}
		c := card.New(card.Rank(h), card.Suit(suit))
		for i := range s.tableaus {
			if canLand(c, s.tableaus[i]) {
				moves = append(moves, move.NewFoundationToTableau(card.Suit(suit), i))
			}
		}
	}

	if len(s.stock) > 0 {
		moves = append(moves, move.NewDraw())
	} else if len(s.waste) > 0 && s.cycles < s.recycleCap {
		moves = append(moves, move.NewRecycle())
	}

	return moves
}
