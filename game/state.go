// Package game implements the Klondike (draw-one) board model: the
// thirteen piles, legal-move enumeration, and pure move application.
// States are never mutated once created; Apply returns a fresh value, so
// search frontiers and parent chains can share states safely.
package game

import (
	"errors"
	"fmt"

	"github.com/domino14/klondike/card"
)

const (
	NumTableaus    = 7
	NumFoundations = 4
	// FoundationFull is the height of a finished foundation pile.
	FoundationFull = 13
)

var (
	// ErrInvalidMove indicates a move was applied to a state where it is
	// not legal. This is an invariant violation in move generation or
	// node bookkeeping, not a recoverable condition.
	ErrInvalidMove = errors.New("invalid move")
	// ErrMalformedSnapshot indicates an input deal that does not describe
	// a valid 52-card layout.
	ErrMalformedSnapshot = errors.New("malformed snapshot")
)

// Tableau is one of the seven working piles: a face-down prefix under a
// face-up suffix. cards[0] is the bottom of the pile.
type Tableau struct {
	cards    []card.Card
	faceDown int
}

// NewTableau builds a tableau from its face-down prefix and face-up
// suffix, both given bottom to top.
func NewTableau(down, up []card.Card) Tableau {
	cards := make([]card.Card, 0, len(down)+len(up))
	cards = append(cards, down...)
	cards = append(cards, up...)
	return Tableau{cards: cards, faceDown: len(down)}
}

// Cards returns the pile bottom to top. Callers must not modify it.
func (t Tableau) Cards() []card.Card {
	return t.cards
}

func (t Tableau) Len() int {
	return len(t.cards)
}

func (t Tableau) Empty() bool {
	return len(t.cards) == 0
}

// FaceDownCount is the number of face-down cards at the bottom.
func (t Tableau) FaceDownCount() int {
	return t.faceDown
}

// FaceUp returns the face-up suffix, bottom to top.
func (t Tableau) FaceUp() []card.Card {
	return t.cards[t.faceDown:]
}

// TopFaceUp returns the top card if the pile is non-empty and its top is
// face-up.
func (t Tableau) TopFaceUp() (card.Card, bool) {
	if len(t.cards) == 0 || t.faceDown == len(t.cards) {
		return 0, false
	}
	return t.cards[len(t.cards)-1], true
}

// State is a complete snapshot of a deal: stock, waste, four foundations
// and seven tableaus, plus the number of times the stock has been
// recycled. The top of the stock and of the waste is the last element.
// Foundations build strictly Ace to King, so a pile is fully described by
// its height.
type State struct {
	stock       []card.Card
	waste       []card.Card
	foundations [NumFoundations]uint8
	tableaus    [NumTableaus]Tableau
	cycles      uint8
	recycleCap  uint8
}

// NewState builds and validates a root state. stock and waste are given
// bottom to top; foundations are pile heights per suit. recycleCap bounds
// how many stock recycles a search may perform from this state.
func NewState(stock, waste []card.Card, foundations [NumFoundations]uint8,
	tableaus [NumTableaus]Tableau, recycleCap int) (*State, error) {

	if recycleCap < 0 || recycleCap > 255 {
		return nil, fmt.Errorf("%w: recycle cap %d out of range", ErrMalformedSnapshot, recycleCap)
	}
	s := &State{
		foundations: foundations,
		recycleCap:  uint8(recycleCap),
	}
	s.stock = append([]card.Card{}, stock...)
	s.waste = append([]card.Card{}, waste...)
	for i, t := range tableaus {
		s.tableaus[i] = Tableau{
			cards:    append([]card.Card{}, t.cards...),
			faceDown: t.faceDown,
		}
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *State) validate() error {
	var counts [card.NumCards]int
	for _, c := range s.stock {
		if !c.Valid() {
			return fmt.Errorf("%w: bad card in stock", ErrMalformedSnapshot)
		}
		counts[c]++
	}
	for _, c := range s.waste {
		if !c.Valid() {
			return fmt.Errorf("%w: bad card in waste", ErrMalformedSnapshot)
		}
		counts[c]++
	}
	for suit, height := range s.foundations {
		if height > FoundationFull {
			return fmt.Errorf("%w: foundation %v overfull", ErrMalformedSnapshot, card.Suit(suit))
		}
		for r := card.Ace; r <= card.Rank(height); r++ {
			counts[card.New(r, card.Suit(suit))]++
		}
	}
	for i, t := range s.tableaus {
		if t.faceDown < 0 || t.faceDown > len(t.cards) {
			return fmt.Errorf("%w: tableau %d face-down count out of range", ErrMalformedSnapshot, i+1)
		}
		for _, c := range t.cards {
			if !c.Valid() {
				return fmt.Errorf("%w: bad card in tableau %d", ErrMalformedSnapshot, i+1)
			}
			counts[c]++
		}
		// The face-up suffix must descend by one with alternating colors;
		// moves preserve this, so only snapshot input can break it.
		up := t.cards[t.faceDown:]
		for j := 1; j < len(up); j++ {
			if up[j].Rank() != up[j-1].Rank()-1 || up[j].Color() == up[j-1].Color() {
				return fmt.Errorf("%w: tableau %d face-up cards %v, %v do not stack",
					ErrMalformedSnapshot, i+1, up[j-1], up[j])
			}
		}
	}
	for c, n := range counts {
		if n != 1 {
			return fmt.Errorf("%w: card %v appears %d times", ErrMalformedSnapshot, card.Card(c), n)
		}
	}
	return nil
}

// Stock returns the stock bottom to top. Callers must not modify it.
func (s *State) Stock() []card.Card {
	return s.stock
}

// Waste returns the waste bottom to top. Callers must not modify it.
func (s *State) Waste() []card.Card {
	return s.waste
}

// FoundationHeight is the number of cards on the given suit's foundation.
func (s *State) FoundationHeight(suit card.Suit) int {
	return int(s.foundations[suit])
}

// FoundationCount is the total number of cards on all foundations.
func (s *State) FoundationCount() int {
	total := 0
	for _, h := range s.foundations {
		total += int(h)
	}
	return total
}

// Tableau returns the i'th working pile.
func (s *State) Tableau(i int) Tableau {
	return s.tableaus[i]
}

// TableauFaceCounts returns the total face-up and face-down card counts
// across all tableaus.
func (s *State) TableauFaceCounts() (up, down int) {
	for _, t := range s.tableaus {
		down += t.faceDown
		up += len(t.cards) - t.faceDown
	}
	return up, down
}

// Cycles is the number of stock recycles performed so far.
func (s *State) Cycles() int {
	return int(s.cycles)
}

// RecycleCap is the bound on stock recycles inherited from the root.
func (s *State) RecycleCap() int {
	return int(s.recycleCap)
}

// IsSolved reports whether all four foundations are complete.
func (s *State) IsSolved() bool {
	for _, h := range s.foundations {
		if h != FoundationFull {
			return false
		}
	}
	return true
}

func (s *State) clone() *State {
	n := &State{
		foundations: s.foundations,
		cycles:      s.cycles,
		recycleCap:  s.recycleCap,
	}
	n.stock = append([]card.Card{}, s.stock...)
	n.waste = append([]card.Card{}, s.waste...)
	for i, t := range s.tableaus {
		n.tableaus[i] = Tableau{
			cards:    append([]card.Card{}, t.cards...),
			faceDown: t.faceDown,
		}
	}
	return n
}
