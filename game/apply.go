package game

import (
	"fmt"

	"github.com/domino14/klondike/card"
	"github.com/domino14/klondike/move"
)

func errInvalid(m move.Move, reason string) error {
	return fmt.Errorf("%w: %s (%s)", ErrInvalidMove, reason, m.ShortDescription())
}

// Apply plays m on s and returns the resulting state. s is never
// modified. It fails with ErrInvalidMove if m is not currently legal;
// during search that means move generation or node bookkeeping is broken,
// so callers should treat the error as fatal.
func (s *State) Apply(m move.Move) (*State, error) {
	n := s.clone()

	switch m.Action() {
	case move.TypeDraw:
		if len(n.stock) == 0 {
			return nil, errInvalid(m, "stock is empty")
		}
		c := n.stock[len(n.stock)-1]
		n.stock = n.stock[:len(n.stock)-1]
		n.waste = append(n.waste, c)

	case move.TypeRecycle:
		if len(n.stock) != 0 {
			return nil, errInvalid(m, "stock is not empty")
		}
		if len(n.waste) == 0 {
			return nil, errInvalid(m, "waste is empty")
		}
		if n.cycles >= n.recycleCap {
			return nil, errInvalid(m, "recycle limit reached")
		}
		for i := len(n.waste) - 1; i >= 0; i-- {
			n.stock = append(n.stock, n.waste[i])
		}
		n.waste = n.waste[:0]
		n.cycles++

	case move.TypeWasteToFoundation:
		if len(n.waste) == 0 {
			return nil, errInvalid(m, "waste is empty")
		}
		c := n.waste[len(n.waste)-1]
		if c.Suit() != m.Suit() || !n.canFound(c) {
			return nil, errInvalid(m, "card cannot play to foundation")
		}
		n.waste = n.waste[:len(n.waste)-1]
		n.foundations[c.Suit()]++

	case move.TypeWasteToTableau:
		if len(n.waste) == 0 {
			return nil, errInvalid(m, "waste is empty")
		}
		c := n.waste[len(n.waste)-1]
		t := &n.tableaus[m.ToTableau()]
		if !canLand(c, *t) {
			return nil, errInvalid(m, "card cannot land on tableau")
		}
		n.waste = n.waste[:len(n.waste)-1]
		t.cards = append(t.cards, c)

	case move.TypeTableauToFoundation:
		t := &n.tableaus[m.FromTableau()]
		c, ok := t.TopFaceUp()
		if !ok {
			return nil, errInvalid(m, "no face-up card on source tableau")
		}
		if c.Suit() != m.Suit() || !n.canFound(c) {
			return nil, errInvalid(m, "card cannot play to foundation")
		}
		t.cards = t.cards[:len(t.cards)-1]
		n.foundations[c.Suit()]++
		t.flipExposed()

	case move.TypeTableauToTableau:
		src := &n.tableaus[m.FromTableau()]
		dst := &n.tableaus[m.ToTableau()]
		if src == dst {
			return nil, errInvalid(m, "source and destination are the same pile")
		}
		count := m.Count()
		faceUp := len(src.cards) - src.faceDown
		if count < 1 || count > faceUp {
			return nil, errInvalid(m, "run is not within the face-up suffix")
		}
		start := len(src.cards) - count
		if !canLand(src.cards[start], *dst) {
			return nil, errInvalid(m, "run cannot land on tableau")
		}
		dst.cards = append(dst.cards, src.cards[start:]...)
		src.cards = src.cards[:start]
		src.flipExposed()

	case move.TypeFoundationToTableau:
		suit := m.Suit()
		h := n.foundations[suit]
		if h == 0 {
			return nil, errInvalid(m, "foundation is empty")
		}
		c := card.New(card.Rank(h), suit)
		t := &n.tableaus[m.ToTableau()]
		if !canLand(c, *t) {
			return nil, errInvalid(m, "card cannot land on tableau")
		}
		n.foundations[suit]--
		t.cards = append(t.cards, c)

	default:
		return nil, errInvalid(m, "unknown move type")
	}

	return n, nil
}

// flipExposed turns the new top card face-up if removing cards left a
// face-down card on top.
func (t *Tableau) flipExposed() {
	if len(t.cards) > 0 && t.faceDown == len(t.cards) {
		t.faceDown--
	}
}
