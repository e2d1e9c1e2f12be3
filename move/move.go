// Package move describes a single state transition in a Klondike game as a
// closed tagged variant. A Move carries just enough information to be
// applied to a state, reversed for replay, and handed to an executor as a
// (source pile, destination pile, run length) triple.
package move

import (
	"fmt"

	"github.com/domino14/klondike/card"
)

// Type is the kind of move; a draw, a pile-to-pile transfer, etc.
type Type uint8

const (
	// TypeDraw turns the top card of the stock onto the waste.
	TypeDraw Type = iota
	// TypeRecycle turns the entire waste back onto the stock. Distinct
	// from a draw, and rate-limited during search.
	TypeRecycle
	TypeWasteToFoundation
	TypeWasteToTableau
	TypeTableauToFoundation
	// TypeTableauToTableau transfers a face-up run of Count cards.
	TypeTableauToTableau
	// TypeFoundationToTableau is rare but kept for search completeness.
	TypeFoundationToTableau
)

// PileKind identifies one of the four kinds of piles on the board.
type PileKind uint8

const (
	Stock PileKind = iota
	Waste
	Foundation
	Tableau
)

func (k PileKind) String() string {
	switch k {
	case Stock:
		return "stock"
	case Waste:
		return "waste"
	case Foundation:
		return "foundation"
	case Tableau:
		return "tableau"
	}
	return "unknown"
}

// PileRef resolves a move endpoint for the executor. Index is the tableau
// number (0-6) or the foundation suit (0-3); it is unused for the stock
// and the waste.
type PileRef struct {
	Kind  PileKind `json:"kind" yaml:"kind"`
	Index int      `json:"index" yaml:"index"`
}

func (p PileRef) String() string {
	switch p.Kind {
	case Foundation:
		return "F" + card.Suit(p.Index).Symbol()
	case Tableau:
		return fmt.Sprintf("T%d", p.Index+1)
	}
	return p.Kind.String()
}

// Move is one legal transition. It is a small value type; the solver
// stores one per search node and never mutates it after creation.
type Move struct {
	action Type
	from   uint8 // tableau index, or suit for foundation sources
	to     uint8 // tableau index, or suit for foundation destinations
	count  uint8 // run length for tableau-to-tableau transfers
}

// NewDraw creates a stock-to-waste draw.
func NewDraw() Move {
	return Move{action: TypeDraw, count: 1}
}

// NewRecycle creates a waste-to-stock recycle.
func NewRecycle() Move {
	return Move{action: TypeRecycle}
}

func NewWasteToFoundation(s card.Suit) Move {
	return Move{action: TypeWasteToFoundation, to: uint8(s), count: 1}
}

func NewWasteToTableau(t int) Move {
	return Move{action: TypeWasteToTableau, to: uint8(t), count: 1}
}

func NewTableauToFoundation(t int, s card.Suit) Move {
	return Move{action: TypeTableauToFoundation, from: uint8(t), to: uint8(s), count: 1}
}

// NewTableauToTableau creates a transfer of a run of count cards from the
// face-up suffix of tableau from onto tableau to.
func NewTableauToTableau(from, to, count int) Move {
	return Move{action: TypeTableauToTableau, from: uint8(from), to: uint8(to), count: uint8(count)}
}

func NewFoundationToTableau(s card.Suit, t int) Move {
	return Move{action: TypeFoundationToTableau, from: uint8(s), to: uint8(t), count: 1}
}

func (m Move) Action() Type {
	return m.action
}

// FromTableau returns the source tableau index for moves that have one.
func (m Move) FromTableau() int {
	return int(m.from)
}

// ToTableau returns the destination tableau index for moves that have one.
func (m Move) ToTableau() int {
	return int(m.to)
}

// Suit returns the foundation suit for foundation moves.
func (m Move) Suit() card.Suit {
	if m.action == TypeFoundationToTableau {
		return card.Suit(m.from)
	}
	return card.Suit(m.to)
}

// Count is the number of cards this move transfers. It is zero for a
// recycle, which always turns over the whole waste.
func (m Move) Count() int {
	return int(m.count)
}

// Source resolves the source pile of the move.
func (m Move) Source() PileRef {
	switch m.action {
	case TypeDraw:
		return PileRef{Kind: Stock}
	case TypeRecycle, TypeWasteToFoundation, TypeWasteToTableau:
		return PileRef{Kind: Waste}
	case TypeTableauToFoundation, TypeTableauToTableau:
		return PileRef{Kind: Tableau, Index: int(m.from)}
	case TypeFoundationToTableau:
		return PileRef{Kind: Foundation, Index: int(m.from)}
	}
	return PileRef{}
}

// Dest resolves the destination pile of the move.
func (m Move) Dest() PileRef {
	switch m.action {
	case TypeDraw:
		return PileRef{Kind: Waste}
	case TypeRecycle:
		return PileRef{Kind: Stock}
	case TypeWasteToFoundation, TypeTableauToFoundation:
		return PileRef{Kind: Foundation, Index: int(m.to)}
	case TypeWasteToTableau, TypeTableauToTableau, TypeFoundationToTableau:
		return PileRef{Kind: Tableau, Index: int(m.to)}
	}
	return PileRef{}
}

func (m Move) Equals(o Move) bool {
	return m == o
}

// ShortDescription provides a short description, useful for logging or
// user display.
func (m Move) ShortDescription() string {
	switch m.action {
	case TypeDraw:
		return "(draw)"
	case TypeRecycle:
		return "(recycle)"
	case TypeTableauToTableau:
		return fmt.Sprintf("%s → %s ×%d", m.Source(), m.Dest(), m.count)
	default:
		return fmt.Sprintf("%s → %s", m.Source(), m.Dest())
	}
}

// String provides a string just for debugging purposes.
func (m Move) String() string {
	return fmt.Sprintf("<action: %d src: %v dst: %v count: %d>",
		m.action, m.Source(), m.Dest(), m.count)
}
