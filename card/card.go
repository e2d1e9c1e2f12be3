// Package card implements the value types for a standard 52-card deck:
// ranks, suits, colors, and the Card itself, which is a single byte index.
package card

import (
	"errors"
	"fmt"
	"strings"
)

// Rank is a card rank. Ace is low; foundations build Ace up to King.
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Suit is one of the four suits, in foundation-pile order.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Color is the red/black color derived from a suit.
type Color uint8

const (
	Black Color = iota
	Red
)

const (
	NumRanks = 13
	NumSuits = 4
	// NumCards is the size of a full deck.
	NumCards = NumRanks * NumSuits
)

var rankLetters = "A23456789TJQK"
var suitLetters = "CDHS"
var suitSymbols = []string{"♣", "♦", "♥", "♠"}

func (r Rank) String() string {
	if r < Ace || r > King {
		return "?"
	}
	return string(rankLetters[r-1])
}

func (s Suit) String() string {
	if s > Spades {
		return "?"
	}
	return string(suitLetters[s])
}

// Symbol returns the unicode symbol for the suit, for board display.
func (s Suit) Symbol() string {
	if s > Spades {
		return "?"
	}
	return suitSymbols[s]
}

// Color returns Red for diamonds and hearts, Black for clubs and spades.
func (s Suit) Color() Color {
	if s == Diamonds || s == Hearts {
		return Red
	}
	return Black
}

// Card identifies one of the 52 cards. The zero value is the ace of clubs.
// Exactly one instance of each (rank, suit) combination exists in a valid
// deal; Card is a plain index so states can copy and hash it cheaply.
type Card uint8

// New builds the card with the given rank and suit.
func New(r Rank, s Suit) Card {
	return Card(uint8(s)*NumRanks + uint8(r-1))
}

func (c Card) Rank() Rank {
	return Rank(c%NumRanks) + 1
}

func (c Card) Suit() Suit {
	return Suit(c / NumRanks)
}

func (c Card) Color() Color {
	return c.Suit().Color()
}

// Valid reports whether c is one of the 52 real cards.
func (c Card) Valid() bool {
	return c < NumCards
}

// String returns the compact two-letter form, e.g. "AS" or "TD".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank().String() + c.Suit().String()
}

// UserVisible returns the rank plus the suit symbol, e.g. "A♠".
func (c Card) UserVisible() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank().String() + c.Suit().Symbol()
}

var ErrBadCard = errors.New("cannot parse card")

// Parse converts a compact two-letter form back into a Card. It accepts
// lowercase and the "10" spelling of the ten.
func Parse(s string) (Card, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if strings.HasPrefix(t, "10") {
		t = "T" + t[2:]
	}
	if len(t) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadCard, s)
	}
	ri := strings.IndexByte(rankLetters, t[0])
	si := strings.IndexByte(suitLetters, t[1])
	if ri < 0 || si < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadCard, s)
	}
	return New(Rank(ri+1), Suit(si)), nil
}

// Deck returns all 52 cards in index order.
func Deck() []Card {
	d := make([]Card, NumCards)
	for i := range d {
		d[i] = Card(i)
	}
	return d
}
