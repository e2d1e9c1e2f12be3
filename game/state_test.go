package game

import (
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/klondike/card"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func mustCards(t *testing.T, spec ...string) []card.Card {
	t.Helper()
	cards := make([]card.Card, len(spec))
	for i, s := range spec {
		c, err := card.Parse(s)
		if err != nil {
			t.Fatalf("bad card %q: %v", s, err)
		}
		cards[i] = c
	}
	return cards
}

// buildState constructs a full 52-card state: the given piles are used as
// specified and every card not mentioned is placed in the stock, in index
// order, underneath stockTop.
func buildState(t *testing.T, foundations [NumFoundations]uint8,
	tableaus [NumTableaus]Tableau, waste, stockTop []card.Card, recycleCap int) *State {
	t.Helper()

	used := map[card.Card]bool{}
	for suit := 0; suit < NumFoundations; suit++ {
		for r := card.Ace; r <= card.Rank(foundations[suit]); r++ {
			used[card.New(r, card.Suit(suit))] = true
		}
	}
	for _, tab := range tableaus {
		for _, c := range tab.Cards() {
			used[c] = true
		}
	}
	for _, c := range waste {
		used[c] = true
	}
	for _, c := range stockTop {
		used[c] = true
	}

	var stock []card.Card
	for _, c := range card.Deck() {
		if !used[c] {
			stock = append(stock, c)
		}
	}
	stock = append(stock, stockTop...)

	s, err := NewState(stock, waste, foundations, tableaus, recycleCap)
	if err != nil {
		t.Fatalf("buildState: %v", err)
	}
	return s
}

// openingDeal deals the standard layout from an unshuffled deck, for
// tests that just need any valid full deal.
func openingDeal(t *testing.T) *State {
	t.Helper()
	deck := card.Deck()
	var tableaus [NumTableaus]Tableau
	idx := 0
	for i := 0; i < NumTableaus; i++ {
		down := deck[idx : idx+i]
		up := deck[idx+i : idx+i+1]
		tableaus[i] = NewTableau(down, up)
		idx += i + 1
	}
	s, err := NewState(deck[idx:], nil, [NumFoundations]uint8{}, tableaus, 8)
	if err != nil {
		t.Fatalf("openingDeal: %v", err)
	}
	return s
}

func TestNewStateValidates(t *testing.T) {
	is := is.New(t)
	s := openingDeal(t)
	is.Equal(len(s.Stock()), 24)
	is.Equal(s.FoundationCount(), 0)
	up, down := s.TableauFaceCounts()
	is.Equal(up, 7)
	is.Equal(down, 21)
}

func TestNewStateRejectsShortDeck(t *testing.T) {
	is := is.New(t)
	deck := card.Deck()
	_, err := NewState(deck[:51], nil, [NumFoundations]uint8{}, [NumTableaus]Tableau{}, 8)
	is.True(err != nil)
	is.True(errors.Is(err, ErrMalformedSnapshot))
}

func TestNewStateRejectsDuplicate(t *testing.T) {
	is := is.New(t)
	deck := card.Deck()
	dup := append(append([]card.Card{}, deck[:51]...), deck[0])
	_, err := NewState(dup, nil, [NumFoundations]uint8{}, [NumTableaus]Tableau{}, 8)
	is.True(err != nil)
	is.True(errors.Is(err, ErrMalformedSnapshot))
}

func TestNewStateRejectsFoundationOverlap(t *testing.T) {
	is := is.New(t)
	// Ace of clubs both on its foundation and in the stock.
	deck := card.Deck()
	_, err := NewState(deck, nil, [NumFoundations]uint8{1, 0, 0, 0}, [NumTableaus]Tableau{}, 8)
	is.True(err != nil)
	is.True(errors.Is(err, ErrMalformedSnapshot))
}

func TestNewStateRejectsBadFaceUpRun(t *testing.T) {
	is := is.New(t)
	cases := [][]string{
		{"8H", "7H"}, // same color
		{"8H", "6S"}, // rank gap
		{"7S", "8H"}, // ascending
	}
	for _, spec := range cases {
		up := mustCards(t, spec...)
		var tabs [NumTableaus]Tableau
		tabs[0] = NewTableau(nil, up)
		// A complete deck otherwise, so only the run check can reject.
		var stock []card.Card
		for _, c := range card.Deck() {
			if c != up[0] && c != up[1] {
				stock = append(stock, c)
			}
		}
		_, err := NewState(stock, nil, [NumFoundations]uint8{}, tabs, 8)
		is.True(errors.Is(err, ErrMalformedSnapshot))
	}

	// The same cards stacked legally are accepted.
	var tabs [NumTableaus]Tableau
	tabs[0] = NewTableau(nil, mustCards(t, "8H", "7S"))
	s := buildState(t, [NumFoundations]uint8{}, tabs, nil, nil, 8)
	is.Equal(s.Tableau(0).Len(), 2)
}

func TestIsSolved(t *testing.T) {
	is := is.New(t)
	s, err := NewState(nil, nil,
		[NumFoundations]uint8{13, 13, 13, 13}, [NumTableaus]Tableau{}, 8)
	is.NoErr(err)
	is.True(s.IsSolved())
	is.True(!openingDeal(t).IsSolved())
}

func TestCardConservationUnderMoves(t *testing.T) {
	is := is.New(t)
	s := openingDeal(t)
	// Walk a deterministic path and revalidate the 52-card multiset at
	// every step.
	for i := 0; i < 200; i++ {
		moves := s.LegalMoves()
		if len(moves) == 0 {
			break
		}
		next, err := s.Apply(moves[i%len(moves)])
		is.NoErr(err)
		is.NoErr(next.validate())
		s = next
	}
}
