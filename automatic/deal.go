// Package automatic deals and solves batches of games unattended, for
// measuring solve rates and search behavior over many random deals.
package automatic

import (
	"lukechampine.com/frand"

	"github.com/domino14/klondike/card"
	"github.com/domino14/klondike/game"
)

// SeededDeal shuffles a fresh deck with the given seed and lays out the
// standard opening: tableau i gets i face-down cards and one face-up,
// the remaining 24 cards form the stock. The same seed always produces
// the same deal.
func SeededDeal(seed [32]byte, recycleCap int) (*game.State, error) {
	rng := frand.NewCustom(seed[:], 1024, 12)
	deck := card.Deck()
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	var tableaus [game.NumTableaus]game.Tableau
	idx := 0
	for i := 0; i < game.NumTableaus; i++ {
		tableaus[i] = game.NewTableau(deck[idx:idx+i], deck[idx+i:idx+i+1])
		idx += i + 1
	}
	return game.NewState(deck[idx:], nil, [game.NumFoundations]uint8{},
		tableaus, recycleCap)
}
