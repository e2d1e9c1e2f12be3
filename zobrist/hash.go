package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/klondike/card"
	"github.com/domino14/klondike/game"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for a solitaire position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// The key depends only on pile contents, face flags and the recycle
// count, never on the order states were reached in, so it serves as the
// canonical key for the search's closed set. The tables are seeded with a
// fixed key so hashes are reproducible across runs.
type Zobrist struct {
	stockTable   [][card.NumCards]uint64
	wasteTable   [][card.NumCards]uint64
	tableauTable [][2 * card.NumCards]uint64

	foundationTable [game.NumFoundations][game.FoundationFull + 1]uint64
	cycleTable      [256]uint64
}

const maxPileLen = card.NumCards

var seedKey = [32]byte{
	0x6b, 0x6c, 0x6f, 0x6e, 0x64, 0x69, 0x6b, 0x65,
	0x2d, 0x7a, 0x6f, 0x62, 0x72, 0x69, 0x73, 0x74,
	0x2d, 0x76, 0x31, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

func (z *Zobrist) Initialize() {
	rng := frand.NewCustom(seedKey[:], 1024, 12)

	z.stockTable = make([][card.NumCards]uint64, maxPileLen)
	z.wasteTable = make([][card.NumCards]uint64, maxPileLen)
	for i := 0; i < maxPileLen; i++ {
		for j := 0; j < card.NumCards; j++ {
			z.stockTable[i][j] = rng.Uint64n(bignum) + 1
			z.wasteTable[i][j] = rng.Uint64n(bignum) + 1
		}
	}
	// Tableau entries carry a face-up dimension: index j for a face-down
	// card, j+52 for the same card face-up.
	z.tableauTable = make([][2 * card.NumCards]uint64, game.NumTableaus*maxPileLen)
	for i := range z.tableauTable {
		for j := 0; j < 2*card.NumCards; j++ {
			z.tableauTable[i][j] = rng.Uint64n(bignum) + 1
		}
	}
	for suit := 0; suit < game.NumFoundations; suit++ {
		for h := 0; h <= game.FoundationFull; h++ {
			z.foundationTable[suit][h] = rng.Uint64n(bignum) + 1
		}
	}
	for i := range z.cycleTable {
		z.cycleTable[i] = rng.Uint64n(bignum) + 1
	}
}

// Hash computes the canonical key for a position from scratch.
func (z *Zobrist) Hash(s *game.State) uint64 {
	var key uint64
	for i, c := range s.Stock() {
		key ^= z.stockTable[i][c]
	}
	for i, c := range s.Waste() {
		key ^= z.wasteTable[i][c]
	}
	for t := 0; t < game.NumTableaus; t++ {
		tab := s.Tableau(t)
		faceDown := tab.FaceDownCount()
		for i, c := range tab.Cards() {
			j := int(c)
			if i >= faceDown {
				j += card.NumCards
			}
			key ^= z.tableauTable[t*maxPileLen+i][j]
		}
	}
	for suit := 0; suit < game.NumFoundations; suit++ {
		key ^= z.foundationTable[suit][s.FoundationHeight(card.Suit(suit))]
	}
	key ^= z.cycleTable[uint8(s.Cycles())]
	return key
}
