package solver

import (
	"github.com/domino14/klondike/card"
	"github.com/domino14/klondike/game"
)

// Heuristic scale: the base cost per card off the foundations is 2, a
// face-up tableau card earns back 1 (it is the closest to playable), and
// a face-down card costs faceDownPenalty more since it must be uncovered
// before it can go anywhere. Keeping the face-up bonus strictly smaller
// than the base cost makes every foundation play reduce the estimate, so
// greedy searches descend instead of wandering a plateau.
const (
	offFoundationCost = 2
	faceUpBonus       = 1
	faceDownPenalty   = 6
)

// Estimate guesses the moves remaining to solve s, scaled by a constant
// factor. It is zero exactly at a solved state and never negative. It is
// not admissible in general; the solver's strategy weight decides how
// much to trust it.
func Estimate(s *game.State) int {
	up, down := s.TableauFaceCounts()
	h := offFoundationCost*(card.NumCards-s.FoundationCount()) - faceUpBonus*up + faceDownPenalty*down
	if h < 0 {
		h = 0
	}
	return h
}
