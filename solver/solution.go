package solver

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/domino14/klondike/game"
	"github.com/domino14/klondike/move"
)

// Status is the terminal state of a search.
type Status uint8

const (
	// StatusSolved means the move sequence reaches a solved state.
	StatusSolved Status = iota
	// StatusIterationLimit means the expansion budget ran out; the
	// solution holds the best partial line found. Not an error; retry
	// with a bigger budget or a different strategy weight.
	StatusIterationLimit
	// StatusExhausted means the frontier emptied with no solution: the
	// deal appears unsolvable under the current move rules.
	StatusExhausted
	// StatusCancelled means the caller cancelled the search; the
	// solution holds whatever partial line existed at that point.
	StatusCancelled
)

func (st Status) String() string {
	switch st {
	case StatusSolved:
		return "SOLVED"
	case StatusIterationLimit:
		return "ITERATION_LIMIT_REACHED"
	case StatusExhausted:
		return "EXHAUSTED"
	case StatusCancelled:
		return "CANCELLED"
	}
	return "UNKNOWN"
}

// Solution is the ordered move sequence from the root toward a solved
// state, with search statistics. For non-SOLVED statuses the moves lead
// to the best (lowest-estimate) state seen instead.
type Solution struct {
	Moves         []move.Move
	Status        Status
	NodesExpanded uint64
	Elapsed       time.Duration
	// BestEstimate is the heuristic estimate of the line's final state;
	// zero when solved.
	BestEstimate int
	// Optimal is set only when a solution was found with a zero strategy
	// weight, which degenerates to uniform-cost search.
	Optimal bool
}

// solutionFromNode walks parent links back to the root, collecting the
// moves in reverse.
func solutionFromNode(n *node, status Status) *Solution {
	length := 0
	for p := n; p.parent != nil; p = p.parent {
		length++
	}
	moves := make([]move.Move, length)
	for p := n; p.parent != nil; p = p.parent {
		length--
		moves[length] = p.played
	}
	return &Solution{
		Moves:        moves,
		Status:       status,
		BestEstimate: int(n.h),
	}
}

func (sol *Solution) Solved() bool {
	return sol.Status == StatusSolved
}

// Verify replays the solution against root. Every move must be legal in
// sequence, and a SOLVED solution must actually end in a solved state.
func (sol *Solution) Verify(root *game.State) error {
	s := root
	var err error
	for i, m := range sol.Moves {
		s, err = s.Apply(m)
		if err != nil {
			return fmt.Errorf("replay failed at move %d: %w", i+1, err)
		}
	}
	if sol.Status == StatusSolved && !s.IsSolved() {
		return fmt.Errorf("replayed %d moves but the deal is not solved", len(sol.Moves))
	}
	return nil
}

// MoveStrings renders the moves as short descriptions for display.
func (sol *Solution) MoveStrings() []string {
	return lo.Map(sol.Moves, func(m move.Move, _ int) string {
		return m.ShortDescription()
	})
}
