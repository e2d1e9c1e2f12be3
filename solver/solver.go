// Package solver implements a best-first search over Klondike positions.
// The frontier is ordered by f = g + weight·h; a weight of zero
// degenerates to uniform-cost search (slow, optimal), larger weights
// chase the heuristic (fast, possibly suboptimal). A closed set keyed by
// zobrist hashes stops re-expansion, and a hard iteration budget plus a
// recycle cap inside the states guarantee termination.
package solver

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/klondike/game"
	"github.com/domino14/klondike/zobrist"
)

const (
	DefaultMaxIterations  = 200000
	DefaultStrategyWeight = 1.5

	// closedEntrySize approximates per-entry map overhead, for bounding
	// the closed set's pre-sized capacity by available memory.
	closedEntrySize = 48
	memoryFraction  = 1.0 / 16

	progressLogInterval = 20000
)

var ErrNotInitialized = errors.New("solver not initialized")

// Solver runs searches from a single root state. A Solver is not safe
// for concurrent searches; the progress readout and cancellation are the
// only cross-thread surfaces.
type Solver struct {
	z       *zobrist.Zobrist
	root    *game.State
	rootKey uint64

	maxIterations int
	weight        float64

	nodesExpanded atomic.Uint64
	bestEstimate  atomic.Int64
	searching     atomic.Bool

	logStream io.Writer
}

// Init prepares the solver for searches from root.
func (s *Solver) Init(root *game.State) error {
	if root == nil {
		return errors.New("nil root state")
	}
	s.z = &zobrist.Zobrist{}
	s.z.Initialize()
	s.root = root
	s.rootKey = s.z.Hash(root)
	s.maxIterations = DefaultMaxIterations
	s.weight = DefaultStrategyWeight
	return nil
}

// SetMaxIterations bounds the number of node expansions per search.
func (s *Solver) SetMaxIterations(n int) {
	if n < 1 {
		n = 1
	}
	s.maxIterations = n
}

// SetStrategyWeight sets the quality/speed trade-off; negative values
// are clamped to zero.
func (s *Solver) SetStrategyWeight(w float64) {
	if w < 0 {
		w = 0
	}
	s.weight = w
}

// SetLogStream directs a YAML-ish trace of search progress to w.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

// Progress is a read-only snapshot of a running search, observable from
// other goroutines without blocking it.
type Progress struct {
	NodesExpanded uint64
	BestEstimate  int64
}

func (s *Solver) SearchProgress() Progress {
	return Progress{
		NodesExpanded: s.nodesExpanded.Load(),
		BestEstimate:  s.bestEstimate.Load(),
	}
}

func (s *Solver) IsSearching() bool {
	return s.searching.Load()
}

// closedSizeHint pre-sizes the closed set: four entries per budgeted
// expansion, bounded by a fraction of system memory.
func (s *Solver) closedSizeHint() int {
	hint := s.maxIterations * 4
	memBound := int(float64(memory.TotalMemory()) * memoryFraction / closedEntrySize)
	if memBound > 0 && memBound < hint {
		hint = memBound
	}
	if hint < 1024 {
		hint = 1024
	}
	return hint
}

// Solve searches from the root until it finds a solution, empties the
// frontier, exhausts the iteration budget, or ctx is cancelled. The last
// three return the best partial line seen; none of them are errors. An
// error return means move generation and application disagreed, which is
// a bug, not a property of the deal.
func (s *Solver) Solve(ctx context.Context) (*Solution, error) {
	if s.root == nil || s.z == nil {
		return nil, ErrNotInitialized
	}
	s.searching.Store(true)
	defer s.searching.Store(false)
	start := time.Now()
	s.nodesExpanded.Store(0)

	closed := make(map[uint64]int32, s.closedSizeHint())
	var frontier nodeHeap
	var seq uint64

	root := &node{state: s.root, h: int32(Estimate(s.root)), key: s.rootKey}
	root.f = s.weight * float64(root.h)
	s.bestEstimate.Store(int64(root.h))
	heap.Push(&frontier, root)

	best := root
	expanded := 0

	finish := func(n *node, status Status) *Solution {
		sol := solutionFromNode(n, status)
		sol.NodesExpanded = uint64(expanded)
		sol.Elapsed = time.Since(start)
		sol.Optimal = status == StatusSolved && s.weight == 0
		log.Debug().
			Stringer("status", status).
			Int("expanded", expanded).
			Int("moves", len(sol.Moves)).
			Dur("elapsed", sol.Elapsed).
			Msg("search-done")
		return sol
	}

	for frontier.Len() > 0 {
		select {
		case <-ctx.Done():
			return finish(best, StatusCancelled), nil
		default:
		}

		n := heap.Pop(&frontier).(*node)
		if n.state.IsSolved() {
			return finish(n, StatusSolved), nil
		}
		if g, ok := closed[n.key]; ok && g <= n.g {
			// Stale frontier entry; this state was reached at least as
			// cheaply before.
			continue
		}
		if expanded >= s.maxIterations {
			return finish(best, StatusIterationLimit), nil
		}
		closed[n.key] = n.g
		expanded++
		s.nodesExpanded.Store(uint64(expanded))
		if n.h < best.h {
			best = n
			s.bestEstimate.Store(int64(n.h))
		}
		if s.logStream != nil && expanded%progressLogInterval == 0 {
			fmt.Fprintf(s.logStream, "- expanded: %d\n  frontier: %d\n  bestEstimate: %d\n",
				expanded, frontier.Len(), best.h)
		}

		for _, m := range n.state.LegalMoves() {
			child, err := n.state.Apply(m)
			if err != nil {
				// Generation and application disagree; unrecoverable.
				return nil, err
			}
			key := s.z.Hash(child)
			cg := n.g + 1
			if g, ok := closed[key]; ok && g <= cg {
				continue
			}
			seq++
			h := int32(Estimate(child))
			heap.Push(&frontier, &node{
				state:  child,
				parent: n,
				played: m,
				g:      cg,
				h:      h,
				f:      float64(cg) + s.weight*float64(h),
				seq:    seq,
				key:    key,
			})
		}
	}

	return finish(best, StatusExhausted), nil
}
