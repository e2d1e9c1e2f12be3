package automatic

import (
	"context"
	"encoding/base64"
	"errors"
	"expvar"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/klondike/solver"
	"github.com/domino14/klondike/stats"
)

var (
	DealCounter *expvar.Int
	IsSolving   *expvar.Int
)

func init() {
	DealCounter = expvar.NewInt("dealCounter")
	IsSolving = expvar.NewInt("isSolving")
}

// BatchOptions configures an unattended batch of deals.
type BatchOptions struct {
	Deals          int
	Threads        int
	MaxIterations  int
	StrategyWeight float64
	RecycleCap     int
	// Seeds replays specific deals; when nil, Deals fresh random seeds
	// are generated.
	Seeds [][32]byte
	// LogFilename, when set, receives one CSV line per deal.
	LogFilename string
}

// Result is the outcome of solving a single deal.
type Result struct {
	Seed    [32]byte
	Status  solver.Status
	Moves   int
	Nodes   uint64
	Elapsed time.Duration
}

// BatchStats aggregates results across a batch. Safe for concurrent
// recording.
type BatchStats struct {
	mu          sync.Mutex
	solved      stats.Proportion
	moves       stats.Statistic
	nodes       stats.Statistic
	elapsedMs   stats.Statistic
	nodeSamples []float64
}

func (bs *BatchStats) record(r Result) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.solved.Record(r.Status == solver.StatusSolved)
	if r.Status == solver.StatusSolved {
		// Line lengths only mean anything for winning lines.
		bs.moves.Push(float64(r.Moves))
	}
	bs.nodes.Push(float64(r.Nodes))
	bs.nodeSamples = append(bs.nodeSamples, float64(r.Nodes))
	bs.elapsedMs.Push(float64(r.Elapsed.Milliseconds()))
}

func (bs *BatchStats) Solved() stats.Proportion {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.solved
}

func (bs *BatchStats) Nodes() stats.Statistic {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.nodes
}

func (bs *BatchStats) Moves() stats.Statistic {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.moves
}

// Summary renders the aggregates, with a terminal histogram of nodes
// expanded per deal.
func (bs *BatchStats) Summary() string {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Deals attempted: %d\n", bs.solved.Trials())
	lo, hi := bs.solved.ConfidenceInterval(95)
	fmt.Fprintf(&sb, "Solved: %d (%.1f%%, 95%% CI %.1f%%-%.1f%%)\n",
		bs.solved.Successes(), 100*bs.solved.Rate(), 100*lo, 100*hi)
	if bs.moves.Count() > 0 {
		fmt.Fprintf(&sb, "Winning line length: mean %.1f  stdev %.1f  min %.0f  max %.0f\n",
			bs.moves.Mean(), bs.moves.Stdev(), bs.moves.Min(), bs.moves.Max())
	}
	if bs.nodes.Count() > 0 {
		fmt.Fprintf(&sb, "Nodes expanded: mean %.0f  stdev %.0f  min %.0f  max %.0f\n",
			bs.nodes.Mean(), bs.nodes.Stdev(), bs.nodes.Min(), bs.nodes.Max())
		fmt.Fprintf(&sb, "Elapsed per deal: mean %.1f ms\n", bs.elapsedMs.Mean())
	}
	if len(bs.nodeSamples) > 1 && bs.nodes.Min() < bs.nodes.Max() {
		sb.WriteString("\nNodes expanded distribution:\n")
		hist := histogram.Hist(15, bs.nodeSamples)
		if err := histogram.Fprint(&sb, hist, histogram.Linear(40)); err != nil {
			log.Err(err).Msg("rendering histogram")
		}
	}
	return sb.String()
}

const logHeader = "seed,status,moves,nodes,elapsed_ms\n"

// RunBatch deals and solves a batch of games concurrently, returning
// the aggregated stats. A cancelled context stops the batch early; the
// deals finished so far are still reported.
func RunBatch(ctx context.Context, opts BatchOptions) (*BatchStats, error) {
	if IsSolving.Value() > 0 {
		return nil, errors.New("a batch is already running, wait for it to finish")
	}

	seeds := opts.Seeds
	if seeds == nil {
		var err error
		seeds, err = GenerateSeeds(opts.Deals)
		if err != nil {
			return nil, err
		}
	}
	threads := opts.Threads
	if threads < 1 {
		threads = runtime.NumCPU()
	}
	maxIter := opts.MaxIterations
	if maxIter < 1 {
		maxIter = solver.DefaultMaxIterations
	}

	var logChan chan string
	writer := errgroup.Group{}
	if opts.LogFilename != "" {
		logfile, err := os.Create(opts.LogFilename)
		if err != nil {
			return nil, err
		}
		logChan = make(chan string, 100)
		writer.Go(func() error {
			defer logfile.Close()
			if _, err := logfile.WriteString(logHeader); err != nil {
				return err
			}
			for line := range logChan {
				if _, err := logfile.WriteString(line); err != nil {
					return err
				}
			}
			return nil
		})
	}

	IsSolving.Add(1)
	defer IsSolving.Add(-1)
	log.Info().Int("deals", len(seeds)).Int("threads", threads).
		Int("maxIterations", maxIter).Float64("weight", opts.StrategyWeight).
		Msg("starting-batch")

	bs := &BatchStats{}
	g := errgroup.Group{}
	g.SetLimit(threads)
	for _, seed := range seeds {
		seed := seed
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			root, err := SeededDeal(seed, opts.RecycleCap)
			if err != nil {
				return err
			}
			s := &solver.Solver{}
			if err := s.Init(root); err != nil {
				return err
			}
			s.SetMaxIterations(maxIter)
			s.SetStrategyWeight(opts.StrategyWeight)
			sol, err := s.Solve(ctx)
			if err != nil {
				return err
			}
			if sol.Status == solver.StatusCancelled {
				// Cut short; not a data point.
				return nil
			}
			bs.record(Result{
				Seed:    seed,
				Status:  sol.Status,
				Moves:   len(sol.Moves),
				Nodes:   sol.NodesExpanded,
				Elapsed: sol.Elapsed,
			})
			DealCounter.Add(1)
			if logChan != nil {
				logChan <- fmt.Sprintf("%s,%s,%d,%d,%d\n",
					base64.RawURLEncoding.EncodeToString(seed[:]),
					sol.Status, len(sol.Moves), sol.NodesExpanded,
					sol.Elapsed.Milliseconds())
			}
			return nil
		})
	}
	err := g.Wait()
	if logChan != nil {
		close(logChan)
		if werr := writer.Wait(); err == nil {
			err = werr
		}
	}
	log.Info().Int("finished", bs.Solved().Trials()).Msg("batch-done")
	return bs, err
}
