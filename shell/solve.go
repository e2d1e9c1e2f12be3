package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/klondike/automatic"
	"github.com/domino14/klondike/solver"
)

func (sc *ShellController) handleSolve(cmd *shellcmd) error {
	if len(cmd.args) > 0 {
		return sc.solveControlArguments(cmd.args)
	}
	if sc.game == nil {
		return errNoPosition
	}
	if sc.solving() {
		return errSolving
	}

	maxIter := sc.options.MaxIterations
	weight := sc.options.StrategyWeight
	var err error
	for opt, val := range cmd.options {
		switch opt {
		case "maxiterations":
			maxIter, err = strconv.Atoi(val)
			if err != nil {
				return err
			}
		case "weight":
			weight, err = strconv.ParseFloat(val, 64)
			if err != nil {
				return err
			}
		default:
			return errors.New("option " + opt + " not recognized")
		}
	}

	s := &solver.Solver{}
	if err := s.Init(sc.game); err != nil {
		return err
	}
	s.SetMaxIterations(maxIter)
	s.SetStrategyWeight(weight)
	if sc.solveLogFile != nil {
		s.SetLogStream(sc.solveLogFile)
	}
	sc.solver = s

	log.Debug().Int("maxIterations", maxIter).Float64("weight", weight).
		Msg("will start solve")
	sc.startSolve()
	return nil
}

func (sc *ShellController) startSolve() {
	sc.solveCtx, sc.solveCancel = context.WithCancel(context.Background())
	sc.solveTicker = time.NewTicker(5 * time.Second)
	sc.tickerDone = make(chan bool)
	sc.showMessage("Solve started. It will print results when done; `solve stop` cancels it.")

	go func() {
		sol, err := sc.solver.Solve(sc.solveCtx)
		if err != nil {
			sc.showError(err)
		} else {
			sc.showMessage(renderSolution(sol))
		}
		sc.solveTicker.Stop()
		sc.tickerDone <- true
		if sc.solveLogFile != nil {
			if err := sc.solveLogFile.Close(); err != nil {
				sc.showError(err)
			}
			sc.solveLogFile = nil
		}
		log.Debug().Msg("solver thread exiting")
	}()

	go func() {
		for {
			select {
			case <-sc.tickerDone:
				log.Debug().Msg("ticker thread exiting")
				return
			case <-sc.solveTicker.C:
				p := sc.solver.SearchProgress()
				log.Info().Uint64("expanded", p.NodesExpanded).
					Int64("bestEstimate", p.BestEstimate).
					Msg("solver progress")
			}
		}
	}()
}

func (sc *ShellController) solveControlArguments(args []string) error {
	switch args[0] {
	case "log":
		if sc.solving() {
			return errors.New("please stop the solve before making log changes")
		}
		var err error
		sc.solveLogFile, err = os.Create(SolveLog)
		if err != nil {
			return err
		}
		sc.showMessage("solve will log to " + SolveLog)
	case "stop":
		if !sc.solving() {
			return errors.New("no running solve to stop")
		}
		sc.solveCancel()
	default:
		return fmt.Errorf("do not understand solve argument %v", args[0])
	}
	return nil
}

func renderSolution(sol *solver.Solution) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "status: %s\n", sol.Status)
	fmt.Fprintf(&sb, "nodes expanded: %d  elapsed: %v\n", sol.NodesExpanded, sol.Elapsed)
	if sol.Solved() {
		if sol.Optimal {
			sb.WriteString("line is shortest possible\n")
		}
		fmt.Fprintf(&sb, "winning line (%d moves):\n", len(sol.Moves))
	} else {
		fmt.Fprintf(&sb, "best estimate: %d\n", sol.BestEstimate)
		if len(sol.Moves) > 0 {
			fmt.Fprintf(&sb, "best partial line (%d moves):\n", len(sol.Moves))
		}
	}
	for i, m := range sol.MoveStrings() {
		fmt.Fprintf(&sb, "%3d: %s\n", i+1, m)
	}
	return sb.String()
}

func (sc *ShellController) handleAutoplay(cmd *shellcmd) error {
	if len(cmd.args) > 0 && cmd.args[0] == "stop" {
		if sc.batchCancel == nil {
			return errors.New("no running batch to stop")
		}
		sc.batchCancel()
		return nil
	}
	if automatic.IsSolving.Value() > 0 {
		return errors.New("a batch is already running; `autoplay stop` first")
	}

	opts := automatic.BatchOptions{
		Deals:          100,
		Threads:        sc.options.Threads,
		MaxIterations:  sc.options.MaxIterations,
		StrategyWeight: sc.options.StrategyWeight,
		RecycleCap:     sc.options.RecycleLimit,
	}
	var err error
	for opt, val := range cmd.options {
		switch opt {
		case "deals":
			opts.Deals, err = strconv.Atoi(val)
			if err != nil {
				return err
			}
		case "threads":
			opts.Threads, err = strconv.Atoi(val)
			if err != nil {
				return err
			}
		case "log":
			opts.LogFilename = val
		case "seedfile":
			opts.Seeds, err = automatic.LoadSeeds(val)
			if err != nil {
				return err
			}
		default:
			return errors.New("option " + opt + " not recognized")
		}
	}

	sc.batchCtx, sc.batchCancel = context.WithCancel(context.Background())
	sc.batchDone = make(chan bool, 1)
	sc.showMessage("Batch started; it will print a summary when done. `autoplay stop` cancels.")
	go func() {
		bs, err := automatic.RunBatch(sc.batchCtx, opts)
		if err != nil {
			sc.showError(err)
		} else {
			sc.showMessage(bs.Summary())
		}
		sc.batchDone <- true
		log.Debug().Msg("batch thread exiting")
	}()
	return nil
}
