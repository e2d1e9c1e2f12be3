// Command solve reads a YAML position snapshot, searches for a winning
// line, and prints the moves and search stats. Exits nonzero when no
// winning line was found.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/klondike/config"
	"github.com/domino14/klondike/snapshot"
	"github.com/domino14/klondike/solver"
)

var (
	configPath    = flag.String("config", "", "path to a YAML config file")
	maxIterations = flag.Int("maxiterations", 0, "override max node expansions")
	weight        = flag.Float64("weight", -1, "override strategy weight; 0 finds a shortest line")
)

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <snapshot.yaml>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := &config.Config{}
	if err := cfg.Load(*configPath); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	cfg.AdjustLogLevel()
	if *maxIterations > 0 {
		cfg.MaxIterations = *maxIterations
	}
	if *weight >= 0 {
		cfg.StrategyWeight = *weight
	}

	root, err := snapshot.FromFile(flag.Arg(0), cfg.RecycleLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("loading snapshot")
	}

	s := &solver.Solver{}
	if err := s.Init(root); err != nil {
		log.Fatal().Err(err).Msg("initializing solver")
	}
	s.SetMaxIterations(cfg.MaxIterations)
	s.SetStrategyWeight(cfg.StrategyWeight)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sol, err := s.Solve(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("solving")
	}

	fmt.Printf("status: %s\n", sol.Status)
	fmt.Printf("nodes expanded: %d\nelapsed: %v\n", sol.NodesExpanded, sol.Elapsed)
	if !sol.Solved() {
		fmt.Printf("best estimate: %d\n", sol.BestEstimate)
		os.Exit(1)
	}
	if sol.Optimal {
		fmt.Println("line is shortest possible")
	}
	fmt.Printf("winning line (%d moves):\n", len(sol.Moves))
	for i, m := range sol.MoveStrings() {
		fmt.Printf("%3d: %s\n", i+1, m)
	}
}
