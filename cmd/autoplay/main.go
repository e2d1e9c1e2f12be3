// Command autoplay deals and solves a batch of random games and prints
// aggregate statistics, without the interactive shell.
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

	"github.com/domino14/klondike/automatic"
	"github.com/domino14/klondike/config"
)

var (
	configPath = flag.String("config", "", "path to a YAML config file")
	deals      = flag.Int("deals", 100, "number of deals to solve")
	threads    = flag.Int("threads", 0, "worker count; 0 means one per CPU")
	logFile    = flag.String("log", "", "CSV log filename")
	seedFile   = flag.String("seedfile", "", "replay the seeds in this file instead of dealing fresh ones")
	saveSeeds  = flag.String("saveseeds", "", "save the generated seeds to this file")
)

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := &config.Config{}
	if err := cfg.Load(*configPath); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	cfg.AdjustLogLevel()

	opts := automatic.BatchOptions{
		Deals:          *deals,
		Threads:        *threads,
		MaxIterations:  cfg.MaxIterations,
		StrategyWeight: cfg.StrategyWeight,
		RecycleCap:     cfg.RecycleLimit,
		LogFilename:    *logFile,
	}
	if *seedFile != "" {
		seeds, err := automatic.LoadSeeds(*seedFile)
		if err != nil {
			log.Fatal().Err(err).Msg("loading seeds")
		}
		opts.Seeds = seeds
	} else if *saveSeeds != "" {
		seeds, err := automatic.GenerateSeeds(*deals)
		if err != nil {
			log.Fatal().Err(err).Msg("generating seeds")
		}
		if err := automatic.SaveSeeds(seeds, *saveSeeds); err != nil {
			log.Fatal().Err(err).Msg("saving seeds")
		}
		opts.Seeds = seeds
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bs, err := automatic.RunBatch(ctx, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("running batch")
	}
	fmt.Println(bs.Summary())
}
