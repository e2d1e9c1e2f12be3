package main

import (
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/klondike/config"
	"github.com/domino14/klondike/shell"
)

var (
	profilePath = flag.String("profilepath", "", "path for CPU profile")
	configPath  = flag.String("config", "", "path to a YAML config file")
	debugAddr   = flag.String("debugaddr", "", "address for expvar/pprof HTTP server, e.g. localhost:8088")
)

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := &config.Config{}
	if err := cfg.Load(*configPath); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	cfg.AdjustLogLevel()

	if *profilePath != "" {
		f, err := os.Create(*profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("")
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *debugAddr != "" {
		// expvar registers its handler on the default mux; this exposes
		// the batch counters alongside net/http/pprof.
		go func() {
			log.Info().Str("addr", *debugAddr).Msg("debug server listening")
			if err := http.ListenAndServe(*debugAddr, nil); err != nil {
				log.Error().Err(err).Msg("debug server")
			}
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	sc := shell.NewShellController(cfg)
	go sc.Loop(sig)

	<-sig
	log.Info().Msg("got quit signal, exiting")
}
