package shell

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/domino14/klondike/automatic"
	"github.com/domino14/klondike/config"
	"github.com/domino14/klondike/snapshot"
)

// Options are the shell-adjustable solver settings, seeded from the
// config at startup.
type Options struct {
	MaxIterations  int
	StrategyWeight float64
	RecycleLimit   int
	Threads        int
}

func optionsFromConfig(cfg *config.Config) *Options {
	return &Options{
		MaxIterations:  cfg.MaxIterations,
		StrategyWeight: cfg.StrategyWeight,
		RecycleLimit:   cfg.RecycleLimit,
		Threads:        cfg.BatchThreads,
	}
}

func (o *Options) ToDisplayText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "maxiterations: %d\n", o.MaxIterations)
	fmt.Fprintf(&sb, "weight:        %v\n", o.StrategyWeight)
	fmt.Fprintf(&sb, "recyclelimit:  %d\n", o.RecycleLimit)
	fmt.Fprintf(&sb, "threads:       %d (0 = one per CPU)\n", o.Threads)
	return sb.String()
}

func (o *Options) Show(key string) (string, error) {
	switch key {
	case "maxiterations":
		return strconv.Itoa(o.MaxIterations), nil
	case "weight":
		return strconv.FormatFloat(o.StrategyWeight, 'g', -1, 64), nil
	case "recyclelimit":
		return strconv.Itoa(o.RecycleLimit), nil
	case "threads":
		return strconv.Itoa(o.Threads), nil
	}
	return "", fmt.Errorf("unknown option %q", key)
}

func (o *Options) Set(key, val string) error {
	switch key {
	case "maxiterations":
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		if n < 1 {
			return errors.New("maxiterations must be at least 1")
		}
		o.MaxIterations = n
	case "weight":
		w, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return err
		}
		if w < 0 {
			return errors.New("weight cannot be negative")
		}
		o.StrategyWeight = w
	case "recyclelimit":
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		if n < 0 || n > 255 {
			return errors.New("recyclelimit must be between 0 and 255")
		}
		o.RecycleLimit = n
	case "threads":
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		if n < 0 {
			return errors.New("threads cannot be negative")
		}
		o.Threads = n
	default:
		return fmt.Errorf("unknown option %q", key)
	}
	return nil
}

func (sc *ShellController) set(cmd *shellcmd) error {
	if len(cmd.args) == 0 {
		sc.showMessage(sc.options.ToDisplayText())
		return nil
	}
	if len(cmd.args) == 1 {
		val, err := sc.options.Show(cmd.args[0])
		if err != nil {
			return err
		}
		sc.showMessage(val)
		return nil
	}
	if err := sc.options.Set(cmd.args[0], cmd.args[1]); err != nil {
		return err
	}
	sc.showMessage(cmd.args[0] + " set to " + cmd.args[1])
	return nil
}

func (sc *ShellController) load(cmd *shellcmd) error {
	if len(cmd.args) != 1 {
		return errors.New("load needs a filename")
	}
	if sc.solving() {
		return errSolving
	}
	s, err := snapshot.FromFile(cmd.args[0], sc.options.RecycleLimit)
	if err != nil {
		return err
	}
	sc.game = s
	sc.history = sc.history[:0]
	sc.solver = nil
	return sc.show()
}

func (sc *ShellController) save(cmd *shellcmd) error {
	if len(cmd.args) != 1 {
		return errors.New("save needs a filename")
	}
	if sc.game == nil {
		return errNoPosition
	}
	data, err := snapshot.FromState(sc.game).Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(cmd.args[0], data, 0o644); err != nil {
		return err
	}
	sc.showMessage("saved to " + cmd.args[0])
	return nil
}

func (sc *ShellController) show() error {
	if sc.game == nil {
		return errNoPosition
	}
	sc.showMessage(sc.game.ToDisplayText())
	return nil
}

func (sc *ShellController) listMoves() error {
	if sc.game == nil {
		return errNoPosition
	}
	moves := sc.game.LegalMoves()
	if len(moves) == 0 {
		sc.showMessage("no legal moves; this position is dead")
		return nil
	}
	var sb strings.Builder
	for i, m := range moves {
		fmt.Fprintf(&sb, "%3d: %s\n", i+1, m.ShortDescription())
	}
	sc.showMessage(sb.String())
	return nil
}

func (sc *ShellController) play(cmd *shellcmd) error {
	if sc.game == nil {
		return errNoPosition
	}
	if sc.solving() {
		return errSolving
	}
	if len(cmd.args) != 1 {
		return errors.New("play needs a move number from `moves`")
	}
	idx, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return err
	}
	moves := sc.game.LegalMoves()
	if idx < 1 || idx > len(moves) {
		return fmt.Errorf("move number out of range, have %d moves", len(moves))
	}
	next, err := sc.game.Apply(moves[idx-1])
	if err != nil {
		return err
	}
	sc.history = append(sc.history, sc.game)
	sc.game = next
	sc.solver = nil
	if sc.game.IsSolved() {
		sc.showMessage("you won!")
	}
	return sc.show()
}

func (sc *ShellController) undo() error {
	if sc.solving() {
		return errSolving
	}
	if len(sc.history) == 0 {
		return errors.New("nothing to undo")
	}
	sc.game = sc.history[len(sc.history)-1]
	sc.history = sc.history[:len(sc.history)-1]
	sc.solver = nil
	return sc.show()
}

func (sc *ShellController) deal(cmd *shellcmd) error {
	if sc.solving() {
		return errSolving
	}
	var seed [32]byte
	if len(cmd.args) == 1 {
		decoded, err := base64.RawURLEncoding.DecodeString(cmd.args[0])
		if err != nil {
			return fmt.Errorf("bad seed: %w", err)
		}
		if len(decoded) != 32 {
			return fmt.Errorf("seed is %d bytes, want 32", len(decoded))
		}
		copy(seed[:], decoded)
	} else {
		seeds, err := automatic.GenerateSeeds(1)
		if err != nil {
			return err
		}
		seed = seeds[0]
	}
	s, err := automatic.SeededDeal(seed, sc.options.RecycleLimit)
	if err != nil {
		return err
	}
	sc.game = s
	sc.history = sc.history[:0]
	sc.solver = nil
	sc.showMessage("seed: " + base64.RawURLEncoding.EncodeToString(seed[:]))
	return sc.show()
}

func (sc *ShellController) analyze(cmd *shellcmd) error {
	if len(cmd.args) != 1 {
		return errors.New("analyze needs a batch log filename")
	}
	summary, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return err
	}
	sc.showMessage(summary)
	return nil
}
