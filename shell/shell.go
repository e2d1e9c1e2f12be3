// Package shell is the interactive console: load and save positions,
// play moves by hand, and drive the solver and batch runner.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/klondike/config"
	"github.com/domino14/klondike/game"
	"github.com/domino14/klondike/solver"
)

const SolveLog = "/tmp/klondike-solvelog"

var errNoPosition = errors.New("no position loaded; use `deal` or `load <file>`")
var errSolving = errors.New("a solve is running; use `solve stop` first")

type ShellController struct {
	l       *readline.Instance
	cfg     *config.Config
	options *Options

	game    *game.State
	history []*game.State

	solver       *solver.Solver
	solveCtx     context.Context
	solveCancel  context.CancelFunc
	solveTicker  *time.Ticker
	tickerDone   chan bool
	solveLogFile *os.File

	batchCtx    context.Context
	batchCancel context.CancelFunc
	batchDone   chan bool
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("load"),
		readline.PcItem("save"),
		readline.PcItem("show"),
		readline.PcItem("moves"),
		readline.PcItem("play"),
		readline.PcItem("undo"),
		readline.PcItem("deal"),
		readline.PcItem("solve",
			readline.PcItem("stop"),
			readline.PcItem("log"),
		),
		readline.PcItem("autoplay",
			readline.PcItem("stop"),
		),
		readline.PcItem("analyze"),
		readline.PcItem("set",
			readline.PcItem("maxiterations"),
			readline.PcItem("weight"),
			readline.PcItem("recyclelimit"),
			readline.PcItem("threads"),
		),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mklondike>\033[0m ",
		HistoryFile:     "/tmp/klondike-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
		AutoComplete:        completer(),
	})
	if err != nil {
		panic(err)
	}
	return &ShellController{l: l, cfg: cfg, options: optionsFromConfig(cfg)}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func (sc *ShellController) solving() bool {
	return sc.solver != nil && sc.solver.IsSearching()
}

// shellcmd is one parsed input line: a command, positional args, and
// dash options like `-weight 2`.
type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errors.New("empty command")
	}
	cmd := &shellcmd{cmd: fields[0], options: map[string]string{}}
	i := 1
	for i < len(fields) {
		f := fields[i]
		if strings.HasPrefix(f, "-") {
			if i+1 >= len(fields) {
				return nil, fmt.Errorf("option %s needs a value", f)
			}
			cmd.options[strings.TrimPrefix(f, "-")] = fields[i+1]
			i += 2
			continue
		}
		cmd.args = append(cmd.args, f)
		i++
	}
	return cmd, nil
}

func (sc *ShellController) execute(line string, sig chan os.Signal) error {
	cmd, err := extractFields(line)
	if err != nil {
		return err
	}
	switch cmd.cmd {
	case "load":
		return sc.load(cmd)
	case "save":
		return sc.save(cmd)
	case "show", "s":
		return sc.show()
	case "moves":
		return sc.listMoves()
	case "play":
		return sc.play(cmd)
	case "undo":
		return sc.undo()
	case "deal":
		return sc.deal(cmd)
	case "solve":
		return sc.handleSolve(cmd)
	case "autoplay":
		return sc.handleAutoplay(cmd)
	case "analyze":
		return sc.analyze(cmd)
	case "set":
		return sc.set(cmd)
	case "help":
		usage(sc.l.Stderr())
		return nil
	case "bye", "exit", "quit":
		sig <- syscall.SIGINT
		return errExiting
	default:
		return fmt.Errorf("command %q not recognized; try `help`", cmd.cmd)
	}
}

var errExiting = errors.New("sending quit signal")

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := sc.execute(line, sig); err != nil {
			if errors.Is(err, errExiting) {
				break
			}
			sc.showError(err)
		}
	}
	log.Debug().Msg("exiting readline loop")
}
