package shell

import (
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/klondike/config"
	"github.com/domino14/klondike/move"
	"github.com/domino14/klondike/solver"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	testcases := []struct {
		line    string
		cmd     string
		args    []string
		options map[string]string
	}{
		{"solve", "solve", nil, map[string]string{}},
		{"solve stop", "solve", []string{"stop"}, map[string]string{}},
		{"solve -maxiterations 5000 -weight 2", "solve", nil,
			map[string]string{"maxiterations": "5000", "weight": "2"}},
		{"load 'my file.yaml'", "load", []string{"my file.yaml"}, map[string]string{}},
		{"autoplay -deals 50 -log out.csv", "autoplay", nil,
			map[string]string{"deals": "50", "log": "out.csv"}},
		{"set weight 0.5", "set", []string{"weight", "0.5"}, map[string]string{}},
	}
	for _, tc := range testcases {
		cmd, err := extractFields(tc.line)
		is.NoErr(err)
		is.Equal(cmd.cmd, tc.cmd)
		is.Equal(cmd.args, tc.args)
		is.Equal(cmd.options, tc.options)
	}
}

func TestExtractFieldsErrors(t *testing.T) {
	is := is.New(t)
	_, err := extractFields("")
	is.True(err != nil)
	_, err = extractFields("solve -maxiterations")
	is.True(err != nil)
}

func TestOptions(t *testing.T) {
	is := is.New(t)
	var cfg config.Config
	is.NoErr(cfg.Load(""))
	o := optionsFromConfig(&cfg)
	is.Equal(o.MaxIterations, config.DefaultMaxIterations)

	is.NoErr(o.Set("weight", "0.25"))
	v, err := o.Show("weight")
	is.NoErr(err)
	is.Equal(v, "0.25")

	is.True(o.Set("weight", "-1") != nil)
	is.True(o.Set("recyclelimit", "300") != nil)
	is.True(o.Set("bogus", "1") != nil)
	_, err = o.Show("bogus")
	is.True(err != nil)

	is.True(strings.Contains(o.ToDisplayText(), "maxiterations"))
}

func TestRenderSolution(t *testing.T) {
	is := is.New(t)
	sol := &solver.Solution{
		Moves:  []move.Move{move.NewDraw(), move.NewWasteToTableau(3)},
		Status: solver.StatusSolved,
	}
	out := renderSolution(sol)
	is.True(strings.Contains(out, "status: SOLVED"))
	is.True(strings.Contains(out, "winning line (2 moves)"))
	is.True(strings.Contains(out, "(draw)"))

	sol.Status = solver.StatusIterationLimit
	sol.BestEstimate = 17
	out = renderSolution(sol)
	is.True(strings.Contains(out, "ITERATION_LIMIT_REACHED"))
	is.True(strings.Contains(out, "best estimate: 17"))
}
