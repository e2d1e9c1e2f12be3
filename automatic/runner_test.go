package automatic

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/klondike/game"
	"github.com/domino14/klondike/snapshot"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func seedOf(b byte) [32]byte {
	var s [32]byte
	for i := range s {
		s[i] = b
	}
	return s
}

func TestSeededDealLayout(t *testing.T) {
	is := is.New(t)
	s, err := SeededDeal(seedOf(1), 8)
	is.NoErr(err)
	is.Equal(len(s.Stock()), 24)
	is.Equal(len(s.Waste()), 0)
	up, down := s.TableauFaceCounts()
	is.Equal(up, game.NumTableaus)
	is.Equal(down, 21)
	for i := 0; i < game.NumTableaus; i++ {
		is.Equal(s.Tableau(i).FaceDownCount(), i)
	}
}

func TestSeededDealDeterministic(t *testing.T) {
	is := is.New(t)
	a, err := SeededDeal(seedOf(7), 8)
	is.NoErr(err)
	b, err := SeededDeal(seedOf(7), 8)
	is.NoErr(err)
	is.Equal(snapshot.Fingerprint(a), snapshot.Fingerprint(b))

	c, err := SeededDeal(seedOf(8), 8)
	is.NoErr(err)
	is.True(snapshot.Fingerprint(a) != snapshot.Fingerprint(c))
}

func TestSeedFileRoundTrip(t *testing.T) {
	is := is.New(t)
	seeds, err := GenerateSeeds(5)
	is.NoErr(err)

	path := filepath.Join(t.TempDir(), "seeds.txt")
	is.NoErr(SaveSeeds(seeds, path))

	back, err := LoadSeeds(path)
	is.NoErr(err)
	assert.Equal(t, seeds, back)
}

func TestLoadSeedsRejectsBadLength(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "seeds.txt")
	is.NoErr(os.WriteFile(path, []byte("# header\nAAAA\n"), 0o644))
	_, err := LoadSeeds(path)
	is.True(err != nil)
}

func TestRunBatch(t *testing.T) {
	is := is.New(t)
	logPath := filepath.Join(t.TempDir(), "batch.csv")
	bs, err := RunBatch(context.Background(), BatchOptions{
		Seeds:          [][32]byte{seedOf(1), seedOf(2), seedOf(3)},
		Threads:        2,
		MaxIterations:  200,
		StrategyWeight: 2,
		RecycleCap:     8,
		LogFilename:    logPath,
	})
	is.NoErr(err)
	is.Equal(bs.Solved().Trials(), 3)
	is.Equal(bs.Nodes().Count(), 3)

	data, err := os.ReadFile(logPath)
	is.NoErr(err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	is.Equal(len(lines), 4) // header plus one line per deal
	is.True(strings.HasPrefix(lines[0], "seed,status"))

	summary := bs.Summary()
	is.True(strings.Contains(summary, "Deals attempted: 3"))

	analyzed, err := AnalyzeLogFile(logPath)
	is.NoErr(err)
	is.True(strings.Contains(analyzed, "Deals attempted: 3"))
}

func TestRunBatchCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bs, err := RunBatch(ctx, BatchOptions{
		Seeds:         [][32]byte{seedOf(1), seedOf(2)},
		Threads:       1,
		MaxIterations: 100,
		RecycleCap:    8,
	})
	is.NoErr(err)
	// Nothing finished, nothing recorded.
	is.Equal(bs.Solved().Trials(), 0)
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	_, err := parseStatus("NOT_A_STATUS")
	assert.Error(t, err)
}
