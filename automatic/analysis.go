package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/domino14/klondike/solver"
)

// AnalyzeLogFile re-aggregates a batch CSV written by RunBatch and
// renders the same summary, so old runs can be inspected without
// re-solving anything.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	r := csv.NewReader(file)

	bs := &BatchStats{}
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		line++
		if record[0] == "seed" {
			continue
		}
		if len(record) != 5 {
			return "", fmt.Errorf("line %d: want 5 fields, got %d", line, len(record))
		}
		status, err := parseStatus(record[1])
		if err != nil {
			return "", fmt.Errorf("line %d: %w", line, err)
		}
		moves, err := strconv.Atoi(record[2])
		if err != nil {
			return "", fmt.Errorf("line %d: %w", line, err)
		}
		nodes, err := strconv.ParseUint(record[3], 10, 64)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", line, err)
		}
		ms, err := strconv.ParseInt(record[4], 10, 64)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", line, err)
		}
		bs.record(Result{
			Status:  status,
			Moves:   moves,
			Nodes:   nodes,
			Elapsed: time.Duration(ms) * time.Millisecond,
		})
	}
	return bs.Summary(), nil
}

func parseStatus(s string) (solver.Status, error) {
	for _, st := range []solver.Status{
		solver.StatusSolved, solver.StatusIterationLimit,
		solver.StatusExhausted, solver.StatusCancelled,
	} {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", s)
}
